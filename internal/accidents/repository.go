package accidents

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/pagination"
	"github.com/JaimeStill/ssma/pkg/query"
	"github.com/JaimeStill/ssma/pkg/repository"
	"github.com/JaimeStill/ssma/pkg/validation"
)

type repo struct {
	db            *sql.DB
	search        []safety.Field[Accident]
	searchColumns []string
	logger        *slog.Logger
	pagination    pagination.Config
}

func New(
	db *sql.DB,
	search []string,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:            db,
		search:        searchFields.Select(search),
		searchColumns: search,
		logger:        logger.With("system", "accidents"),
		pagination:    pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Accident], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, r.searchColumns...)

	filters.Apply(qb)

	return repository.QueryPage(ctx, r.db, qb, page, "accidents", scanAccident)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Accident, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAccident)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Accident, error) {
	if err := check(cmd); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO accidents(id, employee_id, employee_name, department, occurred_on, kind,
			lost_time, days_off, cause, description, cat_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + columns

	args := []any{
		uuid.New(), cmd.EmployeeID, cmd.EmployeeName, cmd.Department, cmd.OccurredOn, cmd.Kind,
		cmd.LostTime, cmd.DaysOff, cmd.Cause, cmd.Description, cmd.CATNumber, statusOrDefault(cmd.Status),
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Accident, error) {
		return repository.QueryOne(ctx, tx, q, args, scanAccident)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("accident created", "id", a.ID, "kind", a.Kind, "lost_time", a.LostTime)
	return &a, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Accident, error) {
	if err := check(cmd); err != nil {
		return nil, err
	}

	q := `
		UPDATE accidents
		SET employee_id = $1, employee_name = $2, department = $3, occurred_on = $4, kind = $5,
			lost_time = $6, days_off = $7, cause = $8, description = $9, cat_number = $10,
			status = $11, updated_at = now()
		WHERE id = $12
		RETURNING ` + columns

	args := []any{
		cmd.EmployeeID, cmd.EmployeeName, cmd.Department, cmd.OccurredOn, cmd.Kind,
		cmd.LostTime, cmd.DaysOff, cmd.Cause, cmd.Description, cmd.CATNumber,
		statusOrDefault(cmd.Status), id,
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Accident, error) {
		return repository.QueryOne(ctx, tx, q, args, scanAccident)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("accident updated", "id", a.ID, "status", a.Status)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.Exec(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM accidents WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("accident deleted", "id", id)
	return nil
}

func (r *repo) Summary(ctx context.Context, search string, filters Filters, headcount int) (*Summary, error) {
	if headcount < 0 {
		return nil, ErrInvalidCount
	}

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	all, err := repository.QueryAll(ctx, r.db, qb, "accidents", scanAccident)
	if err != nil {
		return nil, err
	}

	return summarize(safety.Filter(all, search, r.search), headcount), nil
}

func (r *repo) Rates(ctx context.Context, from, to *safety.Date, hoursWorked float64) (*Rates, error) {
	if hoursWorked < 0 {
		return nil, ErrInvalidHours
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, ErrInvalidPeriod
	}

	qb := query.NewBuilder(projection, defaultSort)
	Filters{OccurredFrom: from, OccurredTo: to}.Apply(qb)

	all, err := repository.QueryAll(ctx, r.db, qb, "accidents", scanAccident)
	if err != nil {
		return nil, err
	}

	return rates(all, from, to, hoursWorked), nil
}

func check(cmd Command) error {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return err
	}
	if cmd.DaysOff > 0 && !cmd.LostTime {
		return ErrDaysOffNoLost
	}
	return nil
}

func summarize(accidents []Accident, headcount int) *Summary {
	affected := len(lo.UniqBy(accidents, func(a Accident) string { return a.EmployeeID }))
	lost := lo.Filter(accidents, func(a Accident, _ int) bool { return a.LostTime })

	return &Summary{
		Total:    len(accidents),
		LostTime: len(lost),
		DaysOff:  lo.SumBy(accidents, func(a Accident) int { return a.DaysOff }),
		AverageDaysOff: safety.AverageWhere(accidents,
			func(a Accident) float64 { return float64(a.DaysOff) },
			func(a Accident) bool { return a.DaysOff > 0 },
		),
		EmployeesAffected: affected,
		Headcount:         headcount,
		AffectedPercent:   safety.Percentage(affected, headcount),
		ByKind:            lo.CountValuesBy(accidents, func(a Accident) Kind { return a.Kind }),
		ByStatus:          lo.CountValuesBy(accidents, func(a Accident) Investigation { return a.Status }),
	}
}

// rates derives the injury rates from the accidents of a period. Only
// lost-time accidents count towards the frequency rate.
func rates(accidents []Accident, from, to *safety.Date, hoursWorked float64) *Rates {
	lost := lo.Filter(accidents, func(a Accident, _ int) bool { return a.LostTime })
	days := lo.SumBy(accidents, func(a Accident) int { return a.DaysOff })

	return &Rates{
		From:          from,
		To:            to,
		HoursWorked:   hoursWorked,
		Accidents:     len(accidents),
		LostTime:      len(lost),
		DaysLost:      days,
		FrequencyRate: safety.FrequencyRate(len(lost), hoursWorked),
		SeverityRate:  safety.SeverityRate(days, hoursWorked),
	}
}

func statusOrDefault(s Investigation) Investigation {
	if s == "" {
		return InvestigationOpen
	}
	return s
}
