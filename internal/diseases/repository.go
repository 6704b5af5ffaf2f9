package diseases

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
	search        []safety.Field[Disease]
	searchColumns []string
	logger        *slog.Logger
	pagination    pagination.Config
}

func New(db *sql.DB, search []string, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:            db,
		search:        searchFields.Select(search),
		searchColumns: search,
		logger:        logger.With("system", "diseases"),
		pagination:    pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Disease], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, r.searchColumns...)

	filters.Apply(qb)

	return repository.QueryPage(ctx, r.db, qb, page, "diseases", scanDisease)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Disease, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDisease)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Disease, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO occupational_diseases(id, employee_id, employee_name, department, icd_code,
			description, diagnosed_on, cat_issued, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + columns

	args := []any{
		uuid.New(), cmd.EmployeeID, cmd.EmployeeName, cmd.Department, cmd.ICDCode,
		cmd.Description, cmd.DiagnosedOn, cmd.CATIssued, statusOrDefault(cmd.Status),
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Disease, error) {
		return repository.QueryOne(ctx, tx, q, args, scanDisease)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("disease record created", "id", d.ID, "status", d.Status)
	return &d, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Disease, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return nil, err
	}

	q := `
		UPDATE occupational_diseases
		SET employee_id = $1, employee_name = $2, department = $3, icd_code = $4, description = $5,
			diagnosed_on = $6, cat_issued = $7, status = $8, updated_at = now()
		WHERE id = $9
		RETURNING ` + columns

	args := []any{
		cmd.EmployeeID, cmd.EmployeeName, cmd.Department, cmd.ICDCode, cmd.Description,
		cmd.DiagnosedOn, cmd.CATIssued, statusOrDefault(cmd.Status), id,
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Disease, error) {
		return repository.QueryOne(ctx, tx, q, args, scanDisease)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("disease record updated", "id", d.ID, "status", d.Status)
	return &d, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.Exec(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM occupational_diseases WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("disease record deleted", "id", id)
	return nil
}

func (r *repo) Summary(ctx context.Context, search string, filters Filters) (*Summary, error) {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	all, err := repository.QueryAll(ctx, r.db, qb, "diseases", scanDisease)
	if err != nil {
		return nil, err
	}

	return summarize(safety.Filter(all, search, r.search)), nil
}

func summarize(records []Disease) *Summary {
	byStatus := lo.CountValuesBy(records, func(d Disease) Status { return d.Status })
	return &Summary{
		Total:          len(records),
		ByStatus:       byStatus,
		WithoutCAT:     safety.CountWhere(records, func(d Disease) bool { return !d.CATIssued }),
		OnLeavePercent: safety.Percentage(byStatus[StatusOnLeave], len(records)),
	}
}

func statusOrDefault(s Status) Status {
	if s == "" {
		return StatusUnderTreatment
	}
	return s
}
