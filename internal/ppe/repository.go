package ppe

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/JaimeStill/ssma/internal/refresh"
	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/pagination"
	"github.com/JaimeStill/ssma/pkg/query"
	"github.com/JaimeStill/ssma/pkg/repository"
	"github.com/JaimeStill/ssma/pkg/validation"
)

type repo struct {
	db            *sql.DB
	classifier    safety.Classifier
	clock         safety.Clock
	search        []safety.Field[Issuance]
	searchColumns []string
	logger        *slog.Logger
	pagination    pagination.Config
}

// New creates a ppe repository implementing the System interface.
func New(
	db *sql.DB,
	classifier safety.Classifier,
	clock safety.Clock,
	search []string,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:            db,
		classifier:    classifier,
		clock:         clock,
		search:        searchFields.Select(search),
		searchColumns: search,
		logger:        logger.With("system", "ppe"),
		pagination:    pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Issuance], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, r.searchColumns...)

	filters.Apply(qb)

	return repository.QueryPage(ctx, r.db, qb, page, "ppe issuances", scanIssuance)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Issuance, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	i, err := repository.QueryOne(ctx, r.db, q, args, scanIssuance)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &i, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Issuance, error) {
	status, err := r.prepare(cmd)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO ppe_issuances(id, employee_id, employee_name, department, equipment, ca_number,
			quantity, delivered_on, replace_by, returned_on, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + columns

	args := []any{
		uuid.New(), cmd.EmployeeID, cmd.EmployeeName, cmd.Department, cmd.Equipment, cmd.CANumber,
		cmd.Quantity, cmd.DeliveredOn, cmd.ReplaceBy, cmd.ReturnedOn, status,
	}

	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Issuance, error) {
		return repository.QueryOne(ctx, tx, q, args, scanIssuance)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("ppe issuance created", "id", i.ID, "equipment", i.Equipment, "status", i.Status)
	return &i, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Issuance, error) {
	status, err := r.prepare(cmd)
	if err != nil {
		return nil, err
	}

	q := `
		UPDATE ppe_issuances
		SET employee_id = $1, employee_name = $2, department = $3, equipment = $4, ca_number = $5,
			quantity = $6, delivered_on = $7, replace_by = $8, returned_on = $9, status = $10,
			updated_at = now()
		WHERE id = $11
		RETURNING ` + columns

	args := []any{
		cmd.EmployeeID, cmd.EmployeeName, cmd.Department, cmd.Equipment, cmd.CANumber,
		cmd.Quantity, cmd.DeliveredOn, cmd.ReplaceBy, cmd.ReturnedOn, status, id,
	}

	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Issuance, error) {
		return repository.QueryOne(ctx, tx, q, args, scanIssuance)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("ppe issuance updated", "id", i.ID, "status", i.Status)
	return &i, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.Exec(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM ppe_issuances WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("ppe issuance deleted", "id", id)
	return nil
}

func (r *repo) Summary(ctx context.Context, search string, filters Filters) (*Summary, error) {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	all, err := repository.QueryAll(ctx, r.db, qb, "ppe issuances", scanIssuance)
	if err != nil {
		return nil, err
	}

	matched := safety.Filter(all, search, r.search)
	inUse := lo.Filter(matched, func(i Issuance, _ int) bool { return i.ReturnedOn == nil })

	return &Summary{
		StatusCounts: safety.CountByStatus(matched, func(i Issuance) safety.Status { return i.Status }),
		Units:        lo.SumBy(inUse, func(i Issuance) int { return i.Quantity }),
	}, nil
}

// Refresh reclassifies open issuances. Archived issuances are left as stored.
func (r *repo) Refresh(ctx context.Context, today time.Time) (int, error) {
	return refresh.Statuses(ctx, r.db, "ppe_issuances", "replace_by",
		func(replaceBy *safety.Date, current safety.Status) safety.Status {
			if current == safety.StatusArchived {
				return current
			}
			return r.classifier.ClassifyDate(today, replaceBy, current)
		},
	)
}

func (r *repo) prepare(cmd Command) (safety.Status, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return "", err
	}
	return stamp(r.classifier, r.clock.Today(), cmd)
}

// stamp returns the status to persist for cmd. A returned issuance is archived.
func stamp(cls safety.Classifier, today time.Time, cmd Command) (safety.Status, error) {
	for _, d := range []*safety.Date{cmd.ReplaceBy, cmd.ReturnedOn} {
		if d != nil && d.Before(cmd.DeliveredOn) {
			return "", ErrDateBeforeIssue
		}
	}
	if cmd.ReturnedOn != nil {
		return safety.StatusArchived, nil
	}
	return cls.ClassifyDate(today, cmd.ReplaceBy, cmd.Status), nil
}
