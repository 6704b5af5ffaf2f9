package jsa

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

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
	search        []safety.Field[Analysis]
	searchColumns []string
	logger        *slog.Logger
	pagination    pagination.Config
}

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
		logger:        logger.With("system", "jsa"),
		pagination:    pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Analysis], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, r.searchColumns...)

	filters.Apply(qb)

	return repository.QueryPage(ctx, r.db, qb, page, "job safety analyses", scanAnalysis)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Analysis, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return nil, err
	}
	status := r.classifier.ClassifyDate(r.clock.Today(), cmd.ReviewOn, cmd.Status)

	q := `
		INSERT INTO job_safety_analyses(id, task, department, responsible, steps, review_on, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + columns

	args := []any{uuid.New(), cmd.Task, cmd.Department, cmd.Responsible, cmd.Steps, cmd.ReviewOn, status}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Analysis, error) {
		return repository.QueryOne(ctx, tx, q, args, scanAnalysis)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("job safety analysis created", "id", a.ID, "task", a.Task, "steps", len(a.Steps))
	return &a, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Analysis, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return nil, err
	}
	status := r.classifier.ClassifyDate(r.clock.Today(), cmd.ReviewOn, cmd.Status)

	q := `
		UPDATE job_safety_analyses
		SET task = $1, department = $2, responsible = $3, steps = $4, review_on = $5, status = $6,
			updated_at = now()
		WHERE id = $7
		RETURNING ` + columns

	args := []any{cmd.Task, cmd.Department, cmd.Responsible, cmd.Steps, cmd.ReviewOn, status, id}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Analysis, error) {
		return repository.QueryOne(ctx, tx, q, args, scanAnalysis)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("job safety analysis updated", "id", a.ID, "status", a.Status)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.Exec(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM job_safety_analyses WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("job safety analysis deleted", "id", id)
	return nil
}

func (r *repo) Summary(ctx context.Context, search string, filters Filters) (*Summary, error) {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	all, err := repository.QueryAll(ctx, r.db, qb, "job safety analyses", scanAnalysis)
	if err != nil {
		return nil, err
	}

	matched := safety.Filter(all, search, r.search)

	return &Summary{
		StatusCounts: safety.CountByStatus(matched, func(a Analysis) safety.Status { return a.Status }),
		AverageSteps: safety.AverageWhere(matched,
			func(a Analysis) float64 { return float64(len(a.Steps)) },
			func(Analysis) bool { return true },
		),
	}, nil
}

func (r *repo) Refresh(ctx context.Context, today time.Time) (int, error) {
	return refresh.Statuses(ctx, r.db, "job_safety_analyses", "review_on",
		func(review *safety.Date, current safety.Status) safety.Status {
			return r.classifier.ClassifyDate(today, review, current)
		},
	)
}
