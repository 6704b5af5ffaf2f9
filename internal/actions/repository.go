package actions

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
	clock         safety.Clock
	search        []safety.Field[Action]
	searchColumns []string
	logger        *slog.Logger
	pagination    pagination.Config
}

func New(
	db *sql.DB,
	clock safety.Clock,
	search []string,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:            db,
		clock:         clock,
		search:        searchFields.Select(search),
		searchColumns: search,
		logger:        logger.With("system", "actions"),
		pagination:    pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Action], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, r.searchColumns...)

	filters.Apply(qb)

	return repository.QueryPage(ctx, r.db, qb, page, "actions", scanAction)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Action, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAction)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Action, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO actions(id, title, description, origin, responsible, department, due_on,
			completed_on, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + columns

	args := []any{
		uuid.New(), cmd.Title, cmd.Description, cmd.Origin, cmd.Responsible, cmd.Department,
		cmd.DueOn, cmd.CompletedOn, stamp(r.clock.Today(), cmd),
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Action, error) {
		return repository.QueryOne(ctx, tx, q, args, scanAction)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("action created", "id", a.ID, "status", a.Status)
	return &a, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Action, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return nil, err
	}

	q := `
		UPDATE actions
		SET title = $1, description = $2, origin = $3, responsible = $4, department = $5,
			due_on = $6, completed_on = $7, status = $8, updated_at = now()
		WHERE id = $9
		RETURNING ` + columns

	args := []any{
		cmd.Title, cmd.Description, cmd.Origin, cmd.Responsible, cmd.Department,
		cmd.DueOn, cmd.CompletedOn, stamp(r.clock.Today(), cmd), id,
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Action, error) {
		return repository.QueryOne(ctx, tx, q, args, scanAction)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("action updated", "id", a.ID, "status", a.Status)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.Exec(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM actions WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("action deleted", "id", id)
	return nil
}

func (r *repo) Summary(ctx context.Context, search string, filters Filters) (*Summary, error) {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	all, err := repository.QueryAll(ctx, r.db, qb, "actions", scanAction)
	if err != nil {
		return nil, err
	}

	return summarize(safety.Filter(all, search, r.search)), nil
}

func (r *repo) Refresh(ctx context.Context, today time.Time) (int, error) {
	return refresh.Statuses(ctx, r.db, "actions", "due_on",
		func(due *safety.Date, current safety.ActionStatus) safety.ActionStatus {
			return safety.DeriveActionStatus(today, due.TimePtr(), current)
		},
	)
}

// stamp returns the status to store for cmd. A completion date always
// means done.
func stamp(today time.Time, cmd Command) safety.ActionStatus {
	if cmd.CompletedOn != nil {
		return safety.ActionDone
	}
	return safety.DeriveActionStatus(today, cmd.DueOn.TimePtr(), cmd.Status)
}

func summarize(actions []Action) *Summary {
	counts := safety.CountByActionStatus(actions, func(a Action) safety.ActionStatus { return a.Status })
	return &Summary{
		ActionCounts:      counts,
		CompletionPercent: safety.Percentage(counts.Done, counts.Total),
	}
}
