package chemicals

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
	search        []safety.Field[Chemical]
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
		logger:        logger.With("system", "chemicals"),
		pagination:    pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Chemical], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, r.searchColumns...)

	filters.Apply(qb)

	return repository.QueryPage(ctx, r.db, qb, page, "chemicals", scanChemical)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Chemical, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanChemical)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Chemical, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return nil, err
	}
	status := r.classifier.ClassifyDate(r.clock.Today(), cmd.ExpiresOn, cmd.Status)

	q := `
		INSERT INTO chemicals(id, name, manufacturer, cas_number, hazard_class, location, quantity,
			unit, sds_revised_on, expires_on, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + columns

	args := []any{
		uuid.New(), cmd.Name, cmd.Manufacturer, cmd.CASNumber, cmd.HazardClass, cmd.Location,
		cmd.Quantity, cmd.Unit, cmd.SDSRevisedOn, cmd.ExpiresOn, status,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Chemical, error) {
		return repository.QueryOne(ctx, tx, q, args, scanChemical)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("chemical created", "id", c.ID, "name", c.Name, "status", c.Status)
	return &c, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Chemical, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return nil, err
	}
	status := r.classifier.ClassifyDate(r.clock.Today(), cmd.ExpiresOn, cmd.Status)

	q := `
		UPDATE chemicals
		SET name = $1, manufacturer = $2, cas_number = $3, hazard_class = $4, location = $5,
			quantity = $6, unit = $7, sds_revised_on = $8, expires_on = $9, status = $10,
			updated_at = now()
		WHERE id = $11
		RETURNING ` + columns

	args := []any{
		cmd.Name, cmd.Manufacturer, cmd.CASNumber, cmd.HazardClass, cmd.Location,
		cmd.Quantity, cmd.Unit, cmd.SDSRevisedOn, cmd.ExpiresOn, status, id,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Chemical, error) {
		return repository.QueryOne(ctx, tx, q, args, scanChemical)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("chemical updated", "id", c.ID, "status", c.Status)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.Exec(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM chemicals WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("chemical deleted", "id", id)
	return nil
}

func (r *repo) Summary(ctx context.Context, search string, filters Filters) (*Summary, error) {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	all, err := repository.QueryAll(ctx, r.db, qb, "chemicals", scanChemical)
	if err != nil {
		return nil, err
	}

	return summarize(safety.Filter(all, search, r.search)), nil
}

func (r *repo) Refresh(ctx context.Context, today time.Time) (int, error) {
	return refresh.Statuses(ctx, r.db, "chemicals", "expires_on",
		func(expires *safety.Date, current safety.Status) safety.Status {
			return r.classifier.ClassifyDate(today, expires, current)
		},
	)
}

func summarize(chemicals []Chemical) *Summary {
	return &Summary{
		StatusCounts: safety.CountByStatus(chemicals, func(c Chemical) safety.Status { return c.Status }),
		Locations:    len(lo.Uniq(lo.Map(chemicals, func(c Chemical, _ int) string { return c.Location }))),
		MissingSDS:   safety.CountWhere(chemicals, func(c Chemical) bool { return c.SDSRevisedOn == nil }),
	}
}
