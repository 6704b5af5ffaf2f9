package lawsuits

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

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
	window        int
	clock         safety.Clock
	search        []safety.Field[Lawsuit]
	searchColumns []string
	logger        *slog.Logger
	pagination    pagination.Config
}

// New creates a lawsuit repository. window is the number of days ahead
// counted as an upcoming hearing.
func New(
	db *sql.DB,
	window int,
	clock safety.Clock,
	search []string,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:            db,
		window:        window,
		clock:         clock,
		search:        searchFields.Select(search),
		searchColumns: search,
		logger:        logger.With("system", "lawsuits"),
		pagination:    pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Lawsuit], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, r.searchColumns...)

	filters.Apply(qb)

	return repository.QueryPage(ctx, r.db, qb, page, "lawsuits", scanLawsuit)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Lawsuit, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	l, err := repository.QueryOne(ctx, r.db, q, args, scanLawsuit)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &l, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Lawsuit, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO lawsuits(id, case_number, plaintiff, court, subject, nr, filed_on,
			next_hearing_on, claim_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + columns

	args := []any{
		uuid.New(), cmd.CaseNumber, cmd.Plaintiff, cmd.Court, cmd.Subject, cmd.NR, cmd.FiledOn,
		cmd.NextHearingOn, cmd.ClaimAmount, statusOrDefault(cmd.Status),
	}

	l, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Lawsuit, error) {
		return repository.QueryOne(ctx, tx, q, args, scanLawsuit)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("lawsuit created", "id", l.ID, "case_number", l.CaseNumber)
	return &l, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Lawsuit, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return nil, err
	}

	q := `
		UPDATE lawsuits
		SET case_number = $1, plaintiff = $2, court = $3, subject = $4, nr = $5, filed_on = $6,
			next_hearing_on = $7, claim_amount = $8, status = $9, updated_at = now()
		WHERE id = $10
		RETURNING ` + columns

	args := []any{
		cmd.CaseNumber, cmd.Plaintiff, cmd.Court, cmd.Subject, cmd.NR, cmd.FiledOn,
		cmd.NextHearingOn, cmd.ClaimAmount, statusOrDefault(cmd.Status), id,
	}

	l, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Lawsuit, error) {
		return repository.QueryOne(ctx, tx, q, args, scanLawsuit)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("lawsuit updated", "id", l.ID, "status", l.Status)
	return &l, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.Exec(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM lawsuits WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("lawsuit deleted", "id", id)
	return nil
}

func (r *repo) Summary(ctx context.Context, search string, filters Filters) (*Summary, error) {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	all, err := repository.QueryAll(ctx, r.db, qb, "lawsuits", scanLawsuit)
	if err != nil {
		return nil, err
	}

	return summarize(safety.Filter(all, search, r.search), r.clock.Today(), r.window), nil
}

func summarize(lawsuits []Lawsuit, today time.Time, window int) *Summary {
	open := lo.Filter(lawsuits, func(l Lawsuit, _ int) bool { return l.Status == StatusInProgress })
	horizon := safety.Midnight(today).AddDate(0, 0, window)

	return &Summary{
		Total:    len(lawsuits),
		ByStatus: lo.CountValuesBy(lawsuits, func(l Lawsuit) Status { return l.Status }),
		UpcomingHearings: safety.CountWhere(open, func(l Lawsuit) bool {
			if l.NextHearingOn == nil {
				return false
			}
			h := safety.Midnight(l.NextHearingOn.Time)
			return !h.Before(safety.Midnight(today)) && !h.After(horizon)
		}),
		OpenClaims: lo.SumBy(open, func(l Lawsuit) float64 {
			if l.ClaimAmount == nil {
				return 0
			}
			return *l.ClaimAmount
		}),
	}
}

func statusOrDefault(s Status) Status {
	if s == "" {
		return StatusInProgress
	}
	return s
}
