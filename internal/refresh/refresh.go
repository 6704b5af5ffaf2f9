// Package refresh re-derives stored record statuses as calendar days pass.
// Statuses are stamped at write time; without a refresh a valid record would
// stay valid in the database after its expiry date.
package refresh

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/lifecycle"
	"github.com/JaimeStill/ssma/pkg/repository"
)

// Refresher re-derives the statuses of one record kind for today.
type Refresher interface {
	Refresh(ctx context.Context, today time.Time) (int, error)
}

type row[S ~string] struct {
	id     uuid.UUID
	date   *safety.Date
	status S
}

// Statuses loads id, dateColumn, and status from table, applies derive to
// each row, and updates the rows whose status changed in one transaction.
// table and dateColumn must be trusted identifiers.
func Statuses[S ~string](
	ctx context.Context,
	db *sql.DB,
	table, dateColumn string,
	derive func(date *safety.Date, current S) S,
) (int, error) {
	selectSQL := fmt.Sprintf("SELECT id, %s, status FROM %s", dateColumn, table)
	updateSQL := fmt.Sprintf("UPDATE %s SET status = $1, updated_at = now() WHERE id = $2", table)

	return repository.WithTx(ctx, db, func(tx *sql.Tx) (int, error) {
		rows, err := repository.QueryMany(ctx, tx, selectSQL, nil, func(s repository.Scanner) (row[S], error) {
			var r row[S]
			err := s.Scan(&r.id, &r.date, &r.status)
			return r, err
		})
		if err != nil {
			return 0, fmt.Errorf("load %s statuses: %w", table, err)
		}

		changed := 0
		for _, r := range rows {
			next := derive(r.date, r.status)
			if next == r.status {
				continue
			}
			if _, err := tx.ExecContext(ctx, updateSQL, next, r.id); err != nil {
				return 0, fmt.Errorf("update %s status: %w", table, err)
			}
			changed++
		}

		return changed, nil
	})
}

// Runner refreshes every registered kind at startup and on a fixed interval
// until the lifecycle context is cancelled.
type Runner struct {
	refreshers map[string]Refresher
	clock      safety.Clock
	interval   time.Duration
	logger     *slog.Logger
}

// NewRunner creates a Runner. A zero interval refreshes once at startup only.
func NewRunner(clock safety.Clock, interval time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		refreshers: make(map[string]Refresher),
		clock:      clock,
		interval:   interval,
		logger:     logger.With("system", "refresh"),
	}
}

// Register adds a named refresher.
func (r *Runner) Register(name string, ref Refresher) {
	r.refreshers[name] = ref
}

// RunOnce refreshes every registered kind and returns the number of changed
// rows per kind. Errors for one kind do not stop the others.
func (r *Runner) RunOnce(ctx context.Context) map[string]int {
	today := r.clock.Today()
	results := make(map[string]int, len(r.refreshers))

	for name, ref := range r.refreshers {
		n, err := ref.Refresh(ctx, today)
		if err != nil {
			r.logger.Error("status refresh failed", "kind", name, "error", err)
			continue
		}
		results[name] = n
		if n > 0 {
			r.logger.Info("statuses refreshed", "kind", name, "changed", n)
		}
	}

	return results
}

// Start schedules the refresh loop on the lifecycle coordinator. The first
// pass runs once startup completes; shutdown waits for the loop to exit.
func (r *Runner) Start(lc *lifecycle.Coordinator) {
	lc.OnReady(func() {
		r.loop(lc.Context())
	})
}

func (r *Runner) loop(ctx context.Context) {
	r.RunOnce(ctx)
	if r.interval <= 0 {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}
