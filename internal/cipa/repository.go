package cipa

import (
	"context"
	"database/sql"
	"fmt"
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
	clock         safety.Clock
	search        []safety.Field[Meeting]
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
		logger:        logger.With("system", "cipa"),
		pagination:    pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Meeting], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, r.searchColumns...)

	filters.Apply(qb)

	result, err := repository.QueryPage(ctx, r.db, qb, page, "cipa meetings", scanMeeting)
	if err != nil {
		return nil, err
	}

	if err := r.loadActions(ctx, r.db, result.Data); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Meeting, error) {
	return r.find(ctx, r.db, id)
}

func (r *repo) find(ctx context.Context, q repository.Querier, id uuid.UUID) (*Meeting, error) {
	sql, args := query.NewBuilder(projection).BuildSingle("id", id)

	m, err := repository.QueryOne(ctx, q, sql, args, scanMeeting)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	meetings := []Meeting{m}
	if err := r.loadActions(ctx, q, meetings); err != nil {
		return nil, err
	}
	return &meetings[0], nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Meeting, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return nil, err
	}
	today := r.clock.Today()

	m, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Meeting, error) {
		id := uuid.New()
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cipa_meetings(id, title, location, agenda, minutes, meeting_on, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, cmd.Title, cmd.Location, cmd.Agenda, cmd.Minutes, cmd.MeetingOn, meetingStatusOrDefault(cmd.Status),
		)
		if err != nil {
			return nil, err
		}
		if err := insertActions(ctx, tx, id, cmd.Actions, today); err != nil {
			return nil, err
		}
		return r.find(ctx, tx, id)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("cipa meeting created", "id", m.ID, "actions", len(m.Actions))
	return m, nil
}

// Update replaces the meeting fields and its complete action list.
func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Meeting, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return nil, err
	}
	today := r.clock.Today()

	m, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Meeting, error) {
		err := repository.ExecExpectOne(ctx, tx, `
			UPDATE cipa_meetings
			SET title = $1, location = $2, agenda = $3, minutes = $4, meeting_on = $5, status = $6,
				updated_at = now()
			WHERE id = $7`,
			cmd.Title, cmd.Location, cmd.Agenda, cmd.Minutes, cmd.MeetingOn, meetingStatusOrDefault(cmd.Status), id,
		)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM cipa_actions WHERE meeting_id = $1", id); err != nil {
			return nil, err
		}
		if err := insertActions(ctx, tx, id, cmd.Actions, today); err != nil {
			return nil, err
		}
		return r.find(ctx, tx, id)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("cipa meeting updated", "id", m.ID, "actions", len(m.Actions))
	return m, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.Exec(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM cipa_meetings WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("cipa meeting deleted", "id", id)
	return nil
}

func (r *repo) Summary(ctx context.Context, search string, filters Filters) (*Summary, error) {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	all, err := repository.QueryAll(ctx, r.db, qb, "cipa meetings", scanMeeting)
	if err != nil {
		return nil, err
	}
	if err := r.loadActions(ctx, r.db, all); err != nil {
		return nil, err
	}

	return summarize(safety.Filter(all, search, r.search)), nil
}

// Refresh marks follow-up actions past their deadline as overdue.
func (r *repo) Refresh(ctx context.Context, today time.Time) (int, error) {
	return refresh.Statuses(ctx, r.db, "cipa_actions", "deadline",
		func(deadline *safety.Date, current safety.ActionStatus) safety.ActionStatus {
			return safety.DeriveActionStatus(today, deadline.TimePtr(), current)
		},
	)
}

func (r *repo) loadActions(ctx context.Context, q repository.Querier, meetings []Meeting) error {
	if len(meetings) == 0 {
		return nil
	}

	ids := lo.Map(meetings, func(m Meeting, _ int) string { return m.ID.String() })

	rows, err := repository.QueryMany(ctx, q,
		"SELECT "+actionColumns+" FROM cipa_actions WHERE meeting_id::text = ANY($1) ORDER BY position",
		[]any{ids},
		scanAction,
	)
	if err != nil {
		return fmt.Errorf("query cipa actions: %w", err)
	}

	byMeeting := lo.GroupBy(rows, func(a actionRow) uuid.UUID { return a.meetingID })
	for i := range meetings {
		meetings[i].Actions = lo.Map(byMeeting[meetings[i].ID], func(a actionRow, _ int) Action { return a.Action })
	}
	return nil
}

func insertActions(ctx context.Context, tx *sql.Tx, meetingID uuid.UUID, actions []ActionCommand, today time.Time) error {
	for i, a := range actions {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cipa_actions(id, meeting_id, position, description, responsible, deadline, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(), meetingID, i, a.Description, a.Responsible, a.Deadline, actionStatus(today, a),
		)
		if err != nil {
			return fmt.Errorf("insert cipa action %d: %w", i, err)
		}
	}
	return nil
}

func actionStatus(today time.Time, a ActionCommand) safety.ActionStatus {
	return safety.DeriveActionStatus(today, a.Deadline.TimePtr(), a.Status)
}

func meetingStatusOrDefault(s MeetingStatus) MeetingStatus {
	if s == "" {
		return MeetingScheduled
	}
	return s
}

func summarize(meetings []Meeting) *Summary {
	actions := lo.FlatMap(meetings, func(m Meeting, _ int) []Action { return m.Actions })
	return &Summary{
		Total:    len(meetings),
		ByStatus: lo.CountValuesBy(meetings, func(m Meeting) MeetingStatus { return m.Status }),
		Actions:  safety.CountByActionStatus(actions, func(a Action) safety.ActionStatus { return a.Status }),
	}
}
