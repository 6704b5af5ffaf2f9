package trainings

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/JaimeStill/ssma/internal/attachments"
	"github.com/JaimeStill/ssma/internal/refresh"
	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/pagination"
	"github.com/JaimeStill/ssma/pkg/query"
	"github.com/JaimeStill/ssma/pkg/repository"
	"github.com/JaimeStill/ssma/pkg/validation"
)

type repo struct {
	db            *sql.DB
	attachments   *attachments.Store
	classifier    safety.Classifier
	clock         safety.Clock
	search        []safety.Field[Training]
	searchColumns []string
	logger        *slog.Logger
	pagination    pagination.Config
}

// New creates a training repository implementing the System interface.
// search lists the field names matched by list and summary searches.
func New(
	db *sql.DB,
	store *attachments.Store,
	classifier safety.Classifier,
	clock safety.Clock,
	search []string,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:            db,
		attachments:   store,
		classifier:    classifier,
		clock:         clock,
		search:        searchFields.Select(search),
		searchColumns: search,
		logger:        logger.With("system", "trainings"),
		pagination:    pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) Attachments() *attachments.Store {
	return r.attachments
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Training], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, r.searchColumns...)

	filters.Apply(qb)

	return repository.QueryPage(ctx, r.db, qb, page, "trainings", scanTraining)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Training, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTraining)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Training, error) {
	status, err := r.prepare(cmd)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO trainings(id, employee_id, employee_name, department, course, nr, instructor,
			workload_hours, completed_on, expires_on, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + columns

	args := []any{
		uuid.New(),
		cmd.EmployeeID,
		cmd.EmployeeName,
		cmd.Department,
		cmd.Course,
		cmd.NR,
		cmd.Instructor,
		cmd.WorkloadHours,
		cmd.CompletedOn,
		cmd.ExpiresOn,
		status,
	}

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Training, error) {
		return repository.QueryOne(ctx, tx, q, args, scanTraining)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("training created", "id", t.ID, "course", t.Course, "status", t.Status)
	return &t, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Training, error) {
	status, err := r.prepare(cmd)
	if err != nil {
		return nil, err
	}

	q := `
		UPDATE trainings
		SET employee_id = $1, employee_name = $2, department = $3, course = $4, nr = $5,
			instructor = $6, workload_hours = $7, completed_on = $8, expires_on = $9,
			status = $10, updated_at = now()
		WHERE id = $11
		RETURNING ` + columns

	args := []any{
		cmd.EmployeeID,
		cmd.EmployeeName,
		cmd.Department,
		cmd.Course,
		cmd.NR,
		cmd.Instructor,
		cmd.WorkloadHours,
		cmd.CompletedOn,
		cmd.ExpiresOn,
		status,
		id,
	}

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Training, error) {
		return repository.QueryOne(ctx, tx, q, args, scanTraining)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("training updated", "id", t.ID, "status", t.Status)
	return &t, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	err = repository.Exec(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM trainings WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if t.Attachment != nil {
		r.attachments.Discard(ctx, t.Attachment.StorageKey)
	}

	r.logger.Info("training deleted", "id", id)
	return nil
}

func (r *repo) Summary(ctx context.Context, search string, filters Filters) (*Summary, error) {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	all, err := repository.QueryAll(ctx, r.db, qb, "trainings", scanTraining)
	if err != nil {
		return nil, err
	}

	matched := safety.Filter(all, search, r.search)

	return &Summary{
		StatusCounts: safety.CountByStatus(matched, func(t Training) safety.Status { return t.Status }),
		Employees: len(lo.UniqBy(matched, func(t Training) string {
			if t.EmployeeID != nil {
				return *t.EmployeeID
			}
			return t.EmployeeName
		})),
	}, nil
}

func (r *repo) Attach(ctx context.Context, id uuid.UUID, upload *attachments.Upload) (*Training, error) {
	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	att, err := r.attachments.Put(ctx, id, upload)
	if err != nil {
		return nil, err
	}

	q := `
		UPDATE trainings
		SET attachment_key = $1, attachment_filename = $2, attachment_content_type = $3,
			attachment_size_bytes = $4, attachment_page_count = $5, updated_at = now()
		WHERE id = $6
		RETURNING ` + columns

	args := []any{att.StorageKey, att.Filename, att.ContentType, att.SizeBytes, att.PageCount, id}

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Training, error) {
		return repository.QueryOne(ctx, tx, q, args, scanTraining)
	})
	if err != nil {
		r.attachments.Discard(ctx, att.StorageKey)
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if current.Attachment != nil && current.Attachment.StorageKey != att.StorageKey {
		r.attachments.Discard(ctx, current.Attachment.StorageKey)
	}

	r.logger.Info("training certificate attached", "id", id, "filename", att.Filename)
	return &t, nil
}

func (r *repo) Refresh(ctx context.Context, today time.Time) (int, error) {
	return refresh.Statuses(ctx, r.db, "trainings", "expires_on",
		func(expires *safety.Date, current safety.Status) safety.Status {
			return r.classifier.ClassifyDate(today, expires, current)
		},
	)
}

func (r *repo) prepare(cmd Command) (safety.Status, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return "", err
	}
	return stamp(r.classifier, r.clock.Today(), cmd)
}

// stamp checks the date order of cmd and returns the status to persist.
func stamp(cls safety.Classifier, today time.Time, cmd Command) (safety.Status, error) {
	if cmd.ExpiresOn != nil && cmd.ExpiresOn.Before(cmd.CompletedOn) {
		return "", ErrExpiryBeforeDone
	}
	return cls.ClassifyDate(today, cmd.ExpiresOn, cmd.Status), nil
}
