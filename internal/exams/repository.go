package exams

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
	search        []safety.Field[Exam]
	searchColumns []string
	logger        *slog.Logger
	pagination    pagination.Config
}

// New creates an exam repository implementing the System interface.
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
		logger:        logger.With("system", "exams"),
		pagination:    pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) Attachments() *attachments.Store {
	return r.attachments
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Exam], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, r.searchColumns...)

	filters.Apply(qb)

	return repository.QueryPage(ctx, r.db, qb, page, "exams", scanExam)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Exam, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanExam)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Exam, error) {
	status, err := r.prepare(cmd)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO exams(id, employee_id, employee_name, department, kind, result, physician, crm,
			issued_on, expires_on, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + columns

	args := []any{
		uuid.New(), cmd.EmployeeID, cmd.EmployeeName, cmd.Department, cmd.Kind, cmd.Result,
		cmd.Physician, cmd.CRM, cmd.IssuedOn, cmd.ExpiresOn, status,
	}

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Exam, error) {
		return repository.QueryOne(ctx, tx, q, args, scanExam)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("exam created", "id", e.ID, "kind", e.Kind, "status", e.Status)
	return &e, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Exam, error) {
	status, err := r.prepare(cmd)
	if err != nil {
		return nil, err
	}

	q := `
		UPDATE exams
		SET employee_id = $1, employee_name = $2, department = $3, kind = $4, result = $5,
			physician = $6, crm = $7, issued_on = $8, expires_on = $9, status = $10,
			updated_at = now()
		WHERE id = $11
		RETURNING ` + columns

	args := []any{
		cmd.EmployeeID, cmd.EmployeeName, cmd.Department, cmd.Kind, cmd.Result,
		cmd.Physician, cmd.CRM, cmd.IssuedOn, cmd.ExpiresOn, status, id,
	}

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Exam, error) {
		return repository.QueryOne(ctx, tx, q, args, scanExam)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("exam updated", "id", e.ID, "status", e.Status)
	return &e, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	e, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	err = repository.Exec(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM exams WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if e.Attachment != nil {
		r.attachments.Discard(ctx, e.Attachment.StorageKey)
	}

	r.logger.Info("exam deleted", "id", id)
	return nil
}

func (r *repo) Summary(ctx context.Context, search string, filters Filters) (*Summary, error) {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	all, err := repository.QueryAll(ctx, r.db, qb, "exams", scanExam)
	if err != nil {
		return nil, err
	}

	matched := safety.Filter(all, search, r.search)

	return &Summary{
		StatusCounts: safety.CountByStatus(matched, func(e Exam) safety.Status { return e.Status }),
		Unfit:        safety.CountWhere(matched, func(e Exam) bool { return e.Result == ResultUnfit }),
		ByKind:       lo.CountValuesBy(matched, func(e Exam) Kind { return e.Kind }),
	}, nil
}

func (r *repo) Attach(ctx context.Context, id uuid.UUID, upload *attachments.Upload) (*Exam, error) {
	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	att, err := r.attachments.Put(ctx, id, upload)
	if err != nil {
		return nil, err
	}

	q := `
		UPDATE exams
		SET attachment_key = $1, attachment_filename = $2, attachment_content_type = $3,
			attachment_size_bytes = $4, attachment_page_count = $5, updated_at = now()
		WHERE id = $6
		RETURNING ` + columns

	args := []any{att.StorageKey, att.Filename, att.ContentType, att.SizeBytes, att.PageCount, id}

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Exam, error) {
		return repository.QueryOne(ctx, tx, q, args, scanExam)
	})
	if err != nil {
		r.attachments.Discard(ctx, att.StorageKey)
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if current.Attachment != nil && current.Attachment.StorageKey != att.StorageKey {
		r.attachments.Discard(ctx, current.Attachment.StorageKey)
	}

	r.logger.Info("exam attachment stored", "id", id, "filename", att.Filename)
	return &e, nil
}

func (r *repo) Refresh(ctx context.Context, today time.Time) (int, error) {
	return refresh.Statuses(ctx, r.db, "exams", "expires_on",
		func(expires *safety.Date, current safety.Status) safety.Status {
			return r.classifier.ClassifyDate(today, expires, current)
		},
	)
}

func (r *repo) prepare(cmd Command) (safety.Status, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return "", err
	}
	if cmd.ExpiresOn != nil && cmd.ExpiresOn.Before(cmd.IssuedOn) {
		return "", ErrExpiryBeforeIssue
	}
	return r.classifier.ClassifyDate(r.clock.Today(), cmd.ExpiresOn, cmd.Status), nil
}
