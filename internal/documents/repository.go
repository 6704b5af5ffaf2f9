package documents

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
	search        []safety.Field[Document]
	searchColumns []string
	logger        *slog.Logger
	pagination    pagination.Config
}

// New creates a document repository implementing the System interface.
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
		logger:        logger.With("system", "documents"),
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
) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, r.searchColumns...)

	filters.Apply(qb)

	return repository.QueryPage(ctx, r.db, qb, page, "documents", scanDocument)
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Document, error) {
	return r.insert(ctx, uuid.New(), cmd, nil)
}

func (r *repo) Upload(ctx context.Context, cmd Command, upload *attachments.Upload) (*Document, error) {
	if _, err := r.prepare(cmd); err != nil {
		return nil, err
	}

	id := uuid.New()
	att, err := r.attachments.Put(ctx, id, upload)
	if err != nil {
		return nil, err
	}

	d, err := r.insert(ctx, id, cmd, &att)
	if err != nil {
		r.attachments.Discard(ctx, att.StorageKey)
		return nil, err
	}
	return d, nil
}

func (r *repo) insert(ctx context.Context, id uuid.UUID, cmd Command, att *attachments.Attachment) (*Document, error) {
	status, err := r.prepare(cmd)
	if err != nil {
		return nil, err
	}

	if att == nil {
		att = &attachments.Attachment{}
	}

	q := `
		INSERT INTO documents(id, title, category, description, responsible, issued_on, review_on, status,
			attachment_key, attachment_filename, attachment_content_type, attachment_size_bytes, attachment_page_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, 0), $13)
		RETURNING ` + columns

	insertArgs := []any{
		id,
		cmd.Title,
		cmd.Category,
		cmd.Description,
		cmd.Responsible,
		cmd.IssuedOn,
		cmd.ReviewOn,
		status,
		att.StorageKey,
		att.Filename,
		att.ContentType,
		att.SizeBytes,
		att.PageCount,
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanDocument)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document created", "id", d.ID, "title", d.Title, "status", d.Status)
	return &d, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Document, error) {
	status, err := r.prepare(cmd)
	if err != nil {
		return nil, err
	}

	q := `
		UPDATE documents
		SET title = $1, category = $2, description = $3, responsible = $4, issued_on = $5,
			review_on = $6, status = $7, updated_at = now()
		WHERE id = $8
		RETURNING ` + columns

	args := []any{cmd.Title, cmd.Category, cmd.Description, cmd.Responsible, cmd.IssuedOn, cmd.ReviewOn, status, id}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, args, scanDocument)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document updated", "id", d.ID, "status", d.Status)
	return &d, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	err = repository.Exec(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM documents WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if doc.Attachment != nil {
		r.attachments.Discard(ctx, doc.Attachment.StorageKey)
	}

	r.logger.Info("document deleted", "id", id)
	return nil
}

func (r *repo) Summary(ctx context.Context, search string, filters Filters) (*Summary, error) {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	all, err := repository.QueryAll(ctx, r.db, qb, "documents", scanDocument)
	if err != nil {
		return nil, err
	}

	matched := safety.Filter(all, search, r.search)

	return &Summary{
		StatusCounts:      safety.CountByStatus(matched, func(d Document) safety.Status { return d.Status }),
		ByCategory:        lo.CountValuesBy(matched, func(d Document) string { return d.Category }),
		WithoutAttachment: safety.CountWhere(matched, func(d Document) bool { return d.Attachment == nil }),
	}, nil
}

func (r *repo) Attach(ctx context.Context, id uuid.UUID, upload *attachments.Upload) (*Document, error) {
	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	att, err := r.attachments.Put(ctx, id, upload)
	if err != nil {
		return nil, err
	}

	q := `
		UPDATE documents
		SET attachment_key = $1, attachment_filename = $2, attachment_content_type = $3,
			attachment_size_bytes = $4, attachment_page_count = $5, updated_at = now()
		WHERE id = $6
		RETURNING ` + columns

	args := []any{att.StorageKey, att.Filename, att.ContentType, att.SizeBytes, att.PageCount, id}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, args, scanDocument)
	})
	if err != nil {
		r.attachments.Discard(ctx, att.StorageKey)
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if current.Attachment != nil && current.Attachment.StorageKey != att.StorageKey {
		r.attachments.Discard(ctx, current.Attachment.StorageKey)
	}

	r.logger.Info("document file attached", "id", id, "filename", att.Filename, "size", att.SizeBytes)
	return &d, nil
}

func (r *repo) Refresh(ctx context.Context, today time.Time) (int, error) {
	return refresh.Statuses(ctx, r.db, "documents", "review_on",
		func(review *safety.Date, current safety.Status) safety.Status {
			return r.classifier.ClassifyDate(today, review, current)
		},
	)
}

func (r *repo) prepare(cmd Command) (safety.Status, error) {
	if err := validation.Struct(cmd, ErrInvalid); err != nil {
		return "", err
	}
	return stamp(r.classifier, r.clock.Today(), cmd)
}

func stamp(cls safety.Classifier, today time.Time, cmd Command) (safety.Status, error) {
	if cmd.IssuedOn != nil && cmd.ReviewOn != nil && cmd.ReviewOn.Before(*cmd.IssuedOn) {
		return "", ErrReviewBeforeIssue
	}
	return cls.ClassifyDate(today, cmd.ReviewOn, cmd.Status), nil
}
