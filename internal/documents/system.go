package documents

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/internal/attachments"
	"github.com/JaimeStill/ssma/pkg/pagination"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, cmd Command) (*Document, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Upload creates a document and stores its file in one request.
	// The row is removed again when the blob upload fails.
	Upload(ctx context.Context, cmd Command, upload *attachments.Upload) (*Document, error)

	Summary(ctx context.Context, search string, filters Filters) (*Summary, error)
	Attach(ctx context.Context, id uuid.UUID, upload *attachments.Upload) (*Document, error)
	Attachments() *attachments.Store
	Refresh(ctx context.Context, today time.Time) (int, error)
}
