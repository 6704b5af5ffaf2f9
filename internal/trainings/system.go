package trainings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/internal/attachments"
	"github.com/JaimeStill/ssma/pkg/pagination"
)

// System defines the public contract for training domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Training], error)

	Find(ctx context.Context, id uuid.UUID) (*Training, error)
	Create(ctx context.Context, cmd Command) (*Training, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*Training, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Summary(ctx context.Context, search string, filters Filters) (*Summary, error)
	Attach(ctx context.Context, id uuid.UUID, upload *attachments.Upload) (*Training, error)
	Attachments() *attachments.Store
	Refresh(ctx context.Context, today time.Time) (int, error)
}
