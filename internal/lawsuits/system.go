package lawsuits

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/pkg/pagination"
)

// System defines the public contract for lawsuit operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Lawsuit], error)
	Find(ctx context.Context, id uuid.UUID) (*Lawsuit, error)
	Create(ctx context.Context, cmd Command) (*Lawsuit, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*Lawsuit, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Summary(ctx context.Context, search string, filters Filters) (*Summary, error)
}
