package diseases

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/pkg/pagination"
)

// System defines the public contract for occupational disease operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Disease], error)
	Find(ctx context.Context, id uuid.UUID) (*Disease, error)
	Create(ctx context.Context, cmd Command) (*Disease, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*Disease, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Summary(ctx context.Context, search string, filters Filters) (*Summary, error)
}
