package actions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/pkg/pagination"
)

// System defines the public contract for preventive and corrective action
// operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Action], error)
	Find(ctx context.Context, id uuid.UUID) (*Action, error)
	Create(ctx context.Context, cmd Command) (*Action, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*Action, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Summary(ctx context.Context, search string, filters Filters) (*Summary, error)
	Refresh(ctx context.Context, today time.Time) (int, error)
}
