package jsa

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/pkg/pagination"
)

// System defines the public contract for job safety analysis operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Analysis], error)
	Find(ctx context.Context, id uuid.UUID) (*Analysis, error)
	Create(ctx context.Context, cmd Command) (*Analysis, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*Analysis, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Summary(ctx context.Context, search string, filters Filters) (*Summary, error)
	Refresh(ctx context.Context, today time.Time) (int, error)
}
