package cipa

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/pkg/pagination"
)

// System defines the public contract for CIPA meeting operations.
// Meetings are always returned with their follow-up actions.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Meeting], error)
	Find(ctx context.Context, id uuid.UUID) (*Meeting, error)
	Create(ctx context.Context, cmd Command) (*Meeting, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*Meeting, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Summary(ctx context.Context, search string, filters Filters) (*Summary, error)
	Refresh(ctx context.Context, today time.Time) (int, error)
}
