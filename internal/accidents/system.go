package accidents

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/pagination"
)

// System defines the public contract for accident operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Accident], error)
	Find(ctx context.Context, id uuid.UUID) (*Accident, error)
	Create(ctx context.Context, cmd Command) (*Accident, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*Accident, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Summary aggregates the accidents matching search and filters.
	// headcount is the workforce size the affected percentage is taken against.
	Summary(ctx context.Context, search string, filters Filters, headcount int) (*Summary, error)

	// Rates computes frequency and severity rates for accidents that
	// occurred between from and to, inclusive. Nil bounds are open.
	Rates(ctx context.Context, from, to *safety.Date, hoursWorked float64) (*Rates, error)
}
