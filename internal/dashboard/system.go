package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/ssma/internal/accidents"
)

// System builds the dashboard.
type System interface {
	Handler() *Handler
	Build(ctx context.Context, req Request) (*Dashboard, error)
}

type service struct {
	sources Sources
	logger  *slog.Logger
}

func New(sources Sources, logger *slog.Logger) System {
	return &service{
		sources: sources,
		logger:  logger.With("system", "dashboard"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

// Build queries every configured source concurrently. The first failure
// cancels the remaining queries and is returned.
func (s *service) Build(ctx context.Context, req Request) (*Dashboard, error) {
	if req.HoursWorked < 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, accidents.ErrInvalidHours)
	}
	if req.Headcount < 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, accidents.ErrInvalidCount)
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, accidents.ErrInvalidPeriod)
	}

	d := &Dashboard{
		From:        req.From,
		To:          req.To,
		HoursWorked: req.HoursWorked,
		Headcount:   req.Headcount,
	}

	g, gctx := errgroup.WithContext(ctx)

	card(g, gctx, "trainings", s.sources.Trainings, &d.Trainings)
	card(g, gctx, "ppe", s.sources.PPE, &d.PPE)
	card(g, gctx, "exams", s.sources.Exams, &d.Exams)
	card(g, gctx, "chemicals", s.sources.Chemicals, &d.Chemicals)
	card(g, gctx, "jsa", s.sources.JSA, &d.JSA)
	card(g, gctx, "lawsuits", s.sources.Lawsuits, &d.Lawsuits)
	card(g, gctx, "diseases", s.sources.Diseases, &d.Diseases)
	card(g, gctx, "documents", s.sources.Documents, &d.Documents)
	card(g, gctx, "cipa", s.sources.CIPA, &d.CIPA)
	card(g, gctx, "actions", s.sources.Actions, &d.Actions)

	if src := s.sources.Accidents; src != nil {
		filters := accidents.Filters{OccurredFrom: req.From, OccurredTo: req.To}

		g.Go(func() error {
			summary, err := src.Summary(gctx, "", filters, req.Headcount)
			if err != nil {
				return fmt.Errorf("accidents summary: %w", err)
			}
			d.Accidents = summary
			return nil
		})

		g.Go(func() error {
			rates, err := src.Rates(gctx, req.From, req.To, req.HoursWorked)
			if err != nil {
				return fmt.Errorf("accident rates: %w", err)
			}
			d.Rates = rates
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return d, nil
}

// card schedules one summary query writing into dst. Each goroutine owns
// its destination field.
func card[S, F any](g *errgroup.Group, ctx context.Context, name string, src Summarizer[S, F], dst **S) {
	if src == nil {
		return
	}

	g.Go(func() error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var filters F
		summary, err := src.Summary(ctx, "", filters)
		if err != nil {
			return fmt.Errorf("%s summary: %w", name, err)
		}
		*dst = summary
		return nil
	})
}
