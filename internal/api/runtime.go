package api

import (
	"github.com/JaimeStill/ssma/internal/config"
	"github.com/JaimeStill/ssma/internal/infrastructure"
	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Safety     safety.Config
	Classifier safety.Classifier
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Clock:     infra.Clock,
		},
		Pagination: cfg.API.Pagination,
		Safety:     cfg.Safety,
		Classifier: safety.NewClassifier(cfg.Safety),
	}
}

// Search returns the configured search fields for a record kind.
func (r *Runtime) Search(kind string) []string {
	return r.Safety.SearchFields(kind)
}
