// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/ssma/internal/config"
	"github.com/JaimeStill/ssma/internal/infrastructure"
	"github.com/JaimeStill/ssma/internal/refresh"
	"github.com/JaimeStill/ssma/pkg/middleware"
	"github.com/JaimeStill/ssma/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware,
// and schedules the background status refresh on the lifecycle coordinator.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(
		middleware.RequestID(),
		middleware.Logger(runtime.Logger),
		middleware.Recover(runtime.Logger),
		middleware.CORS(&cfg.API.CORS),
	)

	if cfg.Auth.Enabled {
		verifier, err := middleware.NewVerifier(runtime.Lifecycle.Context(), &cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("auth init failed: %w", err)
		}
		m.Use(middleware.Auth(verifier, runtime.Logger))
	}

	runner := refresh.NewRunner(runtime.Clock, cfg.Safety.RefreshIntervalDuration(), runtime.Logger)
	for name, ref := range domain.Refreshers() {
		runner.Register(name, ref)
	}
	runner.Start(runtime.Lifecycle)

	return m, nil
}
