package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/ssma/internal/config"
	"github.com/JaimeStill/ssma/pkg/openapi"
	"github.com/JaimeStill/ssma/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	maxUpload := cfg.API.MaxUploadSizeBytes()

	groups := []routes.Group{
		domain.Trainings.Handler(maxUpload).Routes(),
		domain.PPE.Handler().Routes(),
		domain.Exams.Handler(maxUpload).Routes(),
		domain.Chemicals.Handler().Routes(),
		domain.JSA.Handler().Routes(),
		domain.Lawsuits.Handler().Routes(),
		domain.Diseases.Handler().Routes(),
		domain.Documents.Handler(maxUpload).Routes(),
		domain.CIPA.Handler().Routes(),
		domain.Actions.Handler().Routes(),
		domain.Accidents.Handler().Routes(),
		domain.Dashboard.Handler().Routes(),
		newConfigHandler(runtime.Safety, runtime.Clock, runtime.Logger).routes(),
	}

	spec := buildSpec(cfg.API.OpenAPI, cfg.Version, cfg.API.BasePath, groups...)
	if cfg.Auth.Enabled {
		requireAuth(spec)
	}
	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}

	routes.Register(mux, groups...)
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}
