package api

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/handlers"
	"github.com/JaimeStill/ssma/pkg/routes"
)

// effectiveConfig is the classification configuration in force.
type effectiveConfig struct {
	ExpiringSoonWindowDays int                   `json:"expiring_soon_window_days"`
	MissingDateStatus      safety.Status         `json:"missing_date_status"`
	OverrideStatuses       []safety.Status       `json:"override_statuses"`
	Timezone               string                `json:"timezone"`
	RefreshInterval        string                `json:"refresh_interval"`
	Today                  safety.Date           `json:"today"`
	Statuses               []safety.Status       `json:"statuses"`
	ActionStatuses         []safety.ActionStatus `json:"action_statuses"`
	Search                 map[string][]string   `json:"search"`
}

type configHandler struct {
	cfg    safety.Config
	clock  safety.Clock
	logger *slog.Logger
}

func newConfigHandler(cfg safety.Config, clock safety.Clock, logger *slog.Logger) *configHandler {
	return &configHandler{
		cfg:    cfg,
		clock:  clock,
		logger: logger.With("handler", "safety"),
	}
}

func (h *configHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/safety",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/config", Handler: h.config},
		},
	}
}

func (h *configHandler) config(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, effectiveConfig{
		ExpiringSoonWindowDays: h.cfg.ExpiringSoonWindowDays,
		MissingDateStatus:      h.cfg.MissingDateStatus,
		OverrideStatuses:       h.cfg.OverrideStatuses,
		Timezone:               h.cfg.Timezone,
		RefreshInterval:        h.cfg.RefreshInterval,
		Today:                  safety.NewDate(h.clock.Today()),
		Statuses:               safety.Statuses(),
		ActionStatuses:         safety.ActionStatuses(),
		Search:                 h.cfg.Search,
	})
}
