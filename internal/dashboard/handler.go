package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/ssma/internal/accidents"
	"github.com/JaimeStill/ssma/pkg/handlers"
	"github.com/JaimeStill/ssma/pkg/routes"
)

// Handler provides the dashboard HTTP endpoint.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "dashboard"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/dashboard",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Get},
		},
	}
}

// Get handles GET /dashboard?from=&to=&hours_worked=&headcount=.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	from, to, err := accidents.ParsePeriod(values)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	hours, err := accidents.ParseHours(values.Get("hours_worked"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	headcount, err := accidents.ParseHeadcount(values.Get("headcount"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	d, err := h.sys.Build(r.Context(), Request{
		From:        from,
		To:          to,
		HoursWorked: hours,
		Headcount:   headcount,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, d)
}
