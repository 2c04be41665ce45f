package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
	"github.com/Miru57o/kikai-language-archive/internal/service/mapview"
)

type mapService interface {
	Build(ctx context.Context, year *int) (*mapview.View, error)
}

// MapHandler serves the marker payload of the map page.
type MapHandler struct {
	svc mapService
	log *slog.Logger
}

func NewMapHandler(svc mapService, logger *slog.Logger) *MapHandler {
	return &MapHandler{svc: svc, log: logger.With("handler", "map")}
}

// Map handles GET /map/?year=. A non-numeric year is ignored.
func (h *MapHandler) Map(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Build(r.Context(), domain.ParseYear(r.URL.Query().Get("year")))
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMapResponse(view))
}
