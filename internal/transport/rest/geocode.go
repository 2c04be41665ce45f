package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

type geocoder interface {
	Geocode(ctx context.Context, address string) (domain.LatLng, bool)
	ReverseGeocode(ctx context.Context, lat, lon float64) string
}

// GeocodeHandler exposes address lookups for the client-side location picker.
type GeocodeHandler struct {
	geo geocoder
	log *slog.Logger
}

func NewGeocodeHandler(geo geocoder, logger *slog.Logger) *GeocodeHandler {
	return &GeocodeHandler{geo: geo, log: logger.With("handler", "geocode")}
}

type geocodeResponse struct {
	Address  string         `json:"address"`
	Found    bool           `json:"found"`
	Location *domain.LatLng `json:"location"`
}

type reverseGeocodeResponse struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Place string  `json:"place"`
}

// Geocode handles GET /api/geocode/?address=. A failed lookup is reported
// as found=false, never as an error.
func (h *GeocodeHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	addr := strings.TrimSpace(r.URL.Query().Get("address"))
	if addr == "" {
		writeError(w, http.StatusBadRequest, "address is required")
		return
	}

	resp := geocodeResponse{Address: addr}
	if ll, ok := h.geo.Geocode(r.Context(), addr); ok {
		resp.Found = true
		resp.Location = &ll
	} else {
		h.log.DebugContext(r.Context(), "address not found", slog.String("address", addr))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ReverseGeocode handles GET /api/reverse-geocode/?lat=&lon=.
func (h *GeocodeHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	if errLat != nil || errLon != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		writeError(w, http.StatusBadRequest, "lat and lon must be valid coordinates")
		return
	}

	writeJSON(w, http.StatusOK, reverseGeocodeResponse{
		Lat:   lat,
		Lon:   lon,
		Place: h.geo.ReverseGeocode(r.Context(), lat, lon),
	})
}
