package app

import (
	"log/slog"
	"net/http"

	"github.com/Miru57o/kikai-language-archive/internal/config"
	"github.com/Miru57o/kikai-language-archive/internal/transport/middleware"
	"github.com/Miru57o/kikai-language-archive/internal/transport/rest"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Catalog  *rest.CatalogHandler
	Map      *rest.MapHandler
	Upload   *rest.UploadHandler
	Download *rest.DownloadHandler
	Geocode  *rest.GeocodeHandler
	Admin    *rest.AdminHandler
	Health   *rest.HealthHandler
	Metrics  http.Handler
}

// NewRouter builds the HTTP handler. Trailing-slash paths are canonical;
// ServeMux redirects the bare form.
func NewRouter(
	cfg *config.Config,
	h Handlers,
	rl *middleware.RateLimiter,
	obs middleware.HTTPObserver,
	logger *slog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	uploadLimit := rl.Limit(cfg.RateLimit.UploadPerMinute)
	downloadLimit := rl.Limit(cfg.RateLimit.DownloadPerMinute)

	// Archive views
	mux.HandleFunc("GET /{$}", h.Catalog.Index)
	mux.HandleFunc("GET /map/{$}", h.Map.Map)
	mux.HandleFunc("GET /records/{$}", h.Catalog.ListRecords)
	mux.HandleFunc("GET /records/search/{$}", h.Catalog.Search)
	mux.HandleFunc("GET /records/{id}/{$}", h.Catalog.GetRecord)
	mux.HandleFunc("GET /geographic/{$}", h.Catalog.ListGeographic)
	mux.HandleFunc("GET /geographic/{id}/{$}", h.Catalog.GetGeographic)
	mux.HandleFunc("GET /village/{id}/records/{$}", h.Catalog.VillageRecords)
	mux.HandleFunc("GET /speaker/{id}/records/{$}", h.Catalog.SpeakerRecords)

	// Uploads
	mux.HandleFunc("GET /records/upload/{$}", h.Upload.LanguageForm)
	mux.Handle("POST /records/upload/{$}", uploadLimit(http.HandlerFunc(h.Upload.UploadLanguage)))
	mux.HandleFunc("GET /geographic/upload/{$}", h.Upload.GeographicForm)
	mux.Handle("POST /geographic/upload/{$}", uploadLimit(http.HandlerFunc(h.Upload.UploadGeographic)))

	mux.Handle("GET /download/{$}", downloadLimit(http.HandlerFunc(h.Download.Download)))

	// JSON API
	mux.HandleFunc("GET /api/village/{id}/records/{$}", h.Catalog.APIVillageRecords)
	mux.HandleFunc("GET /api/geocode/{$}", h.Geocode.Geocode)
	mux.HandleFunc("GET /api/reverse-geocode/{$}", h.Geocode.ReverseGeocode)

	mux.HandleFunc("GET /api/admin/villages/{$}", h.Admin.ListVillages)
	mux.HandleFunc("POST /api/admin/villages/{$}", h.Admin.CreateVillage)
	mux.HandleFunc("GET /api/admin/villages/{id}/{$}", h.Admin.GetVillage)
	mux.HandleFunc("PUT /api/admin/villages/{id}/{$}", h.Admin.UpdateVillage)
	mux.HandleFunc("DELETE /api/admin/villages/{id}/{$}", h.Admin.DeleteVillage)

	mux.HandleFunc("GET /api/admin/speakers/{$}", h.Admin.ListSpeakers)
	mux.HandleFunc("POST /api/admin/speakers/{$}", h.Admin.CreateSpeaker)
	mux.HandleFunc("GET /api/admin/speakers/{id}/{$}", h.Admin.GetSpeaker)
	mux.HandleFunc("PUT /api/admin/speakers/{id}/{$}", h.Admin.UpdateSpeaker)
	mux.HandleFunc("DELETE /api/admin/speakers/{id}/{$}", h.Admin.DeleteSpeaker)

	mux.HandleFunc("GET /api/admin/onomatopoeia-types/{$}", h.Admin.ListTypes)
	mux.HandleFunc("POST /api/admin/onomatopoeia-types/{$}", h.Admin.CreateType)
	mux.HandleFunc("GET /api/admin/onomatopoeia-types/{id}/{$}", h.Admin.GetType)
	mux.HandleFunc("PUT /api/admin/onomatopoeia-types/{id}/{$}", h.Admin.UpdateType)
	mux.HandleFunc("DELETE /api/admin/onomatopoeia-types/{id}/{$}", h.Admin.DeleteType)

	// Operations
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	return middleware.Chain(
		middleware.RequestID(),
		middleware.ClientIP(cfg.Server.TrustProxy),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(obs),
	)(mux)
}
