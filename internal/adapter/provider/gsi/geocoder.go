// Package gsi resolves addresses and coordinates with the Geospatial
// Information Authority of Japan lookup services. Failures never surface as
// errors: forward lookups report ok=false and reverse lookups return a
// coordinate string.
package gsi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/Miru57o/kikai-language-archive/internal/config"
	"github.com/Miru57o/kikai-language-archive/internal/domain"
)

const maxBodyBytes = 1 << 20

// Recorder counts lookups. *metrics.Metrics satisfies it.
type Recorder interface {
	GeocoderLookup(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) GeocoderLookup(string, string) {}

// Geocoder talks to the GSI AddressSearch and LonLatToAddress endpoints.
type Geocoder struct {
	searchURL  string
	reverseURL string
	httpClient *http.Client
	cache      *cache.Cache
	rec        Recorder
	log        *slog.Logger
}

// Option configures a Geocoder.
type Option func(*Geocoder)

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(g *Geocoder) { g.rec = r }
}

// WithHTTPClient replaces the HTTP client. The client's timeout is kept as is.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Geocoder) { g.httpClient = c }
}

// NewGeocoder creates a Geocoder. A zero CacheTTL disables caching.
func NewGeocoder(cfg config.GeocoderConfig, logger *slog.Logger, opts ...Option) *Geocoder {
	g := &Geocoder{
		searchURL:  cfg.SearchURL,
		reverseURL: cfg.ReverseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		rec:        nopRecorder{},
		log:        logger.With("adapter", "gsi"),
	}
	if cfg.CacheTTL > 0 {
		g.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Geocode converts an address to coordinates using the first search result.
// Returns ok=false when nothing matched or the lookup failed.
func (g *Geocoder) Geocode(ctx context.Context, address string) (domain.LatLng, bool) {
	key := "fwd:" + address
	if g.cache != nil {
		if v, found := g.cache.Get(key); found {
			g.rec.GeocoderLookup("forward", "cache")
			return v.(domain.LatLng), true
		}
	}

	reqURL := g.searchURL + "?" + url.Values{"q": {address}}.Encode()

	var results []addressSearchResult
	if err := g.getJSON(ctx, reqURL, &results); err != nil {
		g.rec.GeocoderLookup("forward", "error")
		g.log.WarnContext(ctx, "geocode failed",
			slog.String("address", address),
			slog.String("error", err.Error()),
		)
		return domain.LatLng{}, false
	}

	if len(results) == 0 || len(results[0].Geometry.Coordinates) < 2 {
		g.rec.GeocoderLookup("forward", "miss")
		g.log.DebugContext(ctx, "geocode no match", slog.String("address", address))
		return domain.LatLng{}, false
	}

	c := results[0].Geometry.Coordinates
	ll := domain.LatLng{Lat: c[1], Lon: c[0]}

	g.rec.GeocoderLookup("forward", "hit")
	if g.cache != nil {
		g.cache.Set(key, ll, cache.DefaultExpiration)
	}
	return ll, true
}

// ReverseGeocode returns the place name (lv01Nm) at the coordinates, or
// FallbackPlace(lat, lon) when the service has no answer.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lon float64) string {
	key := "rev:" + FallbackPlace(lat, lon)
	if g.cache != nil {
		if v, found := g.cache.Get(key); found {
			g.rec.GeocoderLookup("reverse", "cache")
			return v.(string)
		}
	}

	reqURL := g.reverseURL + "?" + url.Values{
		"lat": {formatCoord(lat)},
		"lon": {formatCoord(lon)},
	}.Encode()

	var resp reverseResponse
	if err := g.getJSON(ctx, reqURL, &resp); err != nil {
		g.rec.GeocoderLookup("reverse", "error")
		g.log.WarnContext(ctx, "reverse geocode failed",
			slog.Float64("lat", lat),
			slog.Float64("lon", lon),
			slog.String("error", err.Error()),
		)
		return FallbackPlace(lat, lon)
	}

	if resp.Results == nil || resp.Results.MuniCd == nil || resp.Results.Lv01Nm == nil {
		g.rec.GeocoderLookup("reverse", "miss")
		return FallbackPlace(lat, lon)
	}

	place := *resp.Results.Lv01Nm
	g.rec.GeocoderLookup("reverse", "hit")
	if g.cache != nil {
		g.cache.Set(key, place, cache.DefaultExpiration)
	}
	return place
}

// FallbackPlace renders coordinates with the shortest exact decimal form,
// e.g. "lat: 28.3214, lon: 129.9259".
func FallbackPlace(lat, lon float64) string {
	return fmt.Sprintf("lat: %s, lon: %s", formatCoord(lat), formatCoord(lon))
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (g *Geocoder) getJSON(ctx context.Context, reqURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("gsi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gsi: request failed: %w", err)
	}
	defer resp.Body.Close()

	g.log.DebugContext(ctx, "gsi response",
		slog.String("url", reqURL),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gsi: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("gsi: read body: %w", err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("gsi: decode json: %w", err)
	}
	return nil
}
