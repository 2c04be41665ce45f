package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres"
	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres/geographic"
	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres/onomatype"
	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres/record"
	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres/speaker"
	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres/village"
	"github.com/Miru57o/kikai-language-archive/internal/adapter/provider/gsi"
	"github.com/Miru57o/kikai-language-archive/internal/adapter/storage/supabase"
	"github.com/Miru57o/kikai-language-archive/internal/config"
	"github.com/Miru57o/kikai-language-archive/internal/observability/metrics"
	"github.com/Miru57o/kikai-language-archive/internal/service/catalog"
	"github.com/Miru57o/kikai-language-archive/internal/service/mapview"
	"github.com/Miru57o/kikai-language-archive/internal/service/registry"
	"github.com/Miru57o/kikai-language-archive/internal/service/upload"
	"github.com/Miru57o/kikai-language-archive/internal/transport/middleware"
	"github.com/Miru57o/kikai-language-archive/internal/transport/rest"
)

const rateLimitCleanup = 5 * time.Minute

// Run is the server entry point. It loads configuration, connects to the
// database, wires adapters and services, and serves HTTP until ctx is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := migrate(ctx, pool, logger); err != nil {
			return err
		}
	}

	m := metrics.New()
	rl := middleware.NewRateLimiter(rateLimitCleanup)
	defer rl.Stop()

	handler := buildHandler(cfg, pool, m, rl, logger)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	migrator, err := postgres.NewMigrator(pool, logger)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer migrator.Close() //nolint:errcheck

	if err := migrator.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func buildHandler(
	cfg *config.Config,
	pool *pgxpool.Pool,
	m *metrics.Metrics,
	rl *middleware.RateLimiter,
	logger *slog.Logger,
) http.Handler {
	// Repositories
	villages := village.New(pool)
	speakers := speaker.New(pool)
	types := onomatype.New(pool)
	records := record.New(pool)
	geo := geographic.New(pool)

	// Adapters
	geocoder := gsi.NewGeocoder(cfg.Geocoder, logger, gsi.WithRecorder(m))
	store := supabase.NewClient(cfg.Storage, logger, supabase.WithRecorder(m))

	// Services
	catalogSvc := catalog.NewService(logger, records, villages, speakers, types, geo, geocoder)
	mapSvc := mapview.NewService(logger, cfg.Map, speakers, geo, records)
	registrySvc := registry.NewService(logger, villages, speakers, types)
	uploadSvc := upload.NewService(logger, upload.Deps{
		Store:      store,
		Geocoder:   geocoder,
		Villages:   villages,
		Speakers:   speakers,
		Types:      types,
		Records:    records,
		Geographic: geo,
	}, cfg.Storage.MaxUploadBytes)

	downloadClient := &http.Client{Timeout: cfg.Download.Timeout}

	handlers := Handlers{
		Catalog:  rest.NewCatalogHandler(catalogSvc, logger),
		Map:      rest.NewMapHandler(mapSvc, logger),
		Upload:   rest.NewUploadHandler(uploadSvc, cfg.Storage.MaxUploadBytes, logger),
		Download: rest.NewDownloadHandler(downloadClient, DownloadHosts(cfg), logger),
		Geocode:  rest.NewGeocodeHandler(geocoder, logger),
		Admin:    rest.NewAdminHandler(registrySvc, logger),
		Health: rest.NewHealthHandler(BuildVersion(),
			rest.Probe{Name: "database", Critical: true, Ping: pool.Ping},
			rest.Probe{Name: "storage", Ping: store.Check},
		),
		Metrics: m.Handler(),
	}

	return NewRouter(cfg, handlers, rl, m, logger)
}

// DownloadHosts returns the lowercased hosts the download proxy may fetch
// from. An empty configured list leaves the proxy unrestricted; otherwise the
// storage host is always allowed too.
func DownloadHosts(cfg *config.Config) []string {
	hosts := cfg.Download.AllowedHosts
	if len(hosts) == 0 {
		return nil
	}
	out := make([]string, 0, len(hosts)+1)
	for _, h := range hosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			out = append(out, h)
		}
	}
	if h := cfg.Storage.StorageHost(); h != "" {
		out = append(out, h)
	}
	return out
}
