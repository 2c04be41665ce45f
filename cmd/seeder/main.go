// Command seeder loads villages, onomatopoeia types and speakers from a YAML
// fixture and upserts them. Villages without coordinates are geocoded.
// Running it twice with the same fixture leaves the data unchanged.
//
// Flags:
//
//	--fixture        path to the fixture (overrides SEEDER_FIXTURE_PATH)
//	--dry-run        validate and geocode without writing to DB
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres"
	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres/onomatype"
	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres/speaker"
	"github.com/Miru57o/kikai-language-archive/internal/adapter/postgres/village"
	"github.com/Miru57o/kikai-language-archive/internal/adapter/provider/gsi"
	"github.com/Miru57o/kikai-language-archive/internal/app"
	"github.com/Miru57o/kikai-language-archive/internal/app/seeder"
	"github.com/Miru57o/kikai-language-archive/internal/config"
)

var (
	_ seeder.VillageRepo = (*village.Repo)(nil)
	_ seeder.TypeRepo    = (*onomatype.Repo)(nil)
	_ seeder.SpeakerRepo = (*speaker.Repo)(nil)
	_ seeder.Geocoder    = (*gsi.Geocoder)(nil)
	_ seeder.TxRunner    = (*postgres.TxManager)(nil)
)

func main() {
	fixtureFlag := flag.String("fixture", "", "path to the fixture YAML")
	dryRunFlag := flag.Bool("dry-run", false, "validate and geocode without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *fixtureFlag != "" {
		seederCfg.FixturePath = *fixtureFlag
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}

	fx, err := seeder.LoadFixture(seederCfg.FixturePath)
	if err != nil {
		logger.Error("load fixture",
			slog.String("path", seederCfg.FixturePath),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	pipeline := seeder.NewPipeline(logger, seeder.Deps{
		Villages: village.New(pool),
		Types:    onomatype.New(pool),
		Speakers: speaker.New(pool),
		Geocoder: gsi.NewGeocoder(appCfg.Geocoder, logger),
		Tx:       postgres.NewTxManager(pool),
	}, *seederCfg)

	if err := pipeline.Run(ctx, fx); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors")
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully")
}
