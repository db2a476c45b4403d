// Command seeder resets the configured product store to the sample catalog.
// With -d it only deletes every product.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"catalog/internal/config"
	"catalog/internal/logging"
	"catalog/internal/repositories"
	"catalog/internal/seed"

	"github.com/rs/zerolog/log"
)

func main() {
	destroy := flag.Bool("d", false, "delete all products without importing the sample catalog")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.Environment, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = log.Logger.With().Str("component", "seeder").Str("store", cfg.Store.Driver).Logger().WithContext(ctx)

	if err := run(ctx, cfg.Store, *destroy); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("seeding failed")
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.StoreConfig, destroy bool) error {
	repo, closeStore, err := repositories.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(ctx)
	log.Ctx(ctx).Info().Msg("store connected for seeding")

	if destroy {
		return seed.Destroy(ctx, repo)
	}
	_, err = seed.Import(ctx, repo)
	return err
}
