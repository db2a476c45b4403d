package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog/internal/config"
	"catalog/internal/events"
	"catalog/internal/logging"
	"catalog/internal/repositories"
	"catalog/internal/server"
	"catalog/internal/services"
	"catalog/internal/tracing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.Environment, cfg.LogLevel)

	// --- Tracing ---
	shutdownTracing, err := tracing.Init(cfg.Tracing.CollectorHost, cfg.Tracing.ServiceName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	// --- Store, events, service ---
	app, cleanup, err := buildApp(context.Background(), cfg)
	if err != nil {
		// The store must be reachable before the API starts.
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("failed to start")
	}

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.AppPort).Str("env", cfg.Environment).Msg("starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Info().Msg("shutting down server")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("error during Fiber shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	cleanup(ctx)
	if err := shutdownTracing(ctx); err != nil {
		log.Error().Err(err).Msg("error flushing traces")
	}
	log.Info().Msg("server gracefully stopped")
}

// buildApp connects the configured store and event publisher and assembles
// the API on top of them. cleanup closes both.
func buildApp(ctx context.Context, cfg *config.Config) (*fiber.App, func(context.Context), error) {
	productRepo, closeStore, err := repositories.Open(ctx, cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	publisher, err := events.NewPublisher(cfg.Events)
	if err != nil {
		_ = closeStore(ctx)
		return nil, nil, err
	}

	productService := services.NewProductService(productRepo,
		services.WithPublisher(publisher),
		services.WithZeroPriceAllowed(cfg.AllowZeroPrice),
	)

	app := server.NewApp(productService, server.Options{
		Production:  cfg.Production(),
		StoreDriver: cfg.Store.Driver,
		AccessLog:   true,
	})

	cleanup := func(ctx context.Context) {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event publisher")
		}
		if err := closeStore(ctx); err != nil {
			log.Error().Err(err).Msg("error closing product store")
		}
	}
	return app, cleanup, nil
}
