package main

import (
	"context"

	"studio/config"
	"studio/di"
	"studio/helper"
	"studio/infras/otel"
	"studio/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	app, cleanup := di.InitializeService()
	defer cleanup()

	if err := app.Scheduler.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start slot scheduler")
	}

	app.HTTP.OnShutdown(
		app.Scheduler.Stop,
		app.Dispatcher.Close,
		func(ctx context.Context) error {
			otel.Shutdown(ctx, app.Otel)

			return nil
		},
	)

	app.HTTP.Serve()
}
