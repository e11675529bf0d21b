package redis

import (
	"context"
	"net"
	"time"

	"studio/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 5 * time.Second

func Options(cfg config.Redis) *goRedis.Options {
	return &goRedis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// New connects to the primary and exits the process when it does not answer a ping.
// The returned func closes the client.
func New(cfg *config.Config) (*goRedis.Client, func()) {
	options := Options(cfg.Cache.Redis.Primary)
	logger := log.With().Str("addr", options.Addr).Int("db", options.DB).Logger()

	client := goRedis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	logger.Info().Msg("Connected to Redis")

	return client, func() {
		if err := client.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close Redis client")
		}
	}
}
