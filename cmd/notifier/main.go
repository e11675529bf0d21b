package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"studio/config"
	"studio/infras/kafka"
	"studio/infras/otel"
	"studio/infras/rabbitmq"
	"studio/infras/twilio"
	"studio/internal/notifier"
	"studio/shared/logger"

	"github.com/rs/zerolog/log"
)

// Consumes booking events and delivers them as SMS or WhatsApp messages.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer := otel.New(cfg)
	defer otel.Shutdown(context.WithoutCancel(ctx), tracer)

	delivery := notifier.NewDelivery(twilio.New(cfg), tracer)

	switch strings.ToLower(cfg.Notification.Sink) {
	case notifier.SinkKafka:
		log.Info().Str("topic", cfg.Notification.Topic).Msg("Consuming booking events from Kafka")

		if err := kafka.New(cfg).Consume(ctx, cfg.Notification.ConsumerGroup, cfg.Notification.Topic, delivery.HandleKafka); err != nil {
			log.Error().Err(err).Msg("Kafka consumer stopped")
		}
	case notifier.SinkRabbitMQ:
		keys := []string{string(notifier.EventBookingConfirmed), string(notifier.EventBookingCanceled)}

		consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.Notification.Queue, keys)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
		}

		defer func() {
			if err := consumer.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close RabbitMQ consumer")
			}
		}()

		log.Info().Str("queue", cfg.Notification.Queue).Msg("Consuming booking events from RabbitMQ")

		if err := consumer.Consume(ctx, delivery.HandleBody); err != nil {
			log.Error().Err(err).Msg("RabbitMQ consumer stopped")
		}
	default:
		log.Warn().Str("sink", cfg.Notification.Sink).Msg("Notification sink has no broker to consume from")
	}

	log.Info().Msg("Notifier stopped")
}
