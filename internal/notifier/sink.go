package notifier

import (
	"context"
	"fmt"
	"strings"

	"studio/config"
	"studio/infras/kafka"
	"studio/infras/otel"
	"studio/infras/rabbitmq"
	"studio/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	SinkKafka    = "kafka"
	SinkRabbitMQ = "rabbitmq"
	SinkLog      = "log"
)

type kafkaSink struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func NewKafkaSink(client kafka.Client, topic string, otel otel.Otel) Sink {
	return &kafkaSink{client: client, topic: topic, otel: otel}
}

func (k *kafkaSink) Publish(ctx context.Context, event Event) (err error) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".kafka.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{"topic": k.topic, "type": string(event.Type)})

	if err = k.client.Publish(ctx, k.topic, kafka.Message{Key: event.BookingID, Value: event}); err != nil {
		return fmt.Errorf("failed to publish event to kafka: %w", err)
	}

	return nil
}

type rabbitSink struct {
	publisher rabbitmq.Publisher
	otel      otel.Otel
}

func NewRabbitSink(publisher rabbitmq.Publisher, otel otel.Otel) Sink {
	return &rabbitSink{publisher: publisher, otel: otel}
}

func (r *rabbitSink) Publish(ctx context.Context, event Event) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".rabbitmq.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = r.publisher.PublishJSON(ctx, string(event.Type), event); err != nil {
		return fmt.Errorf("failed to publish event to rabbitmq: %w", err)
	}

	return nil
}

type logSink struct{}

func NewLogSink() Sink {
	return logSink{}
}

func (logSink) Publish(_ context.Context, event Event) error {
	log.Info().
		Str("type", string(event.Type)).
		Str("booking_id", event.BookingID).
		Str("client_id", event.ClientID).
		Time("start_time", event.StartTime).
		Msg("booking event")

	return nil
}

// NewSink picks the transport named by NOTIFICATION_SINK, falling back to the log sink when it cannot be reached.
func NewSink(cfg *config.Config, otel otel.Otel) (Sink, func()) {
	switch strings.ToLower(cfg.Notification.Sink) {
	case SinkKafka:
		if len(cfg.Kafka.Brokers) == 0 {
			log.Warn().Msg("no kafka brokers configured, notifications go to the log")

			return NewLogSink(), func() {}
		}

		client := kafka.New(cfg)

		return NewKafkaSink(client, cfg.Notification.Topic, otel), func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close kafka writer")
			}
		}
	case SinkRabbitMQ:
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Error().Err(err).Msg("failed to connect to rabbitmq, notifications go to the log")

			return NewLogSink(), func() {}
		}

		return NewRabbitSink(publisher, otel), func() {
			if err := publisher.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close rabbitmq publisher")
			}
		}
	default:
		return NewLogSink(), func() {}
	}
}
