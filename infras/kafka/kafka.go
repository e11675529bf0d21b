package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"studio/config"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// Message is keyed so that every event of one booking lands on the same partition.
type Message struct {
	Key   string
	Value any
}

func Encode(topic string, messages ...Message) ([]kafkaGo.Message, error) {
	encoded := make([]kafkaGo.Message, len(messages))

	for idx, message := range messages {
		value, err := json.Marshal(message.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message %s: %w", message.Key, err)
		}

		encoded[idx] = kafkaGo.Message{Topic: topic, Key: []byte(message.Key), Value: value}
	}

	return encoded, nil
}

// Handler processes one message. The offset is committed once it returns, whatever the result.
type Handler func(ctx context.Context, message kafkaGo.Message) error

type Client interface {
	Publish(ctx context.Context, topic string, messages ...Message) error
	// Consume blocks until ctx is done or the reader fails.
	Consume(ctx context.Context, consumerGroup, topic string, handler Handler) error
	Close() error
}

type client struct {
	brokers []string
	group   string
	dialer  *kafkaGo.Dialer
	writer  *kafkaGo.Writer
}

func New(cfg *config.Config) Client {
	dialer := &kafkaGo.Dialer{DualStack: true}
	transport := &kafkaGo.Transport{}

	if cfg.Kafka.SASL.Username != "" {
		mechanism := plain.Mechanism{Username: cfg.Kafka.SASL.Username, Password: cfg.Kafka.SASL.Password}
		dialer.SASLMechanism = mechanism
		transport.SASL = mechanism
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka client initialized")

	return &client{
		brokers: cfg.Kafka.Brokers,
		group:   cfg.Kafka.ConsumerGroup,
		dialer:  dialer,
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
			Transport:              transport,
			Balancer:               &kafkaGo.Hash{},
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafkaGo.RequireOne,
		},
	}
}

func (c *client) Publish(ctx context.Context, topic string, messages ...Message) error {
	encoded, err := Encode(topic, messages...)
	if err != nil {
		return err
	}

	if err := c.writer.WriteMessages(ctx, encoded...); err != nil {
		return fmt.Errorf("failed to write %d messages to %s: %w", len(encoded), topic, err)
	}

	log.Debug().Str("topic", topic).Int("count", len(encoded)).Msg("Published messages to Kafka")

	return nil
}

func (c *client) Consume(ctx context.Context, consumerGroup, topic string, handler Handler) error {
	if topic == "" {
		return errors.New("kafka topic is required")
	}

	if consumerGroup == "" {
		consumerGroup = c.group
	}

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     c.brokers,
		Topic:       topic,
		GroupID:     consumerGroup,
		Dialer:      c.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to close Kafka reader")
		}
	}()

	logger := log.With().Str("topic", topic).Str("group", consumerGroup).Logger()

	for {
		message, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("failed to fetch message from %s: %w", topic, err)
		}

		if err := handler(ctx, message); err != nil {
			logger.Error().Err(err).Str("key", string(message.Key)).Int64("offset", message.Offset).Msg("Failed to handle Kafka message")
		}

		if err := reader.CommitMessages(ctx, message); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Int64("offset", message.Offset).Msg("Failed to commit Kafka offset")
		}
	}
}

func (c *client) Close() error {
	return c.writer.Close()
}
