package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const exchangeKind = "topic"

type Publisher interface {
	PublishJSON(ctx context.Context, routingKey string, value any) error
	Close() error
}

type publisherImpl struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// dial opens a connection and channel and declares a durable topic exchange on it.
func dial(url, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()

		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()

		return nil, nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return conn, ch, nil
}

func NewPublisher(url, exchange string) (Publisher, error) {
	conn, ch, err := dial(url, exchange)
	if err != nil {
		return nil, err
	}

	log.Info().Str("exchange", exchange).Msg("RabbitMQ publisher connected")

	return &publisherImpl{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *publisherImpl) PublishJSON(ctx context.Context, routingKey string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", routingKey, err)
	}

	return nil
}

func (p *publisherImpl) Close() error {
	return closeAll(p.ch, p.conn)
}

type Consumer struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewConsumer declares a durable queue bound to exchange for every routing key.
func NewConsumer(url, exchange, queue string, keys []string) (*Consumer, error) {
	conn, ch, err := dial(url, exchange)
	if err != nil {
		return nil, err
	}

	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = closeAll(ch, conn)

		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	for _, key := range keys {
		if err := ch.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			_ = closeAll(ch, conn)

			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	return &Consumer{conn: conn, ch: ch, queue: q.Name}, nil
}

// Consume hands every delivery body to handler until ctx is done.
// A handler error requeues the message once; a redelivered failure is dropped.
func (c *Consumer) Consume(ctx context.Context, handler func(ctx context.Context, body []byte) error) error {
	deliveries, err := c.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", c.queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return nil
			}

			if err := handler(ctx, delivery.Body); err != nil {
				log.Error().Err(err).Str("queue", c.queue).Bool("redelivered", delivery.Redelivered).Msg("Failed to handle message")

				_ = delivery.Nack(false, !delivery.Redelivered)

				continue
			}

			_ = delivery.Ack(false)
		}
	}
}

func (c *Consumer) Close() error {
	return closeAll(c.ch, c.conn)
}

func closeAll(ch *amqp.Channel, conn *amqp.Connection) error {
	if ch != nil {
		_ = ch.Close()
	}

	if conn != nil {
		return conn.Close()
	}

	return nil
}
