package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"studio/infras/otel"
	"studio/infras/twilio"
	"studio/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Delivery turns consumed booking events into SMS messages.
type Delivery struct {
	sender twilio.Sender
	otel   otel.Otel
}

func NewDelivery(sender twilio.Sender, otel otel.Otel) *Delivery {
	return &Delivery{sender: sender, otel: otel}
}

func (d *Delivery) Deliver(ctx context.Context, event Event) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".delivery.Deliver")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if event.ClientPhone == "" {
		log.Info().Str("booking_id", event.BookingID).Msg("client has no phone, skipping notification")

		return nil
	}

	body := event.Message()
	if body == "" {
		log.Warn().Str("type", string(event.Type)).Msg("no message template for event")

		return nil
	}

	if err = d.sender.Send(ctx, event.ClientPhone, body); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}

// HandleBody is the rabbitmq consumer handler. Malformed payloads are acknowledged and dropped.
func (d *Delivery) HandleBody(ctx context.Context, body []byte) error {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		log.Error().Err(err).Msg("failed to decode booking event")

		return nil
	}

	return d.Deliver(ctx, event)
}

// HandleKafka is the kafka consumer handler.
func (d *Delivery) HandleKafka(ctx context.Context, message kafkaGo.Message) error {
	return d.HandleBody(ctx, message.Value)
}
