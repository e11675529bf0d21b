package notifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	otelMocks "studio/infras/otel/mocks"
	"studio/internal/notifier"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	to   string
	body string
}

type fakeSender struct {
	sent []sentMessage
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}

	f.sent = append(f.sent, sentMessage{to: to, body: body})

	return nil
}

var start = time.Date(2030, time.January, 3, 14, 0, 0, 0, time.UTC)

func TestEvent_Message(t *testing.T) {
	confirmed := notifier.Event{Type: notifier.EventBookingConfirmed, BookingID: "b1", ClientName: "Ana", ServiceName: "Deep Tissue", StartTime: start}
	assert.Contains(t, confirmed.Message(), "Ana")
	assert.Contains(t, confirmed.Message(), "Deep Tissue")
	assert.Contains(t, confirmed.Message(), "confirmed")

	canceled := notifier.Event{Type: notifier.EventBookingCanceled, ClientName: "Ana", StartTime: start, Reason: "therapist sick"}
	assert.Contains(t, canceled.Message(), "cancelled: therapist sick")

	assert.Empty(t, notifier.Event{Type: "unknown"}.Message())
}

func TestDelivery_Deliver(t *testing.T) {
	sender := &fakeSender{}
	delivery := notifier.NewDelivery(sender, otelMocks.NewOtel())

	err := delivery.Deliver(context.Background(), notifier.Event{
		Type:        notifier.EventBookingConfirmed,
		ClientName:  "Ana",
		ClientPhone: "+34600000000",
		StartTime:   start,
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "+34600000000", sender.sent[0].to)
	assert.True(t, strings.HasPrefix(sender.sent[0].body, "Hi Ana"))

	require.NoError(t, delivery.Deliver(context.Background(), notifier.Event{Type: notifier.EventBookingConfirmed}))
	assert.Len(t, sender.sent, 1)
}

func TestDelivery_SendError(t *testing.T) {
	delivery := notifier.NewDelivery(&fakeSender{err: errors.New("rate limited")}, otelMocks.NewOtel())

	err := delivery.Deliver(context.Background(), notifier.Event{Type: notifier.EventBookingCanceled, ClientPhone: "+34600000000"})
	assert.Error(t, err)
}

func TestDelivery_Handlers(t *testing.T) {
	sender := &fakeSender{}
	delivery := notifier.NewDelivery(sender, otelMocks.NewOtel())

	body, err := json.Marshal(notifier.Event{Type: notifier.EventBookingCanceled, ClientName: "Ana", ClientPhone: "+34611111111", StartTime: start})
	require.NoError(t, err)

	require.NoError(t, delivery.HandleBody(context.Background(), []byte("{not json")))
	require.NoError(t, delivery.HandleBody(context.Background(), body))

	require.NoError(t, delivery.HandleKafka(context.Background(), kafkaGo.Message{Key: []byte("b1"), Value: body}))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "+34611111111", sender.sent[1].to)
}
