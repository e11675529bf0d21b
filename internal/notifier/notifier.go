package notifier

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"
	"errors"
	"sync"

	"studio/config"
	"studio/shared/constant"
	"studio/shared/logger"

	"github.com/rs/zerolog"
)

var ErrDispatcherClosed = errors.New("notification dispatcher is closed")

// Notifier never blocks the caller and never reports delivery failures back.
type Notifier interface {
	BookingConfirmed(ctx context.Context, event Event)
	BookingCanceled(ctx context.Context, event Event)
}

type Sink interface {
	Publish(ctx context.Context, event Event) error
}

type Dispatcher struct {
	sink   Sink
	queue  chan Event
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
	log    zerolog.Logger
}

// NewDispatcher starts the worker that drains the queue into sink.
func NewDispatcher(sink Sink, size int) *Dispatcher {
	if size <= 0 {
		size = constant.DefaultNotificationQueue
	}

	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, size),
		done:  make(chan struct{}),
		log:   logger.Component("notifier"),
	}

	go d.run()

	return d
}

// NewQueue sizes the dispatcher from NOTIFICATION_QUEUE_SIZE.
func NewQueue(cfg *config.Config, sink Sink) *Dispatcher {
	return NewDispatcher(sink, cfg.Notification.QueueSize)
}

func (d *Dispatcher) BookingConfirmed(ctx context.Context, event Event) {
	event.Type = EventBookingConfirmed
	d.enqueue(ctx, event)
}

func (d *Dispatcher) BookingCanceled(ctx context.Context, event Event) {
	event.Type = EventBookingCanceled
	d.enqueue(ctx, event)
}

func (d *Dispatcher) enqueue(_ context.Context, event Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Error().Err(ErrDispatcherClosed).Str("booking_id", event.BookingID).Str("type", string(event.Type)).Msg("dropping notification")

		return
	}

	select {
	case d.queue <- event:
	default:
		d.log.Error().Str("booking_id", event.BookingID).Str("type", string(event.Type)).Msg("notification queue full, dropping event")
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for event := range d.queue {
		ctx := context.Background()

		if err := event.Resolve(ctx); err != nil {
			d.log.Warn().Err(err).Str("booking_id", event.BookingID).Str("type", string(event.Type)).Msg("failed to load notification recipient")
		}

		if err := d.sink.Publish(ctx, event); err != nil {
			d.log.Error().Err(err).Str("booking_id", event.BookingID).Str("type", string(event.Type)).Msg("failed to publish notification")

			continue
		}

		d.log.Debug().Str("booking_id", event.BookingID).Str("type", string(event.Type)).Msg("notification published")
	}
}

// Close stops accepting events and waits until the queued ones are published or ctx ends.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
