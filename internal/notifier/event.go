package notifier

import (
	"context"
	"fmt"
	"time"

	"studio/shared/timezone"
)

type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCanceled  EventType = "booking.canceled"
)

const messageTimeLayout = "Mon 02 Jan 2006 15:04"

type Recipient struct {
	Name  string
	Phone string
}

// RecipientFunc loads the client details when the event is published instead of when it is raised.
type RecipientFunc func(ctx context.Context) (Recipient, error)

// Event is the payload published for every committed booking change.
// EndTime is when the session ends; the cleanup buffer is not part of it.
type Event struct {
	Type        EventType `json:"type"`
	BookingID   string    `json:"booking_id"`
	ClientID    string    `json:"client_id"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone,omitempty"`
	ServiceName string    `json:"service_name,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`

	LoadRecipient RecipientFunc `json:"-"`
}

// Resolve fills ClientName and ClientPhone through LoadRecipient, at most once.
func (e *Event) Resolve(ctx context.Context) error {
	if e.LoadRecipient == nil {
		return nil
	}

	load := e.LoadRecipient
	e.LoadRecipient = nil

	recipient, err := load(ctx)
	if err != nil {
		return err
	}

	e.ClientName = recipient.Name
	e.ClientPhone = recipient.Phone

	return nil
}

// Message renders the text sent to the client.
func (e Event) Message() string {
	start := timezone.Format(e.StartTime, messageTimeLayout)

	switch e.Type {
	case EventBookingConfirmed:
		if e.ServiceName == "" {
			return fmt.Sprintf("Hi %s, your massage on %s is confirmed. Booking %s.", e.ClientName, start, e.BookingID)
		}

		return fmt.Sprintf("Hi %s, your %s on %s is confirmed. Booking %s.", e.ClientName, e.ServiceName, start, e.BookingID)
	case EventBookingCanceled:
		if e.Reason == "" {
			return fmt.Sprintf("Hi %s, your booking on %s has been cancelled.", e.ClientName, start)
		}

		return fmt.Sprintf("Hi %s, your booking on %s has been cancelled: %s.", e.ClientName, start, e.Reason)
	default:
		return ""
	}
}
