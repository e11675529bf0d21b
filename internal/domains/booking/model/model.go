package model

import (
	"time"

	"studio/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldClientID           = "client_id"
	FieldServiceID          = "service_id"
	FieldStartTime          = "start_time"
	FieldEndTime            = "end_time"
	FieldStatus             = "status"
	FieldGuestName          = "guest_name"
	FieldGuestPhone         = "guest_phone"
	FieldCancellationReason = "cancellation_reason"
	FieldCleanupMinutes     = "cleanup_minutes"
)

// Booking reserves [StartTime, EndTime) for one client. EndTime already includes the cleanup
// buffer; CleanupMinutes is the buffer as it was when the booking was admitted.
type Booking struct {
	ID                 string    `db:"id"`
	ClientID           string    `db:"client_id"`
	ServiceID          string    `db:"service_id"`
	StartTime          time.Time `db:"start_time"`
	EndTime            time.Time `db:"end_time"`
	Status             Status    `db:"status"`
	GuestName          *string   `db:"guest_name"`
	GuestPhone         *string   `db:"guest_phone"`
	CancellationReason *string   `db:"cancellation_reason"`
	CleanupMinutes     int       `db:"cleanup_minutes"`
	model.Metadata
}

// SessionEnd is when the client's appointment ends, without the room cleanup.
func (b Booking) SessionEnd() time.Time {
	return b.EndTime.Add(-time.Duration(b.CleanupMinutes) * time.Minute)
}

func (b Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and [bStart, bEnd) share an instant.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
