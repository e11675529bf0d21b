package model

import (
	"time"

	"studio/shared/constant"
	"studio/shared/model"
	"studio/shared/timezone"

	"github.com/google/uuid"
)

const (
	TableName  = "time_slots"
	EntityName = "time_slot"

	FieldID           = "id"
	FieldSlotDate     = "slot_date"
	FieldSlotDateTime = "slot_datetime"
	FieldIsAvailable  = "is_available"
	FieldIsBlocked    = "is_blocked"
	FieldBlockReason  = "block_reason"
)

// TimeSlot is one cell of the booking grid, keyed by its start instant.
type TimeSlot struct {
	ID           string    `db:"id"`
	SlotDate     time.Time `db:"slot_date"`
	SlotDateTime time.Time `db:"slot_datetime"`
	IsAvailable  bool      `db:"is_available"`
	IsBlocked    bool      `db:"is_blocked"`
	BlockReason  *string   `db:"block_reason"`
	model.Metadata
}

func New(at time.Time, actor string) TimeSlot {
	now := timezone.Now()

	return TimeSlot{
		ID:           uuid.NewString(),
		SlotDate:     timezone.StartOfDay(at),
		SlotDateTime: at,
		IsAvailable:  true,
		Metadata:     model.NewMetadata(actor, now),
	}
}

func (t TimeSlot) Occupiable() bool {
	return t.IsAvailable && !t.IsBlocked
}

// DayKey is the value compared against the slot_date column.
func DayKey(date time.Time) string {
	return timezone.Format(date, constant.DayFormat)
}
