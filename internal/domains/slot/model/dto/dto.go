package dto

import (
	"errors"
	"time"

	"studio/shared/constant"
	"studio/shared/timezone"
)

type BlockSlotRequest struct {
	DateTime string `json:"date_time" validate:"required,datetime_local"`
	Reason   string `json:"reason"    validate:"omitempty,max=255"`
}

type UnblockSlotRequest struct {
	DateTime string `json:"date_time" validate:"required,datetime_local"`
}

type AvailabilityRequest struct {
	StartDate string `json:"start_date" validate:"required,day"`
	EndDate   string `json:"end_date"   validate:"required,day"`
}

type AvailableSlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

func (a *AvailableSlotsResponse) FromTimes(date time.Time, slots []time.Time) {
	a.Date = timezone.Format(date, constant.DayFormat)
	a.Slots = FormatSlots(slots)
}

type DayAvailability struct {
	Date           string   `json:"date"`
	IsWorkingDay   bool     `json:"is_working_day"`
	AvailableSlots []string `json:"available_slots"`
}

type AvailabilityResponse struct {
	Days []DayAvailability `json:"days"`
}

type CheckSlotResponse struct {
	DateTime  string `json:"date_time"`
	Available bool   `json:"available"`
}

// FormatSlots renders slot instants as RFC3339 in the studio timezone.
func FormatSlots(slots []time.Time) []string {
	res := make([]string, len(slots))
	for i, slot := range slots {
		res[i] = timezone.Format(slot, constant.DateFormat)
	}

	return res
}

var ErrSubMinute = errors.New("time must be a whole minute")

// ParseInstant accepts RFC3339 or a wall clock time in the studio timezone.
// Instants with seconds are rejected with ErrSubMinute.
func ParseInstant(value string) (time.Time, error) {
	t, err := time.Parse(constant.DateFormat, value)
	if err != nil {
		return timezone.Parse(constant.LocalMinuteFormat, value)
	}

	if t.Second() != 0 || t.Nanosecond() != 0 {
		return time.Time{}, ErrSubMinute
	}

	return timezone.ToAppTime(t), nil
}
