package model

import (
	"time"

	"studio/shared/constant"
	"studio/shared/model"
	"studio/shared/timezone"
)

const (
	TableName  = "working_days"
	EntityName = "working_day"

	FieldID        = "id"
	FieldDayOfWeek = "day_of_week"
	FieldIsActive  = "is_active"
	FieldOpenTime  = "open_time"
	FieldCloseTime = "close_time"
)

// WorkingDay is the opening policy of one ISO weekday (1 = Monday, 7 = Sunday).
type WorkingDay struct {
	ID        string `db:"id"`
	DayOfWeek int    `db:"day_of_week"`
	IsActive  bool   `db:"is_active"`
	OpenTime  string `db:"open_time"`
	CloseTime string `db:"close_time"`
	model.Metadata
}

// Window is the half-open operating interval [Open, Close) of one date.
type Window struct {
	Open  time.Time
	Close time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Open) && t.Before(w.Close)
}

// WindowOn anchors the policy's wall clock times to date in the studio timezone.
func (w WorkingDay) WindowOn(date time.Time) (Window, error) {
	open, err := ParseClock(w.OpenTime)
	if err != nil {
		return Window{}, err
	}

	closing, err := ParseClock(w.CloseTime)
	if err != nil {
		return Window{}, err
	}

	return Window{
		Open:  timezone.At(date, open.Hour(), open.Minute(), open.Second()),
		Close: timezone.At(date, closing.Hour(), closing.Minute(), closing.Second()),
	}, nil
}

func ISOWeekday(t time.Time) int {
	day := int(t.In(timezone.GetLocation()).Weekday())
	if day == 0 {
		return 7
	}

	return day
}

// ParseClock accepts 15:04 and 15:04:05; Postgres returns the latter for time columns.
func ParseClock(value string) (time.Time, error) {
	if t, err := time.Parse(constant.ClockSecFormat, value); err == nil {
		return t, nil
	}

	return time.Parse(constant.ClockFormat, value)
}
