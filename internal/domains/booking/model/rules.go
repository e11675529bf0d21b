package model

import (
	"fmt"
	"time"

	"studio/config"
	"studio/shared/constant"
	"studio/shared/failure"
)

// Rules holds the time limits applied to admissions and client cancellations.
type Rules struct {
	MinLeadTime        time.Duration
	MaxAdvance         time.Duration
	CancellationWindow time.Duration
}

func NewRules(cfg *config.Config) Rules {
	rules := Rules{
		MinLeadTime:        time.Duration(cfg.Booking.MinLeadTimeMinutes) * time.Minute,
		MaxAdvance:         time.Duration(cfg.Booking.MaxAdvanceDays) * 24 * time.Hour,
		CancellationWindow: time.Duration(cfg.Booking.CancellationWindowHours) * time.Hour,
	}

	if rules.MinLeadTime <= 0 {
		rules.MinLeadTime = constant.DefaultMinLeadTime
	}

	if rules.MaxAdvance <= 0 {
		rules.MaxAdvance = constant.DefaultMaxAdvance
	}

	if rules.CancellationWindow <= 0 {
		rules.CancellationWindow = constant.DefaultCancellationWindow
	}

	return rules
}

func (r Rules) CheckAdmission(now, start time.Time) error {
	until := start.Sub(now)

	if until < r.MinLeadTime {
		return failure.Detailf(ErrTooSoon, "must book at least %s in advance", humanize(r.MinLeadTime))
	}

	if until > r.MaxAdvance {
		return failure.Detailf(ErrTooFarAhead, "cannot book more than %s in advance", humanize(r.MaxAdvance))
	}

	return nil
}

// CheckClientCancellation lets a client cancel up to exactly CancellationWindow before the start.
func (r Rules) CheckClientCancellation(now, start time.Time) error {
	if start.Sub(now) < r.CancellationWindow {
		return failure.Detailf(ErrWithinCancellationWindow, "cannot cancel within %s of the appointment", humanize(r.CancellationWindow))
	}

	return nil
}

// humanize prints d in the largest whole unit among days, hours and minutes.
func humanize(d time.Duration) string {
	day := 24 * time.Hour

	switch {
	case d%day == 0:
		return plural(int(d/day), "day")
	case d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/time.Minute), "minute")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}

	return fmt.Sprintf("%d %ss", n, unit)
}
