package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

type Status string

const (
	StatusBooked    Status = "BOOKED"
	StatusCanceled  Status = "CANCELED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

var transitions = map[Status][]Status{
	StatusBooked: {StatusCanceled, StatusCompleted, StatusNoShow},
}

func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))

	switch status {
	case StatusBooked, StatusCanceled, StatusCompleted, StatusNoShow:
		return status, nil
	}

	return "", fmt.Errorf("unknown booking status %q", value)
}

// CanTransitionTo allows only the moves out of BOOKED; every other state is final.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}
