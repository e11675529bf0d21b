package model

import (
	"net/http"

	"studio/shared/failure"
)

var (
	ErrTooSoon                  = &failure.Failure{Code: http.StatusBadRequest, Message: "booking starts too soon"}
	ErrTooFarAhead              = &failure.Failure{Code: http.StatusBadRequest, Message: "booking is too far in advance"}
	ErrClosedDay                = &failure.Failure{Code: http.StatusBadRequest, Message: "the studio is closed on the selected day"}
	ErrOverlap                  = &failure.Failure{Code: http.StatusConflict, Message: "time slot already booked"}
	ErrWithinCancellationWindow = &failure.Failure{Code: http.StatusConflict, Message: "too late to cancel this booking"}
	ErrReasonRequired           = &failure.Failure{Code: http.StatusBadRequest, Message: "a cancellation reason is required"}
	ErrInvalidStateTransition   = &failure.Failure{Code: http.StatusConflict, Message: "invalid status transition"}
	ErrBookingNotFound          = &failure.Failure{Code: http.StatusNotFound, Message: "booking not found"}
	ErrNotBookingOwner          = &failure.Failure{Code: http.StatusForbidden, Message: "cannot cancel another client's booking"}
)
