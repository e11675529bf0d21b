package service

import (
	"net/http"

	"studio/shared/failure"
)

var (
	ErrSlotUnavailable = &failure.Failure{Code: http.StatusConflict, Message: "time slot is not available"}
	ErrSlotNotFound    = &failure.Failure{Code: http.StatusNotFound, Message: "time slot not found"}
	ErrInvalidRange    = &failure.Failure{Code: http.StatusBadRequest, Message: "end_date must not be before start_date"}
	ErrRangeTooLong    = &failure.Failure{Code: http.StatusBadRequest, Message: "requested range is too long"}
)
