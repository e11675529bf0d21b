package failure

import (
	"errors"
	"fmt"
	"net/http"
)

const internalMessage = "internal server error"

// Failure is an error that knows the HTTP status it should be reported with.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	kind *Failure
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the Failure this one was derived from with Detailf.
func (e *Failure) Unwrap() error {
	if e.kind == nil {
		return nil
	}

	return e.kind
}

// Detailf copies kind's code with a new message; errors.Is still matches kind.
func Detailf(kind *Failure, format string, args ...any) error {
	return &Failure{Code: kind.Code, Message: fmt.Sprintf(format, args...), kind: kind}
}

func New(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// BadRequest keeps the message of err. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

// GetCode finds the first Failure in err's chain. Anything else is a 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// PublicMessage is what a caller may see: the Failure message for client errors,
// a generic text for server errors so driver details stay in the logs.
func PublicMessage(err error) string {
	var fail *Failure
	if errors.As(err, &fail) && fail.Code < http.StatusInternalServerError {
		return fail.Message
	}

	return internalMessage
}
