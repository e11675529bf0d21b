package repository

import (
	"errors"

	"studio/shared/constant"

	"github.com/lib/pq"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// IsInvalidText reports whether a bound value could not be cast to its column type,
// such as a malformed UUID.
func IsInvalidText(err error) bool {
	return pqCode(err) == constant.PqErrorCodeInvalidText
}

// IsConflict reports whether err means a concurrent writer claimed the same rows:
// a unique or exclusion constraint fired, or a serializable transaction was aborted.
func IsConflict(err error) bool {
	switch pqCode(err) {
	case constant.PqErrorCodeUniqueViolation, constant.PqErrorCodeExclusionViolation, constant.PqErrorCodeSerializationFailure:
		return true
	}

	return false
}
