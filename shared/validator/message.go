package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":       "{field} is required",
	"min":            "{field} must be at least {param}",
	"max":            "{field} must be at most {param}",
	"oneof":          "{field} must be one of {param}",
	"clock":          "{field} must be a wall clock time like 09:00",
	"day":            "{field} must be a date like 2006-01-02",
	"datetime_local": "{field} must be RFC3339 or a local time like 2006-01-02T15:04",
}

// message describes the first failed rule that has a template.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrors {
		template, ok := messages[fieldErr.Tag()]
		if !ok {
			continue
		}

		field := fieldErr.Field()
		if field == "" {
			field = "value"
		}

		return strings.NewReplacer("{field}", field, "{param}", fieldErr.Param()).Replace(template)
	}

	return fieldErrors.Error()
}
