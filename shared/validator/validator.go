package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"studio/shared/constant"
	"studio/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate = newValidate()

// layouts backs the string rules that accept a time in one of several formats.
var layouts = map[string][]string{
	"clock":          {constant.ClockFormat, constant.ClockSecFormat},
	"datetime_local": {time.RFC3339, constant.LocalMinuteFormat},
	"day":            {constant.DayFormat},
}

func newValidate() *val.Validate {
	validate := val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(jsonName)

	for tag, formats := range layouts {
		if err := validate.RegisterValidation(tag, parsesAs(formats)); err != nil {
			panic(err)
		}
	}

	return validate
}

// jsonName reports fields by the name clients send.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func parsesAs(formats []string) val.Func {
	return func(field val.FieldLevel) bool {
		value, ok := field.Field().Interface().(string)
		if !ok {
			return false
		}

		for _, layout := range formats {
			if _, err := time.Parse(layout, value); err == nil {
				return true
			}
		}

		return false
	}
}

// Validate decodes a JSON body into data and checks its validate tags.
// Every failure is a 400.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return failure.BadRequestFromString("request body is required")
		}

		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err))
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err))
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err))
	}

	return nil
}
