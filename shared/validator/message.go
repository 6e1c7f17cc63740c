package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const messageSeparator = "; "

var messages = map[string]string{
	"required": "{field} is required",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lt":       "{field} must be less than {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"oneof":    "{field} must be one of {param}",
	"alphanum": "{field} must contain only letters and digits",
	"datetime": "{field} must match the format {param}",
	"clock":    "{field} must be a time in HH:MM or HH:MM:SS format",
	"enum":     "{field} has an unsupported value",
}

// length tags read differently for text than for numbers.
var lengthMessages = map[string][2]string{
	"max": {"{field} must be at most {param} characters", "{field} must be less than or equal to {param}"},
	"min": {"{field} must be at least {param} characters", "{field} must be greater than or equal to {param}"},
}

func describe(fieldErr val.FieldError) string {
	template, ok := messages[fieldErr.Tag()]

	if pair, isLength := lengthMessages[fieldErr.Tag()]; isLength {
		template, ok = pair[1], true
		if fieldErr.Kind() == reflect.String {
			template = pair[0]
		}
	}

	if !ok {
		return fieldErr.Error()
	}

	return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template)
}

// message renders every failing field, in declaration order.
func message(err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(valErrors))
	for _, fieldErr := range valErrors {
		parts = append(parts, describe(fieldErr))
	}

	return strings.Join(parts, messageSeparator)
}
