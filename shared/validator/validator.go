package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"floorplan/shared/constant"
	"floorplan/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// registerEnumValidation accepts values whose Validate method returns nil.
func registerEnumValidation(field val.FieldLevel) bool {
	value := field.Field()
	if value.Kind() == reflect.String && value.String() == constant.Empty {
		return true
	}

	method := value.MethodByName("Validate")
	if !method.IsValid() {
		return false
	}

	result := method.Call(nil)

	return result[0].IsNil()
}

func registerClockValidation(field val.FieldLevel) bool {
	str := field.Field().String()

	for _, layout := range []string{constant.ClockFormat, constant.ShortClockFormat} {
		if _, err := time.Parse(layout, str); err == nil {
			return true
		}
	}

	return false
}

func jsonTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" || name == constant.Empty {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	err := validate.RegisterValidation("enum", registerEnumValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("clock", registerClockValidation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
