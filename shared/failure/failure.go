package failure

import (
	"errors"
	"net/http"
)

// Failure is a business error that maps onto an HTTP status. Anything that is
// not a *Failure is treated as an infrastructure error.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest wraps a validation error; nil stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// NotFound reports a missing table, reservation, hold or account.
func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

// Conflict reports a slot already taken or a state transition that is not allowed.
func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

// GetCode returns the HTTP status carried by err, 500 for anything else.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// Kind classifies an error for callers that need more than the HTTP code.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindInfra        Kind = "infra"
)

var kinds = map[int]Kind{
	http.StatusBadRequest:   KindValidation,
	http.StatusUnauthorized: KindUnauthorized,
	http.StatusForbidden:    KindForbidden,
	http.StatusNotFound:     KindNotFound,
	http.StatusConflict:     KindConflict,
}

func KindOf(err error) Kind {
	if kind, ok := kinds[GetCode(err)]; ok {
		return kind
	}

	return KindInfra
}

func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
