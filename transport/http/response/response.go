package response

import (
	"bytes"
	"encoding/json"
	"net/http"

	"floorplan/shared/constant"
	"floorplan/shared/failure"
	"floorplan/shared/logger"
)

// Body is the envelope every endpoint answers with.
type Body[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Data    *T     `json:"data,omitempty"`
}

type Message = Body[struct{}]

type Error = Body[struct{}]

func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Success: code < http.StatusBadRequest, Message: message})
}

// WithJSON wraps the payload in a successful envelope whose message is the status text.
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	WithJSONMessage(writer, code, http.StatusText(code), jsonPayload)
}

func WithJSONMessage(writer http.ResponseWriter, code int, message string, jsonPayload any) {
	response(writer, code, Body[any]{Success: true, Message: message, Data: &jsonPayload})
}

// WithError sends a response with an error message; infrastructure details are not exposed.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	kind := failure.KindOf(err)

	message := err.Error()
	if kind == failure.KindInfra {
		logger.ErrorWithStack(err)

		message = http.StatusText(http.StatusInternalServerError)
	}

	response(writer, code, Error{Success: false, Message: message, Kind: string(kind)})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown answers health probes during the grace period.
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

// response buffers the encoded body so a marshal failure can still answer 500.
func response(writer http.ResponseWriter, code int, payload any) {
	var buf bytes.Buffer

	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		logger.ErrorWithStack(err)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err := buf.WriteTo(writer); err != nil {
		logger.ErrorWithStack(err)
	}
}
