package otel_test

import (
	"context"
	"errors"
	"testing"

	"floorplan/infras/otel"
	"floorplan/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "reservation.Create")
	scope := otel.NewScope(span)

	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func attributes(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	values := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		values[kv.Key] = kv.Value
	}

	return values
}

func TestScope_TraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
		wantKind   string
	}{
		{
			name:       "infrastructure failure marks the span",
			err:        errors.New("connection refused"),
			wantStatus: codes.Error,
			wantKind:   "infra",
		},
		{
			name:       "conflict is recorded but not a span failure",
			err:        failure.Conflict("table already reserved for this shift"),
			wantStatus: codes.Unset,
			wantKind:   "conflict",
		},
		{
			name:       "not found",
			err:        failure.NotFound("table not found"),
			wantStatus: codes.Unset,
			wantKind:   "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := record(t, func(scope otel.Scope) { scope.TraceError(tt.err) })

			assert.Equal(t, tt.wantStatus, span.Status().Code)
			assert.Equal(t, tt.wantKind, attributes(span)["error.kind"].AsString())
			require.Len(t, span.Events(), 1)
			assert.Equal(t, "exception", span.Events()[0].Name)
		})
	}
}

func TestScope_TraceIfError_Nil(t *testing.T) {
	span := record(t, func(scope otel.Scope) { scope.TraceIfError(nil) })

	assert.Equal(t, codes.Unset, span.Status().Code)
	assert.Empty(t, span.Events())
}

func TestScope_SetAttributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"table.code":   "T3",
			"party.size":   4,
			"released":     int64(2),
			"pos.x":        120.5,
			"degraded":     true,
			"roles":        []string{"admin", "staff"},
			"unknown.type": struct{ A int }{A: 1},
		})
	})

	values := attributes(span)

	assert.Equal(t, "T3", values["table.code"].AsString())
	assert.Equal(t, int64(4), values["party.size"].AsInt64())
	assert.Equal(t, int64(2), values["released"].AsInt64())
	assert.InDelta(t, 120.5, values["pos.x"].AsFloat64(), 0.0001)
	assert.True(t, values["degraded"].AsBool())
	assert.Equal(t, []string{"admin", "staff"}, values["roles"].AsStringSlice())
	assert.Equal(t, "{1}", values["unknown.type"].AsString())
}
