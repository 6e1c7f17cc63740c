package mocks

import (
	"context"

	"floorplan/infras/otel"
)

type otelImpl struct{}

// NewScope implements otel.Otel without recording anything.
func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (o *otelImpl) Shutdown(_ context.Context) error {
	return nil
}

func NewOtel() otel.Otel {
	return &otelImpl{}
}
