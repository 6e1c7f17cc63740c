package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"floorplan/infras/otel"
	"floorplan/internal/domains/availability/model/dto"
	"floorplan/internal/domains/availability/repository"
	"floorplan/internal/domains/shift"
	"floorplan/shared/constant"
	"floorplan/shared/failure"

	"github.com/rs/zerolog/log"
)

type Availability interface {
	FindAvailable(ctx context.Context, req dto.AvailabilityRequest) ([]dto.AvailableTableResponse, error)
}

type serviceImpl struct {
	repo     repository.Availability
	resolver *shift.Resolver
	otel     otel.Otel
}

func New(repo repository.Availability, resolver *shift.Resolver, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:     repo,
		resolver: resolver,
		otel:     otel,
	}
}

// FindAvailable lists the tables able to seat the party during the shift containing req.Time,
// smallest first. Holds placed by req.CallID do not count against the caller.
func (s *serviceImpl) FindAvailable(ctx context.Context, req dto.AvailabilityRequest) (res []dto.AvailableTableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.FindAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	clock, err := shift.ParseClock(req.Time)
	if err != nil {
		return nil, failure.BadRequest(err) // nolint:wrapcheck
	}

	if req.PartySize <= 0 {
		return nil, failure.BadRequestFromString("party_size must be greater than 0") // nolint:wrapcheck
	}

	tables, err := s.repo.FindAvailable(ctx, repository.Query{
		Date:      req.Date,
		Window:    s.resolver.Window(s.resolver.Resolve(clock)),
		PartySize: req.PartySize,
		CallID:    req.CallID,
	})
	if err != nil {
		log.Error().Err(err).Str("date", req.Date).Msg("failed to find available tables")

		return nil, fmt.Errorf("failed to find available tables: %w", err)
	}

	return dto.FromModels(tables), nil
}
