package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"floorplan/config"
	"floorplan/infras/otel"
	eventModel "floorplan/internal/domains/event/model"
	"floorplan/internal/domains/event/publisher"
	"floorplan/internal/domains/reservation/model"
	"floorplan/internal/domains/reservation/model/dto"
	"floorplan/internal/domains/reservation/repository"
	"floorplan/internal/domains/shift"
	tableModel "floorplan/internal/domains/table/model"
	tableRepo "floorplan/internal/domains/table/repository"
	"floorplan/shared"
	"floorplan/shared/cache"
	"floorplan/shared/constant"
	"floorplan/shared/failure"
	gRepo "floorplan/shared/repository"
	"floorplan/shared/timezone"

	"github.com/rs/zerolog/log"
)

const maxIDAttempts = 5

// Block manages the temporary holds a call-taking integration places while a call is in progress.
type Block interface {
	CreateBlock(ctx context.Context, req dto.CreateBlockRequest) (dto.CreateReservationResponse, error)
	RemoveBlock(ctx context.Context, callID string) (dto.RemoveBlockResponse, error)
	ExpireBlocks(ctx context.Context, olderThan time.Duration) (int64, error)
}

type serviceImpl struct {
	repo      repository.Reservation
	tableRepo tableRepo.Table
	resolver  *shift.Resolver
	publisher publisher.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Reservation,
	tableRepo tableRepo.Table,
	resolver *shift.Resolver,
	publisher publisher.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Block {
	return &serviceImpl{
		repo:      repo,
		tableRepo: tableRepo,
		resolver:  resolver,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// CreateBlock holds a table without checking the shift: holds are placed speculatively and
// availability already hides them from other callers.
func (s *serviceImpl) CreateBlock(ctx context.Context, req dto.CreateBlockRequest) (res dto.CreateReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".block.CreateBlock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.ContextSystem
	}

	clock, err := shift.ParseClock(req.Time)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	date, err := time.Parse(constant.DateOnlyFormat, req.Date)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", req.Date)) // nolint:wrapcheck
	}

	exist, err := s.tableRepo.Exist(ctx, tableModel.ActiveByCode(req.TableCode))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if table exists")

		return res, fmt.Errorf("failed to check if table exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("table not found") // nolint:wrapcheck
	}

	block, err := s.insert(ctx, req, user, date, clock)
	if err != nil {
		return res, err
	}

	res.ID = block.ID

	s.publisher.Publish(ctx, eventModel.NewReservationEvent(eventModel.TypeBlockCreated, block))
	s.invalidate(ctx, false)

	return res, nil
}

// insert draws a new block id whenever the previous one is already taken.
func (s *serviceImpl) insert(ctx context.Context, req dto.CreateBlockRequest, user string, date time.Time, clock shift.Clock) (model.Reservation, error) {
	for attempt := range maxIDAttempts {
		block := req.ToModel(user, date, clock, s.resolver.Resolve(clock))

		err := s.repo.Insert(ctx, block)
		if err == nil {
			return block, nil
		}

		if constraint, ok := gRepo.UniqueViolation(err); ok && constraint == model.ConstraintPrimaryKey {
			log.Warn().Str("id", block.ID).Int("attempt", attempt+1).Msg("block id taken, retrying")

			continue
		}

		log.Error().Err(err).Str("call_id", req.CallID).Msg("failed to create block")

		return block, fmt.Errorf("failed to create block: %w", err)
	}

	return model.Reservation{}, failure.Conflict("could not allocate a block id, try again") // nolint:wrapcheck
}

// RemoveBlock deletes every hold of the call. Removing nothing is not an error.
func (s *serviceImpl) RemoveBlock(ctx context.Context, callID string) (res dto.RemoveBlockResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".block.RemoveBlock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if callID == constant.Empty {
		return res, failure.BadRequestFromString("call_id is required") // nolint:wrapcheck
	}

	removed, err := s.repo.DeleteCount(ctx, model.CallBlocksFilter(callID))
	if err != nil {
		log.Error().Err(err).Str("call_id", callID).Msg("failed to remove blocks")

		return res, fmt.Errorf("failed to remove blocks: %w", err)
	}

	res.Removed = removed

	if removed > 0 {
		s.publisher.Publish(ctx, eventModel.Event{
			Type:       eventModel.TypeBlockRemoved,
			CallID:     callID,
			Status:     string(model.StatusBlocked),
			Affected:   removed,
			OccurredAt: timezone.Now(),
		})
		s.invalidate(ctx, true)
	}

	return res, nil
}

// ExpireBlocks deletes holds older than olderThan, left behind by calls that never ended.
func (s *serviceImpl) ExpireBlocks(ctx context.Context, olderThan time.Duration) (expired int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".block.ExpireBlocks")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if olderThan <= 0 {
		return 0, nil
	}

	expired, err = s.repo.DeleteCount(ctx, model.StaleBlocksFilter(timezone.Now().Add(-olderThan)))
	if err != nil {
		log.Error().Err(err).Msg("failed to expire blocks")

		return 0, fmt.Errorf("failed to expire blocks: %w", err)
	}

	if expired > 0 {
		log.Info().Int64("expired", expired).Dur("older_than", olderThan).Msg("expired stale blocks")

		s.publisher.Publish(ctx, eventModel.Event{
			Type:       eventModel.TypeBlockExpired,
			Status:     string(model.StatusBlocked),
			Affected:   expired,
			OccurredAt: timezone.Now(),
		})
		s.invalidate(ctx, true)
	}

	return expired, nil
}

// invalidate drops listings and floor plans. Removing holds also drops cached
// reservation details, since a deleted hold may still be cached by id.
func (s *serviceImpl) invalidate(ctx context.Context, removed bool) {
	go func() {
		c := context.WithoutCancel(ctx)

		if removed {
			shared.InvalidateCaches(c, s.cache, model.CacheGetReservation+constant.Colon)
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, tableModel.CacheFloorPlan)
	}()
}
