package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"floorplan/config"
	"floorplan/infras/otel"
	layoutRepo "floorplan/internal/domains/layout/repository"
	"floorplan/internal/domains/shift"
	"floorplan/internal/domains/table/model"
	"floorplan/internal/domains/table/model/dto"
	"floorplan/internal/domains/table/repository"
	"floorplan/shared"
	"floorplan/shared/cache"
	"floorplan/shared/constant"
	"floorplan/shared/failure"
	gRepo "floorplan/shared/repository"
	"floorplan/shared/timezone"

	"github.com/rs/zerolog/log"
)

const maxCodeAttempts = 3

type Table interface {
	Create(ctx context.Context, req dto.CreateTableRequest) (dto.TableResponse, error)
	Get(ctx context.Context, code string) (dto.TableResponse, error)
	Update(ctx context.Context, req dto.UpdateTableRequest, code string) error
	Reposition(ctx context.Context, req dto.RepositionTableRequest, code string) error
	Delete(ctx context.Context, code string) error
	FloorPlan(ctx context.Context, req dto.FloorPlanRequest) (dto.FloorPlanResponse, error)
}

type serviceImpl struct {
	repo     repository.Table
	layout   layoutRepo.Layout
	resolver *shift.Resolver
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Table, layout layoutRepo.Layout, resolver *shift.Resolver, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Table {
	return &serviceImpl{
		repo:     repo,
		layout:   layout,
		resolver: resolver,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTableRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	for attempt := range maxCodeAttempts {
		next, err := s.repo.NextNumber(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to get next table number")

			return res, fmt.Errorf("failed to get next table number: %w", err)
		}

		table := req.ToModel(user, next)

		err = s.repo.Insert(ctx, table)
		if err == nil {
			res.FromModel(table)
			s.invalidate(ctx, table.Code)

			return res, nil
		}

		if constraint, ok := gRepo.UniqueViolation(err); ok && constraint == model.ConstraintCode {
			log.Warn().Str("code", table.Code).Int("attempt", attempt+1).Msg("table code taken, retrying")

			continue
		}

		log.Error().Err(err).Msg("failed to create table")

		return res, fmt.Errorf("failed to create table: %w", err)
	}

	return res, failure.Conflict("could not allocate a table code, try again") // nolint:wrapcheck
}

func (s *serviceImpl) Get(ctx context.Context, code string) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGetTable, code)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for table")

		return res, nil
	}

	table, err := s.repo.Get(ctx, model.ActiveByCode(code))
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return res, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return res, failure.NotFound("table not found") // nolint:wrapcheck
	}

	res.FromModel(table)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save table to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTableRequest, code string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("no data to update") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.update(ctx, shared.TransformFields(req, user), code)
}

func (s *serviceImpl) Reposition(ctx context.Context, req dto.RepositionTableRequest, code string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Reposition")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.update(ctx, shared.TransformFields(req, user), code)
}

// Delete is a soft delete; reservations keep pointing at the code.
func (s *serviceImpl) Delete(ctx context.Context, code string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := map[string]any{
		model.FieldActive:        false,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	return s.update(ctx, fields, code)
}

func (s *serviceImpl) update(ctx context.Context, fields map[string]any, code string) error {
	affected, err := s.repo.UpdateCount(ctx, fields, model.ActiveByCode(code))
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to update table")

		return fmt.Errorf("failed to update table: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("table not found") // nolint:wrapcheck
	}

	s.invalidate(ctx, code)

	return nil
}

func (s *serviceImpl) FloorPlan(ctx context.Context, req dto.FloorPlanRequest) (res dto.FloorPlanResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.FloorPlan")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	date := req.Date
	if date == constant.Empty {
		date = timezone.Today()
	}

	sh, err := s.resolver.ParseOrCurrent(req.Shift)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(model.CacheFloorPlan, date, sh.String())

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for floor plan")

		return res, nil
	}

	rows, err := s.repo.FloorPlan(ctx, date, s.resolver.Window(sh))
	if err != nil {
		log.Error().Err(err).Str("date", date).Str("shift", sh.String()).Msg("failed to get floor plan")

		fallback, fallbackErr := s.snapshot(ctx, date, sh)
		if fallbackErr != nil {
			log.Error().Err(fallbackErr).Msg("failed to load layout snapshot")

			return res, fmt.Errorf("failed to get floor plan: %w", err)
		}

		log.Warn().Str("date", date).Msg("serving floor plan from layout snapshot")

		return fallback, nil
	}

	res.FromRows(date, sh, rows)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save floor plan to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) snapshot(ctx context.Context, date string, sh shift.Shift) (res dto.FloorPlanResponse, err error) {
	layout, err := s.layout.Load(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to load layout: %w", err)
	}

	res.Date = date
	res.Shift = sh
	res.ShiftLabel = sh.Label()
	res.Degraded = true
	res.Tables = layout.Tables

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, code string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGetTable, code)); err != nil {
			log.Error().Err(err).Msg("failed to delete table cache")
		}

		shared.InvalidateCaches(c, s.cache, model.CacheFloorPlan)
	}()
}
