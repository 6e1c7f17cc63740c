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
	gDto "floorplan/shared/dto"
	"floorplan/shared/failure"
	gModel "floorplan/shared/model"
	gRepo "floorplan/shared/repository"
	"floorplan/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const maxIDAttempts = 5

var sortableFields = []string{
	model.FieldDate,
	model.FieldTime,
	model.FieldTableCode,
	model.FieldCustomerName,
	model.FieldStatus,
	constant.FieldCreatedAt,
}

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest, tableCode string) (dto.CreateReservationResponse, error)
	ConfirmArrival(ctx context.Context, req dto.ArrivalRequest, tableCode string) (dto.ArrivalResponse, error)
	Release(ctx context.Context, req dto.ReleaseRequest, tableCode string) (dto.ReleaseResponse, error)
	OccupyWalkIn(ctx context.Context, req dto.WalkInRequest, tableCode string) (dto.CreateReservationResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ReservationFilter) (dto.GetReservationsResponse, error)
}

type serviceImpl struct {
	repo      repository.Reservation
	tableRepo tableRepo.Table
	tx        gRepo.Transactor
	resolver  *shift.Resolver
	publisher publisher.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Reservation,
	tableRepo tableRepo.Table,
	tx gRepo.Transactor,
	resolver *shift.Resolver,
	publisher publisher.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:      repo,
		tableRepo: tableRepo,
		tx:        tx,
		resolver:  resolver,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// placement prepares r for insert once the table row is locked and the active rows of
// its shift are known. Returning an error aborts the transaction.
type placement func(table tableModel.Table, existing []model.Reservation, r *model.Reservation) error

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest, tableCode string) (res dto.CreateReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	clock, err := shift.ParseClock(req.Time)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	sh := s.resolver.Resolve(clock)
	reservation := req.ToModel(user, tableCode, date, clock, sh)

	check := func(table tableModel.Table, existing []model.Reservation, r *model.Reservation) error {
		if r.PartySize > table.Capacity {
			return failure.Conflict(fmt.Sprintf("table %s capacity exceeded, maximum %d guests", table.Code, table.Capacity)) // nolint:wrapcheck
		}

		if len(existing) > 0 {
			return alreadyReserved(existing[0])
		}

		return nil
	}

	slotTaken := failure.Conflict(fmt.Sprintf("table %s already reserved for %s", tableCode, sh.Label()))

	reservation, err = s.place(ctx, reservation, model.NewReservationID, check, slotTaken)
	if err != nil {
		if failure.KindOf(err) != failure.KindInfra {
			return res, err
		}

		log.Error().Err(err).Str("table", tableCode).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	res.ID = reservation.ID

	s.publisher.Publish(ctx, eventModel.NewReservationEvent(eventModel.TypeReservationCreated, reservation))
	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) OccupyWalkIn(ctx context.Context, req dto.WalkInRequest, tableCode string) (res dto.CreateReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.OccupyWalkIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	date, err := parseDate(req.Date)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	sh, err := s.resolver.ParseOrCurrent(req.Shift)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	occupied := failure.Conflict("table already occupied for this shift")

	reservation := model.Reservation{
		TableCode:    tableCode,
		CustomerName: model.WalkInCustomerName,
		Phone:        model.WalkInPhone,
		Date:         date,
		Time:         s.resolver.ServiceTime(sh).String(),
		Shift:        sh,
		Notes:        model.WalkInNotes,
		Status:       model.StatusOccupied,
		Metadata:     newMetadata(user),
	}

	check := func(table tableModel.Table, existing []model.Reservation, r *model.Reservation) error {
		if len(existing) > 0 {
			return occupied
		}

		r.PartySize = table.Capacity

		return nil
	}

	newID := func() string { return model.NewWalkInID(date) }

	reservation, err = s.place(ctx, reservation, newID, check, occupied)
	if err != nil {
		if failure.KindOf(err) != failure.KindInfra {
			return res, err
		}

		log.Error().Err(err).Str("table", tableCode).Msg("failed to occupy table")

		return res, fmt.Errorf("failed to occupy table: %w", err)
	}

	res.ID = reservation.ID

	s.publisher.Publish(ctx, eventModel.NewReservationEvent(eventModel.TypeWalkInOccupied, reservation))
	s.invalidate(ctx)

	return res, nil
}

// place runs the locked check-then-insert for r, drawing a fresh id whenever the
// previous one collides with an existing row.
func (s *serviceImpl) place(ctx context.Context, r model.Reservation, newID func() string, check placement, slotTaken error) (model.Reservation, error) {
	window := s.resolver.Window(r.Shift)
	first := gDto.QueryParams{Limit: 1, SortBy: model.FieldTime, SortDir: gDto.SortDirAsc}

	for attempt := range maxIDAttempts {
		candidate := r
		candidate.ID = newID()

		err := s.tx.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			table, err := s.tableRepo.GetForUpdateTx(ctx, tx, tableModel.ActiveByCode(candidate.TableCode))
			if err != nil {
				return fmt.Errorf("failed to lock table: %w", err)
			}

			if table.ID == constant.Empty {
				return failure.NotFound("table not found") // nolint:wrapcheck
			}

			existing, err := s.repo.GetAllTx(ctx, tx, first, model.SlotFilter(candidate.TableCode, candidate.DateString(), window, model.ActiveStatuses()...))
			if err != nil {
				return fmt.Errorf("failed to check shift reservations: %w", err)
			}

			if err := check(table, existing, &candidate); err != nil {
				return err
			}

			return s.repo.InsertTx(ctx, tx, candidate)
		})
		if err == nil {
			return candidate, nil
		}

		constraint, ok := gRepo.UniqueViolation(err)

		switch {
		case ok && constraint == model.ConstraintPrimaryKey:
			log.Warn().Str("id", candidate.ID).Int("attempt", attempt+1).Msg("reservation id taken, retrying")

			continue
		case ok && constraint == model.ConstraintActiveSlot:
			return r, slotTaken
		default:
			return r, err
		}
	}

	return r, failure.Conflict("could not allocate a reservation id, try again") // nolint:wrapcheck
}

func (s *serviceImpl) ConfirmArrival(ctx context.Context, req dto.ArrivalRequest, tableCode string) (res dto.ArrivalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.ConfirmArrival")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	date, err := parseDate(req.Date)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	day := date.Format(constant.DateOnlyFormat)
	filter := model.DayFilter(tableCode, day, model.StatusReserved)

	if req.Shift != constant.Empty {
		sh, err := shift.Parse(req.Shift)
		if err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}

		filter = model.SlotFilter(tableCode, day, s.resolver.Window(sh), model.StatusReserved)
	}

	var arrived model.Reservation

	err = s.tx.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		rows, err := s.repo.GetAllTx(ctx, tx, gDto.QueryParams{Limit: 1, SortBy: model.FieldTime, SortDir: gDto.SortDirAsc}, filter)
		if err != nil {
			return fmt.Errorf("failed to get reserved rows: %w", err)
		}

		if len(rows) == 0 {
			return failure.NotFound("reservation not found") // nolint:wrapcheck
		}

		arrived = rows[0]

		affected, err := s.repo.UpdateCountTx(ctx, tx, transition(model.StatusOccupied, user), model.TransitionFilter(arrived.ID, model.StatusOccupied))
		if err != nil {
			return fmt.Errorf("failed to mark reservation occupied: %w", err)
		}

		if affected == 0 {
			return failure.NotFound("reservation not found") // nolint:wrapcheck
		}

		return nil
	})
	if err != nil {
		if failure.KindOf(err) != failure.KindInfra {
			return res, err
		}

		log.Error().Err(err).Str("table", tableCode).Msg("failed to confirm arrival")

		return res, fmt.Errorf("failed to confirm arrival: %w", err)
	}

	arrived.Status = model.StatusOccupied

	res.ID = arrived.ID
	res.Time = arrived.ShortTime()

	s.publisher.Publish(ctx, eventModel.NewReservationEvent(eventModel.TypeReservationArrived, arrived))
	s.invalidate(ctx, arrived.ID)

	return res, nil
}

// Release cancels every active reservation of the table on the date. The shift in the
// request is ignored, so releasing at lunch also frees the evening booking.
func (s *serviceImpl) Release(ctx context.Context, req dto.ReleaseRequest, tableCode string) (res dto.ReleaseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Release")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	date, err := parseDate(req.Date)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	day := date.Format(constant.DateOnlyFormat)

	if req.Shift != constant.Empty {
		log.Debug().Str("table", tableCode).Str("shift", req.Shift).Msg("release ignores the requested shift")
	}

	affected, err := s.repo.UpdateCount(ctx, transition(model.StatusCancelled, user), model.DayFilter(tableCode, day, model.SourcesOf(model.StatusCancelled)...))
	if err != nil {
		log.Error().Err(err).Str("table", tableCode).Msg("failed to release table")

		return res, fmt.Errorf("failed to release table: %w", err)
	}

	res.Released = affected

	if affected > 0 {
		s.publisher.Publish(ctx, eventModel.Event{
			Type:       eventModel.TypeReservationReleased,
			TableCode:  tableCode,
			Date:       day,
			Status:     string(model.StatusCancelled),
			Affected:   affected,
			OccurredAt: timezone.Now(),
		})
		s.invalidateDetails(ctx)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ReservationFilter) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.RestrictSort(model.FieldDate, sortableFields...)
	group := filter.ToFilterGroup()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAllReservation, params, group)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.repo.Count(ctx, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, ids ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range ids {
			if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGetReservation, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete reservation cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, tableModel.CacheFloorPlan)
	}()
}

// invalidateDetails drops every cached reservation detail as well. Release does not
// know which rows it cancelled.
func (s *serviceImpl) invalidateDetails(ctx context.Context) {
	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CacheGetReservation+constant.Colon)
	}()

	s.invalidate(ctx)
}

func alreadyReserved(existing model.Reservation) error {
	return failure.Conflict(fmt.Sprintf("table %s already reserved for %s (%s) by %s", // nolint:wrapcheck
		existing.TableCode, existing.Shift.Label(), existing.ShortTime(), existing.CustomerName))
}

func transition(next model.Status, user string) map[string]any {
	return map[string]any{
		model.FieldStatus:        next,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

// parseDate reads YYYY-MM-DD as a calendar date; empty means today in the restaurant's timezone.
func parseDate(value string) (time.Time, error) {
	if value == constant.Empty {
		value = timezone.Today()
	}

	date, err := time.Parse(constant.DateOnlyFormat, value)
	if err != nil {
		return date, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}

	return date, nil
}

func newMetadata(user string) gModel.Metadata {
	return gModel.NewMetadata(user, timezone.Now())
}
