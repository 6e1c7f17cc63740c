package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"floorplan/config"
	"floorplan/infras/otel/mocks"
	eventMocks "floorplan/internal/domains/event/mocks"
	eventModel "floorplan/internal/domains/event/model"
	reservationMocks "floorplan/internal/domains/reservation/mocks"
	"floorplan/internal/domains/reservation/model"
	"floorplan/internal/domains/reservation/model/dto"
	"floorplan/internal/domains/reservation/service"
	"floorplan/internal/domains/shift"
	tableMocks "floorplan/internal/domains/table/mocks"
	tableModel "floorplan/internal/domains/table/model"
	cacheMocks "floorplan/shared/cache/mocks"
	"floorplan/shared/constant"
	gDto "floorplan/shared/dto"
	"floorplan/shared/failure"
	repoMocks "floorplan/shared/repository/mocks"
)

const day = "2026-10-18"

// store keeps reservations in memory and answers the filters the service builds.
type store struct {
	rows []model.Reservation
}

func (s *store) match(filter gDto.FilterGroup) []int {
	_, args := filter.GetWhereClause()

	statuses := map[model.Status]bool{}
	for key, value := range args {
		if strings.HasPrefix(key, model.FieldStatus+"_") {
			statuses[value.(model.Status)] = true
		}
	}

	str := func(key string) (string, bool) {
		value, ok := args[key].(string)

		return value, ok
	}

	matched := []int{}

	for i, r := range s.rows {
		if id, ok := str(model.FieldID); ok && r.ID != id {
			continue
		}

		if code, ok := str(model.FieldTableCode); ok && r.TableCode != code {
			continue
		}

		if date, ok := str(model.FieldDate); ok && r.DateString() != date {
			continue
		}

		if start, ok := str("window_start"); ok && r.Time < start {
			continue
		}

		if end, ok := str("window_end"); ok && r.Time >= end {
			continue
		}

		if len(statuses) > 0 && !statuses[r.Status] {
			continue
		}

		matched = append(matched, i)
	}

	return matched
}

func (s *store) update(fields map[string]any, filter gDto.FilterGroup) int64 {
	matched := s.match(filter)
	for _, i := range matched {
		s.rows[i].Status = fields[model.FieldStatus].(model.Status)
	}

	return int64(len(matched))
}

func (s *store) first(filter gDto.FilterGroup) []model.Reservation {
	var found []model.Reservation

	for _, i := range s.match(filter) {
		if len(found) == 0 || s.rows[i].Time < found[0].Time {
			found = []model.Reservation{s.rows[i]}
		}
	}

	return found
}

type fixture struct {
	repo      *reservationMocks.MockReservation
	tables    *tableMocks.MockTable
	tx        *repoMocks.MockTransactor
	publisher *eventMocks.MockPublisher
	cache     *cacheMocks.MockRedisCache
	svc       service.Reservation
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Restaurant.ShiftCutoff = "17:00:00"
	cfg.Restaurant.MiddayServiceTime = "13:00:00"
	cfg.Restaurant.EveningServiceTime = "20:00:00"

	f := fixture{
		repo:      reservationMocks.NewMockReservation(ctrl),
		tables:    tableMocks.NewMockTable(ctrl),
		tx:        repoMocks.NewMockTransactor(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	f.svc = service.New(f.repo, f.tables, f.tx, shift.NewResolver(cfg), f.publisher, cfg, f.cache, mocks.NewOtel())

	f.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
			return fn(ctx, nil)
		}).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

// withStore backs the repository mocks with an in-memory store holding table T3 (capacity 4).
func (f fixture) withStore(s *store) {
	t3 := tableModel.Table{ID: "table-3", Code: "T3", Name: "Mesa 3", Capacity: 4, Active: true}

	f.tables.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, _ ...string) (tableModel.Table, error) {
			_, args := filter.GetWhereClause()
			if args[tableModel.FieldCode] == t3.Code {
				return t3, nil
			}

			return tableModel.Table{}, nil
		}).AnyTimes()

	f.repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
			return s.first(filter), nil
		}).AnyTimes()

	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, r model.Reservation) error {
			s.rows = append(s.rows, r)

			return nil
		}).AnyTimes()

	f.repo.EXPECT().UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
			return s.update(fields, filter), nil
		}).AnyTimes()

	f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
			return s.update(fields, filter), nil
		}).AnyTimes()
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
}

func reserve(name, clock string, people int) dto.CreateReservationRequest {
	return dto.CreateReservationRequest{CustomerName: name, Phone: "600111222", Date: day, Time: clock, PartySize: people}
}

func TestReservationService_Scenario(t *testing.T) {
	f := newFixture(t)
	s := &store{}
	f.withStore(s)

	var published []eventModel.Type

	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, events ...eventModel.Event) {
			for _, e := range events {
				published = append(published, e.Type)
			}
		}).AnyTimes()

	ctx := userContext()

	ana, err := f.svc.Create(ctx, reserve("Ana", "13:00", 2), "T3")
	assert.NoError(t, err)
	assert.Regexp(t, `^RESTA\d{6}$`, ana.ID)
	assert.Equal(t, model.StatusReserved, s.rows[0].Status)
	assert.Equal(t, shift.Midday, s.rows[0].Shift)
	assert.Equal(t, "13:00:00", s.rows[0].Time)

	_, err = f.svc.Create(ctx, reserve("Luis", "14:30", 2), "T3")
	assert.Equal(t, failure.KindConflict, failure.KindOf(err))
	assert.Equal(t, "table T3 already reserved for Mediodía (13:00) by Ana", err.Error())

	luis, err := f.svc.Create(ctx, reserve("Luis", "21:00", 2), "T3")
	assert.NoError(t, err)
	assert.Len(t, s.rows, 2)
	assert.Equal(t, shift.Evening, s.rows[1].Shift)

	arrived, err := f.svc.ConfirmArrival(ctx, dto.ArrivalRequest{Date: day}, "T3")
	assert.NoError(t, err)
	assert.Equal(t, ana.ID, arrived.ID)
	assert.Equal(t, "13:00", arrived.Time)
	assert.Equal(t, model.StatusOccupied, s.rows[0].Status)
	assert.Equal(t, model.StatusReserved, s.rows[1].Status)

	released, err := f.svc.Release(ctx, dto.ReleaseRequest{Date: day, Shift: "midday"}, "T3")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), released.Released)

	for _, r := range s.rows {
		assert.Equal(t, model.StatusCancelled, r.Status, r.ID)
	}

	again, err := f.svc.Release(ctx, dto.ReleaseRequest{Date: day}, "T3")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), again.Released)

	_, err = f.svc.ConfirmArrival(ctx, dto.ArrivalRequest{Date: day}, "T3")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	assert.Equal(t, "reservation not found", err.Error())

	_, err = f.svc.Create(ctx, reserve("Marta", "13:30", 2), "T3")
	assert.NoError(t, err, "cancelled rows free the shift")

	assert.NotEqual(t, ana.ID, luis.ID)
	assert.Equal(t, []eventModel.Type{
		eventModel.TypeReservationCreated,
		eventModel.TypeReservationCreated,
		eventModel.TypeReservationArrived,
		eventModel.TypeReservationReleased,
		eventModel.TypeReservationCreated,
	}, published)
}

func TestReservationService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateReservationRequest
		table     string
		setupMock func(f fixture)
		wantCode  int
		wantMsg   string
	}{
		{
			name:     "capacity exceeded",
			req:      reserve("Ana", "13:00", 6),
			table:    "T3",
			wantCode: http.StatusConflict,
			wantMsg:  "table T3 capacity exceeded, maximum 4 guests",
		},
		{
			name:     "unknown table",
			req:      reserve("Ana", "13:00", 2),
			table:    "T99",
			wantCode: http.StatusNotFound,
			wantMsg:  "table not found",
		},
		{
			name:     "malformed time",
			req:      reserve("Ana", "1pm", 2),
			table:    "T3",
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.withStore(&store{})

			_, err := f.svc.Create(userContext(), tt.req, tt.table)

			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestReservationService_CreateConstraints(t *testing.T) {
	t3 := tableModel.Table{ID: "table-3", Code: "T3", Capacity: 4, Active: true}

	setup := func(f fixture) {
		f.tables.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(t3, nil).AnyTimes()
		f.repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	}

	t.Run("regenerates the id on primary key collision", func(t *testing.T) {
		f := newFixture(t)
		setup(f)

		var ids []string

		gomock.InOrder(
			f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, r model.Reservation) error {
					ids = append(ids, r.ID)

					return fmt.Errorf("failed to insert data (reservation): %w", &pq.Error{Code: "23505", Constraint: model.ConstraintPrimaryKey})
				}),
			f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, r model.Reservation) error {
					ids = append(ids, r.ID)

					return nil
				}),
		)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		res, err := f.svc.Create(userContext(), reserve("Ana", "13:00", 2), "T3")

		assert.NoError(t, err)
		assert.Len(t, ids, 2)
		assert.Equal(t, ids[1], res.ID)
	})

	t.Run("slot index violation is a conflict", func(t *testing.T) {
		f := newFixture(t)
		setup(f)

		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: "23505", Constraint: model.ConstraintActiveSlot})

		_, err := f.svc.Create(userContext(), reserve("Ana", "20:30", 2), "T3")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, "table T3 already reserved for Noche", err.Error())
	})

	t.Run("database error is infra", func(t *testing.T) {
		f := newFixture(t)
		setup(f)

		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		_, err := f.svc.Create(userContext(), reserve("Ana", "13:00", 2), "T3")

		assert.Equal(t, failure.KindInfra, failure.KindOf(err))
		assert.ErrorContains(t, err, "failed to create reservation")
	})
}

func TestReservationService_OccupyWalkIn(t *testing.T) {
	t.Run("seats a walk-in at the shift's service time", func(t *testing.T) {
		f := newFixture(t)
		s := &store{}
		f.withStore(s)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		res, err := f.svc.OccupyWalkIn(userContext(), dto.WalkInRequest{Date: day, Shift: "evening"}, "T3")

		assert.NoError(t, err)
		assert.Regexp(t, `^RES20261018_\d{4}$`, res.ID)
		assert.Len(t, s.rows, 1)

		row := s.rows[0]
		assert.Equal(t, model.StatusOccupied, row.Status)
		assert.Equal(t, "20:00:00", row.Time)
		assert.Equal(t, 4, row.PartySize)
		assert.Equal(t, model.WalkInCustomerName, row.CustomerName)
		assert.Equal(t, model.WalkInPhone, row.Phone)
		assert.Equal(t, model.WalkInNotes, row.Notes)
	})

	t.Run("conflicts with an active row in the shift", func(t *testing.T) {
		f := newFixture(t)
		s := &store{}
		f.withStore(s)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		_, err := f.svc.Create(userContext(), reserve("Ana", "21:00", 2), "T3")
		assert.NoError(t, err)

		_, err = f.svc.OccupyWalkIn(userContext(), dto.WalkInRequest{Date: day, Shift: "noche"}, "T3")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, "table already occupied for this shift", err.Error())
	})

	t.Run("unknown shift", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.OccupyWalkIn(userContext(), dto.WalkInRequest{Date: day, Shift: "brunch"}, "T3")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestReservationService_ConfirmArrivalByShift(t *testing.T) {
	f := newFixture(t)
	s := &store{}
	f.withStore(s)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).AnyTimes()

	ctx := userContext()

	_, err := f.svc.Create(ctx, reserve("Ana", "13:00", 2), "T3")
	assert.NoError(t, err)

	evening, err := f.svc.Create(ctx, reserve("Luis", "21:00", 2), "T3")
	assert.NoError(t, err)

	res, err := f.svc.ConfirmArrival(ctx, dto.ArrivalRequest{Date: day, Shift: "evening"}, "T3")

	assert.NoError(t, err)
	assert.Equal(t, evening.ID, res.ID)
	assert.Equal(t, model.StatusReserved, s.rows[0].Status)
	assert.Equal(t, model.StatusOccupied, s.rows[1].Status)
}

func TestReservationService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), "reservation:get:RESTA000000", gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

		_, err := f.svc.Get(context.Background(), "RESTA000000")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{
			ID:           "RESTA123456",
			TableCode:    "T3",
			CustomerName: "Ana",
			Time:         "13:00:00",
			Shift:        shift.Midday,
			PartySize:    2,
			Status:       model.StatusReserved,
		}, nil)

		res, err := f.svc.Get(context.Background(), "RESTA123456")

		assert.NoError(t, err)
		assert.Equal(t, "13:00", res.Time)
		assert.Equal(t, "Mediodía", res.ShiftLabel)
	})
}

func TestReservationService_GetAll(t *testing.T) {
	f := newFixture(t)
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
			assert.Equal(t, model.FieldDate, params.SortBy, "unknown sort columns fall back")
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []model.Reservation{{ID: "RESTA123456", Shift: shift.Evening}}, nil
		})

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "1; DROP TABLE reservations"}, dto.ReservationFilter{TableCode: "T3"})

	assert.NoError(t, err)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Reservations, 1)
}
