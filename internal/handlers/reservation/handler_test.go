package reservation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "floorplan/infras/otel/mocks"
	"floorplan/internal/domains/reservation/model"
	"floorplan/internal/domains/reservation/model/dto"
	"floorplan/internal/domains/reservation/service/mocks"
	"floorplan/internal/handlers/reservation"
	gDto "floorplan/shared/dto"
	"floorplan/shared/failure"
)

func newRouter(t *testing.T) (*mocks.MockReservation, http.Handler) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockReservation(ctrl)

	handler := reservation.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/tables", handler.TableRouter)
	handler.Router(router)

	return svc, router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_CreateReservation(t *testing.T) {
	valid := `{"customer_name":"Ana","date":"2026-10-18","time":"21:00","party_size":4}`

	tests := []struct {
		name      string
		body      string
		setupMock func(svc *mocks.MockReservation)
		wantCode  int
	}{
		{
			name: "reserved",
			body: valid,
			setupMock: func(svc *mocks.MockReservation) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any(), "T3").
					Return(dto.CreateReservationResponse{ID: "RESTA123456"}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name: "slot already taken",
			body: valid,
			setupMock: func(svc *mocks.MockReservation) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any(), "T3").
					Return(dto.CreateReservationResponse{}, failure.Conflict("table already reserved for this shift"))
			},
			wantCode: http.StatusConflict,
		},
		{
			name:     "missing customer name",
			body:     `{"date":"2026-10-18","time":"21:00","party_size":4}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed time",
			body:     `{"customer_name":"Ana","date":"2026-10-18","time":"9pm","party_size":4}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			rec := serve(router, http.MethodPost, "/tables/T3/reserve", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandler_OccupyWalkIn_QueryDefaults(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().OccupyWalkIn(gomock.Any(), dto.WalkInRequest{Date: "2026-10-18", Shift: "midday"}, "T1").
		Return(dto.CreateReservationResponse{ID: "RESTA100100"}, nil)

	rec := serve(router, http.MethodPost, "/tables/T1/occupy?date=2026-10-18&shift=midday", "")

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandler_OccupyWalkIn_BodyOverridesQuery(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().OccupyWalkIn(gomock.Any(), dto.WalkInRequest{Date: "2026-10-19", Shift: "midday"}, "T1").
		Return(dto.CreateReservationResponse{ID: "RESTA100100"}, nil)

	rec := serve(router, http.MethodPost, "/tables/T1/occupy?date=2026-10-18&shift=midday", `{"date":"2026-10-19"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandler_ConfirmArrival(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().ConfirmArrival(gomock.Any(), dto.ArrivalRequest{Date: "2026-10-18"}, "T4").
		Return(dto.ArrivalResponse{}, failure.NotFound("no reservation to confirm"))

	rec := serve(router, http.MethodPost, "/tables/T4/arrived", `{"date":"2026-10-18"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ConfirmArrival_RequiresDate(t *testing.T) {
	_, router := newRouter(t)

	rec := serve(router, http.MethodPost, "/tables/T4/arrived", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Release(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Release(gomock.Any(), dto.ReleaseRequest{Date: "2026-10-18"}, "T4").
		Return(dto.ReleaseResponse{Released: 2}, nil)

	rec := serve(router, http.MethodPost, "/tables/T4/free?date=2026-10-18", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"released":2`)
}

func TestHandler_GetReservations(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), dto.ReservationFilter{
		Date:      "2026-10-18",
		TableCode: "T2",
		Status:    model.StatusReserved,
	}).DoAndReturn(func(_ context.Context, _ gDto.QueryParams, _ dto.ReservationFilter) (dto.GetReservationsResponse, error) {
		return dto.GetReservationsResponse{}, nil
	})

	rec := serve(router, http.MethodGet, "/reservations/?date=2026-10-18&table_id=T2&status=reserved", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_GetReservations_UnknownStatus(t *testing.T) {
	_, router := newRouter(t)

	rec := serve(router, http.MethodGet, "/reservations/?status=seated", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetReservation(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), "RESTA123456").Return(dto.ReservationResponse{ID: "RESTA123456"}, nil)

	rec := serve(router, http.MethodGet, "/reservations/RESTA123456", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "RESTA123456")
}
