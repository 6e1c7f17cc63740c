package availability_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "floorplan/infras/otel/mocks"
	"floorplan/internal/domains/availability/model/dto"
	"floorplan/internal/domains/availability/service/mocks"
	"floorplan/internal/handlers/availability"
)

func TestHandler_FindAvailable(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		setupMock func(svc *mocks.MockAvailability)
		wantCode  int
	}{
		{
			name:  "tables for a party of four",
			query: "?date=2026-10-18&time=21:00&party_size=4&call_id=call-1",
			setupMock: func(svc *mocks.MockAvailability) {
				svc.EXPECT().FindAvailable(gomock.Any(), dto.AvailabilityRequest{
					Date:      "2026-10-18",
					Time:      "21:00",
					PartySize: 4,
					CallID:    "call-1",
				}).Return([]dto.AvailableTableResponse{{ID: "T2", Capacity: 4}}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "party size is not a number",
			query:    "?date=2026-10-18&time=21:00&party_size=four",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing time",
			query:    "?date=2026-10-18&party_size=2",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing party size",
			query:    "?date=2026-10-18&time=13:00",
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockAvailability(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			handler := availability.New(svc, otelMocks.NewOtel())
			router := chi.NewRouter()
			handler.Router(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/availability/"+tt.query, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
