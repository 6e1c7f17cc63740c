package block_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "floorplan/infras/otel/mocks"
	"floorplan/internal/domains/block/service/mocks"
	"floorplan/internal/domains/reservation/model/dto"
	"floorplan/internal/handlers/block"
	"floorplan/shared/failure"
)

func newRouter(t *testing.T) (*mocks.MockBlock, http.Handler) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockBlock(ctrl)

	handler := block.New(svc, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func TestHandler_CreateBlock(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *mocks.MockBlock)
		wantCode  int
	}{
		{
			name: "hold placed",
			body: `{"table_id":"T3","date":"2026-10-18","time":"21:00","call_id":"call-1"}`,
			setupMock: func(svc *mocks.MockBlock) {
				svc.EXPECT().CreateBlock(gomock.Any(), dto.CreateBlockRequest{
					TableCode: "T3",
					Date:      "2026-10-18",
					Time:      "21:00",
					CallID:    "call-1",
				}).Return(dto.CreateReservationResponse{ID: "RESTA555555"}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name: "unknown table",
			body: `{"table_id":"T99","date":"2026-10-18","time":"21:00","call_id":"call-1"}`,
			setupMock: func(svc *mocks.MockBlock) {
				svc.EXPECT().CreateBlock(gomock.Any(), gomock.Any()).
					Return(dto.CreateReservationResponse{}, failure.NotFound("table not found"))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "missing call id",
			body:     `{"table_id":"T3","date":"2026-10-18","time":"21:00"}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/blocks/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandler_RemoveBlock(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().RemoveBlock(gomock.Any(), "call-1").Return(dto.RemoveBlockResponse{Removed: 2}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/blocks/call-1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"removed":2`)
}
