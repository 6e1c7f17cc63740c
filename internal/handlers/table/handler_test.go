package table_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "floorplan/infras/otel/mocks"
	"floorplan/internal/domains/shift"
	"floorplan/internal/domains/table/model/dto"
	"floorplan/internal/domains/table/service/mocks"
	"floorplan/internal/handlers/table"
	"floorplan/shared/failure"
	"floorplan/transport/http/response"
)

func newRouter(t *testing.T) (*mocks.MockTable, http.Handler) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockTable(ctrl)

	handler := table.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/tables", handler.Router)

	return svc, router
}

func TestHandler_FloorPlan(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().FloorPlan(gomock.Any(), dto.FloorPlanRequest{Date: "2026-10-18", Shift: "evening"}).
		Return(dto.FloorPlanResponse{Date: "2026-10-18", Shift: shift.Evening, ShiftLabel: "Evening"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tables/?date=2026-10-18&shift=evening", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body response.Body[dto.FloorPlanResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Data)
	assert.Equal(t, shift.Evening, body.Data.Shift)
}

func TestHandler_FloorPlan_InvalidDate(t *testing.T) {
	_, router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tables/?date=18-10-2026", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CreateTable(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *mocks.MockTable)
		wantCode  int
	}{
		{
			name: "created",
			body: `{"capacity":4,"zone":"terrace"}`,
			setupMock: func(svc *mocks.MockTable) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req dto.CreateTableRequest) (dto.TableResponse, error) {
						assert.Equal(t, 4, req.Capacity)

						return dto.TableResponse{ID: "T5", Capacity: 4}, nil
					})
			},
			wantCode: http.StatusCreated,
		},
		{
			name:     "zero capacity is rejected before the service",
			body:     `{"capacity":0}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown zone",
			body:     `{"capacity":2,"zone":"rooftop"}`,
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
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tables/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandler_GetTable_NotFound(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), "T99").Return(dto.TableResponse{}, failure.NotFound("table not found"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tables/T99", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body response.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "table not found", body.Message)
	assert.Equal(t, string(failure.KindNotFound), body.Kind)
}

func TestHandler_RepositionTable(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Reposition(gomock.Any(), gomock.Any(), "T2").
		DoAndReturn(func(_ context.Context, req dto.RepositionTableRequest, _ string) error {
			require.NotNil(t, req.X)
			require.NotNil(t, req.Y)
			assert.Equal(t, 120.5, *req.X)
			assert.Equal(t, 80.0, *req.Y)

			return nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tables/T2/position", strings.NewReader(`{"x":120.5,"y":80}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_RepositionTable_MissingCoordinate(t *testing.T) {
	_, router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tables/T2/position", strings.NewReader(`{"x":120.5}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_DeleteTable(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Delete(gomock.Any(), "T3").Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/tables/T3", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
