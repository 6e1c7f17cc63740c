package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"floorplan/config"
	"floorplan/infras/otel/mocks"
	availabilityMocks "floorplan/internal/domains/availability/mocks"
	"floorplan/internal/domains/availability/model"
	"floorplan/internal/domains/availability/model/dto"
	"floorplan/internal/domains/availability/repository"
	"floorplan/internal/domains/availability/service"
	"floorplan/internal/domains/shift"
	tableModel "floorplan/internal/domains/table/model"
	"floorplan/shared/failure"
)

func TestAvailabilityService_FindAvailable(t *testing.T) {
	cfg := &config.Config{}
	cfg.Restaurant.ShiftCutoff = "17:00:00"

	resolver := shift.NewResolver(cfg)

	tests := []struct {
		name      string
		req       dto.AvailabilityRequest
		setupMock func(repo *availabilityMocks.MockAvailability)
		want      []dto.AvailableTableResponse
		wantCode  int
	}{
		{
			name: "searches the evening window for the caller",
			req:  dto.AvailabilityRequest{Date: "2026-10-18", Time: "21:15", PartySize: 3, CallID: "call-1"},
			setupMock: func(repo *availabilityMocks.MockAvailability) {
				repo.EXPECT().FindAvailable(gomock.Any(), repository.Query{
					Date:      "2026-10-18",
					Window:    resolver.Window(shift.Evening),
					PartySize: 3,
					CallID:    "call-1",
				}).Return([]model.AvailableTable{
					{Code: "T3", Name: "Mesa 3", Capacity: 4, Zone: tableModel.ZoneInterior},
					{Code: "T7", Name: "Mesa 7", Capacity: 6, Zone: tableModel.ZoneTerrace},
				}, nil)
			},
			want: []dto.AvailableTableResponse{
				{ID: "T3", Name: "Mesa 3", Capacity: 4, Zone: tableModel.ZoneInterior},
				{ID: "T7", Name: "Mesa 7", Capacity: 6, Zone: tableModel.ZoneTerrace},
			},
		},
		{
			name: "nothing free is an empty success",
			req:  dto.AvailabilityRequest{Date: "2026-10-18", Time: "13:00", PartySize: 12},
			setupMock: func(repo *availabilityMocks.MockAvailability) {
				repo.EXPECT().FindAvailable(gomock.Any(), gomock.Any()).Return([]model.AvailableTable{}, nil)
			},
			want: []dto.AvailableTableResponse{},
		},
		{
			name:      "malformed time",
			req:       dto.AvailabilityRequest{Date: "2026-10-18", Time: "noon", PartySize: 2},
			setupMock: func(_ *availabilityMocks.MockAvailability) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "non positive party size",
			req:       dto.AvailabilityRequest{Date: "2026-10-18", Time: "13:00", PartySize: 0},
			setupMock: func(_ *availabilityMocks.MockAvailability) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "database error",
			req:  dto.AvailabilityRequest{Date: "2026-10-18", Time: "13:00", PartySize: 2},
			setupMock: func(repo *availabilityMocks.MockAvailability) {
				repo.EXPECT().FindAvailable(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := availabilityMocks.NewMockAvailability(ctrl)
			tt.setupMock(repo)

			svc := service.New(repo, resolver, mocks.NewOtel())

			res, err := svc.FindAvailable(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}
