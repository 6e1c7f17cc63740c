package model_test

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"floorplan/internal/domains/reservation/model"
	"floorplan/internal/domains/shift"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from model.Status
		to   model.Status
		want bool
	}{
		{from: model.StatusReserved, to: model.StatusOccupied, want: true},
		{from: model.StatusReserved, to: model.StatusCancelled, want: true},
		{from: model.StatusOccupied, to: model.StatusCancelled, want: true},
		{from: model.StatusOccupied, to: model.StatusReserved, want: false},
		{from: model.StatusCancelled, to: model.StatusReserved, want: false},
		{from: model.StatusBlocked, to: model.StatusReserved, want: false},
		{from: model.StatusBlocked, to: model.StatusCancelled, want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSourcesAndActiveStatuses(t *testing.T) {
	assert.Equal(t, []model.Status{model.StatusReserved}, model.SourcesOf(model.StatusOccupied))
	assert.Equal(t, []model.Status{model.StatusReserved, model.StatusOccupied}, model.SourcesOf(model.StatusCancelled))
	assert.Equal(t, []model.Status{model.StatusReserved, model.StatusOccupied}, model.ActiveStatuses())
}

func TestParseStatus(t *testing.T) {
	status, err := model.ParseStatus("blocked")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusBlocked, status)

	_, err = model.ParseStatus("Reservado")
	assert.ErrorIs(t, err, model.ErrUnknownStatus)
}

func TestSlotFilter(t *testing.T) {
	window := shift.Window{Start: 0, End: shift.NewClock(17, 0, 0)}
	filter := model.SlotFilter("T3", "2026-10-18", window, model.ActiveStatuses()...)

	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "reservations.reservation_time >= :window_start")
	assert.Contains(t, where, "reservations.reservation_time < :window_end")
	assert.Equal(t, "T3", args["table_code"])
	assert.Equal(t, "2026-10-18", args["reservation_date"])
	assert.Equal(t, "00:00:00", args["window_start"])
	assert.Equal(t, "17:00:00", args["window_end"])
	assert.Equal(t, model.StatusReserved, args["status_0"])
	assert.Equal(t, model.StatusOccupied, args["status_1"])
}

func TestIdentifiers(t *testing.T) {
	assert.Regexp(t, `^RESTA[1-9]\d{2}[1-9]\d{2}$`, model.NewReservationID())

	date := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	assert.Regexp(t, `^RES20261018_[1-9]\d{3}$`, model.NewWalkInID(date))

	assert.Regexp(t, `^BLOCKcall-4\d{3}$`, model.NewBlockID("call-42abc"))
	assert.Regexp(t, `^BLOCKab\d{3}$`, model.NewBlockID("ab"))

	multibyte := model.NewBlockID("abcdeñz")
	assert.True(t, utf8.ValidString(multibyte))
	assert.Regexp(t, `^BLOCKabcdeñ\d{3}$`, multibyte)

	accented := model.NewBlockID("ñúñezcall")
	assert.True(t, utf8.ValidString(accented))
	assert.Regexp(t, `^BLOCKñúñezc\d{3}$`, accented)
}

func TestReservation_Formatting(t *testing.T) {
	r := model.Reservation{Date: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), Time: "13:00:00"}

	assert.Equal(t, "2026-10-18", r.DateString())
	assert.Equal(t, "13:00", r.ShortTime())
}

func TestTransitionFilter(t *testing.T) {
	filter := model.TransitionFilter("RESTA123456", model.StatusOccupied)

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(reservations.id = :id AND reservations.status IN (:status_0) )", where)
	assert.Equal(t, "RESTA123456", args["id"])
	assert.Equal(t, model.StatusReserved, args["status_0"])
}
