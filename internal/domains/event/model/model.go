package model

import (
	"time"

	reservationModel "floorplan/internal/domains/reservation/model"
	"floorplan/shared/timezone"
)

type Type string

const (
	TypeReservationCreated  Type = "reservation.created"
	TypeReservationArrived  Type = "reservation.arrived"
	TypeReservationReleased Type = "reservation.released"
	TypeWalkInOccupied      Type = "reservation.walk_in"
	TypeBlockCreated        Type = "block.created"
	TypeBlockRemoved        Type = "block.removed"
	TypeBlockExpired        Type = "block.expired"
)

const HeaderEventType = "event-type"

// Event describes a committed reservation or block state change.
type Event struct {
	Type          Type      `json:"type"`
	ReservationID string    `json:"reservation_id,omitempty"`
	TableCode     string    `json:"table_code,omitempty"`
	Date          string    `json:"date,omitempty"`
	Time          string    `json:"time,omitempty"`
	Shift         string    `json:"shift,omitempty"`
	Status        string    `json:"status,omitempty"`
	CallID        string    `json:"call_id,omitempty"`
	Affected      int64     `json:"affected,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Key orders events per table; call scoped events fall back to the call id.
func (e Event) Key() string {
	if e.TableCode != "" {
		return e.TableCode
	}

	return e.CallID
}

// NewReservationEvent describes the state r was just written in.
func NewReservationEvent(t Type, r reservationModel.Reservation) Event {
	event := Event{
		Type:          t,
		ReservationID: r.ID,
		TableCode:     r.TableCode,
		Date:          r.DateString(),
		Time:          r.ShortTime(),
		Shift:         r.Shift.String(),
		Status:        string(r.Status),
		OccurredAt:    timezone.Now(),
	}

	if r.CallID != nil {
		event.CallID = *r.CallID
	}

	return event
}

type CallStatus string

const (
	CallStatusStarted CallStatus = "started"
	CallStatusEnded   CallStatus = "ended"
)

// CallEvent is published by the call-taking integration.
type CallEvent struct {
	CallID string     `json:"call_id"`
	Status CallStatus `json:"status"`
}
