package model

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"floorplan/internal/domains/shift"
	"floorplan/shared/constant"
	"floorplan/shared/dto"
	"floorplan/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID           = "id"
	FieldTableCode    = "table_code"
	FieldCustomerName = "customer_name"
	FieldPhone        = "phone"
	FieldDate         = "reservation_date"
	FieldTime         = "reservation_time"
	FieldShift        = "shift"
	FieldPartySize    = "party_size"
	FieldNotes        = "notes"
	FieldStatus       = "status"
	FieldCallID       = "call_id"

	ConstraintPrimaryKey = "reservations_pkey"
	ConstraintActiveSlot = "reservations_active_slot_key"
)

const (
	CacheGetReservation    = "reservation:get"
	CacheGetAllReservation = "reservation:gets"
	CacheCountReservation  = "reservation:count"
)

const (
	WalkInCustomerName = "Walk-in"
	WalkInPhone        = "000000000"
	WalkInNotes        = "Table occupied without prior reservation"
	BlockCustomerName  = "Temporary hold"
)

var ErrUnknownStatus = errors.New("unknown reservation status")

type Status string

const (
	StatusReserved  Status = "reserved"
	StatusOccupied  Status = "occupied"
	StatusCancelled Status = "cancelled"
	StatusBlocked   Status = "blocked"
)

var Statuses = []Status{StatusReserved, StatusOccupied, StatusCancelled, StatusBlocked}

func ParseStatus(value string) (Status, error) {
	status := Status(value)

	return status, status.Validate()
}

func (s Status) Validate() error {
	switch s {
	case StatusReserved, StatusOccupied, StatusCancelled, StatusBlocked:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatus, string(s))
	}
}

// IsActive reports whether the status holds the table's slot for its shift.
func (s Status) IsActive() bool {
	switch s {
	case StatusReserved, StatusOccupied:
		return true
	case StatusCancelled, StatusBlocked:
		return false
	default:
		return false
	}
}

// CanTransitionTo encodes reserved -> occupied -> cancelled and reserved -> cancelled.
// Blocked rows never transition; they are deleted.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusReserved:
		return next == StatusOccupied || next == StatusCancelled
	case StatusOccupied:
		return next == StatusCancelled
	case StatusCancelled, StatusBlocked:
		return false
	default:
		return false
	}
}

// SourcesOf lists the statuses allowed to move into next.
func SourcesOf(next Status) []Status {
	sources := []Status{}

	for _, status := range Statuses {
		if status.CanTransitionTo(next) {
			sources = append(sources, status)
		}
	}

	return sources
}

// ActiveStatuses are the statuses that count against the one-per-shift rule.
func ActiveStatuses() []Status {
	active := []Status{}

	for _, status := range Statuses {
		if status.IsActive() {
			active = append(active, status)
		}
	}

	return active
}

type Reservation struct {
	ID           string      `db:"id"`
	TableCode    string      `db:"table_code"`
	CustomerName string      `db:"customer_name"`
	Phone        string      `db:"phone"`
	Date         time.Time   `db:"reservation_date"`
	Time         string      `db:"reservation_time"`
	Shift        shift.Shift `db:"shift"`
	PartySize    int         `db:"party_size"`
	Notes        string      `db:"notes"`
	Status       Status      `db:"status"`
	CallID       *string     `db:"call_id"`
	model.Metadata
}

// ShortTime renders the stored time as HH:MM.
func (r Reservation) ShortTime() string {
	if c, err := shift.ParseClock(r.Time); err == nil {
		return c.Short()
	}

	return r.Time
}

// DateString renders the reservation date as YYYY-MM-DD without shifting it across zones.
func (r Reservation) DateString() string {
	return r.Date.Format(constant.DateOnlyFormat)
}

// NewReservationID returns RESTA followed by two three digit segments.
func NewReservationID() string {
	return fmt.Sprintf("RESTA%d%d", 100+rand.IntN(900), 100+rand.IntN(900)) //nolint:gosec
}

// NewWalkInID returns RES, the compact date, an underscore and four digits.
func NewWalkInID(date time.Time) string {
	return fmt.Sprintf("RES%s_%d", date.Format(constant.CompactDate), 1000+rand.IntN(9000)) //nolint:gosec
}

// NewBlockID returns BLOCK, the first six characters of the call id and three digits.
func NewBlockID(callID string) string {
	prefix := []rune(callID)
	prefix = prefix[:min(len(prefix), 6)]

	return fmt.Sprintf("BLOCK%s%d", string(prefix), 100+rand.IntN(900)) //nolint:gosec
}

// SlotFilter matches the table's reservations on date whose time falls inside window.
func SlotFilter(tableCode, date string, window shift.Window, statuses ...Status) dto.FilterGroup {
	filters := DayFilter(tableCode, date, statuses...)
	filters.Filters = append(filters.Filters,
		dto.Filter{ArgName: "window_start", Field: FieldTime, Value: window.Start.String(), Operator: dto.FilterOperatorGreaterEq, Table: TableName},
		dto.Filter{ArgName: "window_end", Field: FieldTime, Value: window.End.String(), Operator: dto.FilterOperatorLess, Table: TableName},
	)

	return filters
}

// DayFilter matches the table's reservations on date, whatever the shift.
func DayFilter(tableCode, date string, statuses ...Status) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: FieldTableCode, Value: tableCode, Operator: dto.FilterOperatorEq, Table: TableName},
			dto.Filter{Field: FieldDate, Value: date, Operator: dto.FilterOperatorEq, Table: TableName},
			dto.Filter{Field: FieldStatus, Value: statuses, Operator: dto.FilterOperatorIn, Table: TableName},
		},
	}
}

// CallBlocksFilter matches every hold placed by a call.
func CallBlocksFilter(callID string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: FieldStatus, Value: StatusBlocked, Operator: dto.FilterOperatorEq, Table: TableName},
			dto.Filter{Field: FieldCallID, Value: callID, Operator: dto.FilterOperatorEq, Table: TableName},
		},
	}
}

// StaleBlocksFilter matches holds created before the given instant.
func StaleBlocksFilter(before time.Time) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: FieldStatus, Value: StatusBlocked, Operator: dto.FilterOperatorEq, Table: TableName},
			dto.Filter{ArgName: "created_before", Field: constant.FieldCreatedAt, Value: before, Operator: dto.FilterOperatorLess, Table: TableName},
		},
	}
}

// TransitionFilter matches the reservation only while it may still move into next.
func TransitionFilter(id string, next Status) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: FieldID, Value: id, Operator: dto.FilterOperatorEq, Table: TableName},
			dto.Filter{Field: FieldStatus, Value: SourcesOf(next), Operator: dto.FilterOperatorIn, Table: TableName},
		},
	}
}
