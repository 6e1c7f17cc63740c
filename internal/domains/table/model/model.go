package model

import (
	"errors"
	"fmt"
	"strings"

	"floorplan/shared/dto"
	"floorplan/shared/model"
)

const (
	TableName  = "tables"
	EntityName = "table"

	FieldID       = "id"
	FieldCode     = "code"
	FieldName     = "name"
	FieldCapacity = "capacity"
	FieldZone     = "zone"
	FieldPosX     = "pos_x"
	FieldPosY     = "pos_y"
	FieldRotation = "rotation"
	FieldActive   = "active"

	ConstraintCode = "tables_code_key"

	CodePrefix = "T"
)

const (
	CacheGetTable  = "table:get"
	CacheFloorPlan = "table:floorplan"
)

var ErrUnknownZone = errors.New("unknown zone")

type Zone string

const (
	ZoneInterior Zone = "interior"
	ZoneTerrace  Zone = "terrace"
)

// ParseZone also accepts the Spanish names found in older layout files.
func ParseZone(value string) (Zone, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "terraza":
		return ZoneTerrace, nil
	case "salon", "salón":
		return ZoneInterior, nil
	}

	zone := Zone(strings.ToLower(strings.TrimSpace(value)))

	return zone, zone.Validate()
}

func (z Zone) Validate() error {
	switch z {
	case ZoneInterior, ZoneTerrace:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownZone, string(z))
	}
}

type Table struct {
	ID       string  `db:"id"`
	Code     string  `db:"code"`
	Name     string  `db:"name"`
	Capacity int     `db:"capacity"`
	Zone     Zone    `db:"zone"`
	PosX     float64 `db:"pos_x"`
	PosY     float64 `db:"pos_y"`
	Rotation int     `db:"rotation"`
	Active   bool    `db:"active"`
	model.Metadata
}

// Occupancy is the state of a table for one date and shift.
type Occupancy string

const (
	OccupancyFree     Occupancy = "free"
	OccupancyReserved Occupancy = "reserved"
	OccupancyOccupied Occupancy = "occupied"
)

// FloorPlanRow is a table joined with its active reservation, if any, for a date and shift.
type FloorPlanRow struct {
	Table
	CustomerName      *string `db:"customer_name"`
	ReservationTime   *string `db:"reservation_time"`
	PartySize         *int    `db:"party_size"`
	ReservationStatus *string `db:"reservation_status"`
}

// Occupancy derives free/reserved/occupied from the joined reservation status.
func (r FloorPlanRow) Occupancy() Occupancy {
	if r.ReservationStatus == nil {
		return OccupancyFree
	}

	if *r.ReservationStatus == string(OccupancyOccupied) {
		return OccupancyOccupied
	}

	return OccupancyReserved
}

// DefaultName is the display name given to table number n.
func DefaultName(n int) string {
	return fmt.Sprintf("Mesa %d", n)
}

// Code is the identifier of table number n.
func Code(n int) string {
	return fmt.Sprintf("%s%d", CodePrefix, n)
}

// GridPosition lays new tables out on a four column grid.
func GridPosition(n int) (x, y float64) {
	const (
		origin  = 80
		columns = 4
		stepX   = 150
		stepY   = 140
	)

	idx := n - 1
	if idx < 0 {
		idx = 0
	}

	return float64(origin + (idx%columns)*stepX), float64(origin + (idx/columns)*stepY)
}

// ActiveByCode matches the active table with the given code.
func ActiveByCode(code string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: FieldCode, Value: code, Operator: dto.FilterOperatorEq, Table: TableName},
			dto.Filter{Field: FieldActive, Value: true, Operator: dto.FilterOperatorEq, Table: TableName},
		},
	}
}
