package dto

import (
	"floorplan/internal/domains/shift"
	"floorplan/internal/domains/table/model"
	"floorplan/shared/constant"
	gDto "floorplan/shared/dto"
	gModel "floorplan/shared/model"
	"floorplan/shared/timezone"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	Capacity int        `json:"capacity" validate:"required,gt=0,lte=50"`
	Zone     model.Zone `json:"zone"     validate:"omitempty,enum"`
	Name     string     `json:"name"     validate:"omitempty,max=100"`
	X        *float64   `json:"x"        validate:"omitempty,gte=0"`
	Y        *float64   `json:"y"        validate:"omitempty,gte=0"`
	Rotation int        `json:"rotation" validate:"gte=0,lt=360"`
}

// ToModel builds table number n, placing it on the default grid unless a position is given.
func (c *CreateTableRequest) ToModel(user string, n int) model.Table {
	x, y := model.GridPosition(n)
	if c.X != nil {
		x = *c.X
	}

	if c.Y != nil {
		y = *c.Y
	}

	zone := c.Zone
	if zone == constant.Empty {
		zone = model.ZoneInterior
	}

	name := c.Name
	if name == constant.Empty {
		name = model.DefaultName(n)
	}

	return model.Table{
		ID:       uuid.NewString(),
		Code:     model.Code(n),
		Name:     name,
		Capacity: c.Capacity,
		Zone:     zone,
		PosX:     x,
		PosY:     y,
		Rotation: c.Rotation,
		Active:   true,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateTableRequest struct {
	Capacity *int       `db:"capacity" json:"capacity" validate:"omitempty,gt=0,lte=50"`
	Zone     model.Zone `db:"zone"     json:"zone"     validate:"omitempty,enum"`
	Rotation *int       `db:"rotation" json:"rotation" validate:"omitempty,gte=0,lt=360"`
	Name     *string    `db:"name"     json:"name"     validate:"omitempty,min=1,max=100"`
}

func (u *UpdateTableRequest) IsEmpty() bool {
	return u.Capacity == nil && u.Zone == constant.Empty && u.Rotation == nil && u.Name == nil
}

type RepositionTableRequest struct {
	X *float64 `db:"pos_x" json:"x" validate:"required"`
	Y *float64 `db:"pos_y" json:"y" validate:"required"`
}

type FloorPlanRequest struct {
	Date  string `json:"date"  validate:"omitempty,datetime=2006-01-02"`
	Shift string `json:"shift" validate:"omitempty"`
}

type TableResponse struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Capacity int        `json:"capacity"`
	Zone     model.Zone `json:"zone"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Rotation int        `json:"rotation"`
	Active   bool       `json:"active"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(table model.Table) {
	r.ID = table.Code
	r.Name = table.Name
	r.Capacity = table.Capacity
	r.Zone = table.Zone
	r.X = table.PosX
	r.Y = table.PosY
	r.Rotation = table.Rotation
	r.Active = table.Active
	r.Metadata.FromModel(table.Metadata)
}

type ReservationInfo struct {
	CustomerName string `json:"customer_name"`
	Time         string `json:"time"`
	People       int    `json:"people"`
}

// TableStatusResponse is one entry of the floor plan, also the persisted layout format.
type TableStatusResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Zone            model.Zone       `json:"zone"`
	X               float64          `json:"x"`
	Y               float64          `json:"y"`
	Capacity        int              `json:"capacity"`
	Rotation        int              `json:"rotation"`
	Status          model.Occupancy  `json:"status"`
	ReservationInfo *ReservationInfo `json:"reservation_info"`
}

func (r *TableStatusResponse) FromRow(row model.FloorPlanRow) {
	r.ID = row.Code
	r.Name = row.Name
	r.Zone = row.Zone
	r.X = row.PosX
	r.Y = row.PosY
	r.Capacity = row.Capacity
	r.Rotation = row.Rotation
	r.Status = row.Occupancy()
	r.ReservationInfo = nil

	if r.Status == model.OccupancyFree {
		return
	}

	info := &ReservationInfo{}
	if row.CustomerName != nil {
		info.CustomerName = *row.CustomerName
	}

	if row.ReservationTime != nil {
		info.Time = shortClock(*row.ReservationTime)
	}

	if row.PartySize != nil {
		info.People = *row.PartySize
	}

	r.ReservationInfo = info
}

func shortClock(value string) string {
	if len(value) >= len(constant.ShortClockFormat) {
		return value[:len(constant.ShortClockFormat)]
	}

	return value
}

type FloorPlanResponse struct {
	Date       string                `json:"date"`
	Shift      shift.Shift           `json:"shift"`
	ShiftLabel string                `json:"shift_label"`
	Degraded   bool                  `json:"degraded,omitempty"`
	Tables     []TableStatusResponse `json:"tables"`
}

func (r *FloorPlanResponse) FromRows(date string, s shift.Shift, rows []model.FloorPlanRow) {
	r.Date = date
	r.Shift = s
	r.ShiftLabel = s.Label()

	r.Tables = make([]TableStatusResponse, len(rows))
	for i, row := range rows {
		r.Tables[i].FromRow(row)
	}
}
