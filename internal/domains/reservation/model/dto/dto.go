package dto

import (
	"time"

	"floorplan/internal/domains/reservation/model"
	"floorplan/internal/domains/shift"
	"floorplan/shared"
	"floorplan/shared/constant"
	gDto "floorplan/shared/dto"
	gModel "floorplan/shared/model"
	"floorplan/shared/timezone"
)

type CreateReservationRequest struct {
	CustomerName string `json:"customer_name" validate:"required,max=100"`
	Phone        string `json:"phone"         validate:"omitempty,max=30"`
	Date         string `json:"date"          validate:"required,datetime=2006-01-02"`
	Time         string `json:"time"          validate:"required,clock"`
	PartySize    int    `json:"party_size"    validate:"required,gt=0,lte=50"`
	Notes        string `json:"notes"         validate:"omitempty,max=500"`
}

// ToModel builds a reserved row; the caller assigns the id.
func (c *CreateReservationRequest) ToModel(user, tableCode string, date time.Time, clock shift.Clock, sh shift.Shift) model.Reservation {
	return model.Reservation{
		TableCode:    tableCode,
		CustomerName: c.CustomerName,
		Phone:        c.Phone,
		Date:         date,
		Time:         clock.String(),
		Shift:        sh,
		PartySize:    c.PartySize,
		Notes:        c.Notes,
		Status:       model.StatusReserved,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type ArrivalRequest struct {
	Date  string `json:"date"  validate:"required,datetime=2006-01-02"`
	Shift string `json:"shift" validate:"omitempty"`
}

// ReleaseRequest accepts a shift for compatibility; release always covers the whole day.
type ReleaseRequest struct {
	Date  string `json:"date"  validate:"omitempty,datetime=2006-01-02"`
	Shift string `json:"shift" validate:"omitempty"`
}

type WalkInRequest struct {
	Date  string `json:"date"  validate:"omitempty,datetime=2006-01-02"`
	Shift string `json:"shift" validate:"omitempty"`
}

type CreateBlockRequest struct {
	TableCode string `json:"table_id" validate:"required"`
	Date      string `json:"date"     validate:"required,datetime=2006-01-02"`
	Time      string `json:"time"     validate:"required,clock"`
	CallID    string `json:"call_id"  validate:"required,max=100"`
}

func (c *CreateBlockRequest) ToModel(user string, date time.Time, clock shift.Clock, sh shift.Shift) model.Reservation {
	callID := c.CallID

	return model.Reservation{
		ID:           model.NewBlockID(callID),
		TableCode:    c.TableCode,
		CustomerName: model.BlockCustomerName,
		Date:         date,
		Time:         clock.String(),
		Shift:        sh,
		Status:       model.StatusBlocked,
		CallID:       &callID,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type CreateReservationResponse struct {
	ID string `json:"id"`
}

type ArrivalResponse struct {
	ID   string `json:"id"`
	Time string `json:"time"`
}

type ReleaseResponse struct {
	Released int64 `json:"released"`
}

type RemoveBlockResponse struct {
	Removed int64 `json:"removed"`
}

type ReservationResponse struct {
	ID           string      `json:"id"`
	TableCode    string      `json:"table_id"`
	CustomerName string      `json:"customer_name"`
	Phone        string      `json:"phone"`
	Date         string      `json:"date"`
	Time         string      `json:"time"`
	Shift        shift.Shift `json:"shift"`
	ShiftLabel   string      `json:"shift_label"`
	PartySize    int         `json:"party_size"`
	Notes        string      `json:"notes"`
	Status       string      `json:"status"`
	CallID       *string     `json:"call_id"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.TableCode = model.TableCode
	r.CustomerName = model.CustomerName
	r.Phone = model.Phone
	r.Date = model.DateString()
	r.Time = model.ShortTime()
	r.Shift = model.Shift
	r.ShiftLabel = model.Shift.Label()
	r.PartySize = model.PartySize
	r.Notes = model.Notes
	r.Status = string(model.Status)
	r.CallID = model.CallID
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

// ReservationFilter holds the listing filters; empty fields are ignored.
type ReservationFilter struct {
	Date      string       `json:"date"     validate:"omitempty,datetime=2006-01-02"`
	TableCode string       `json:"table_id" validate:"omitempty,max=20"`
	Status    model.Status `json:"status"   validate:"omitempty,enum"`
	Customer  string       `json:"customer" validate:"omitempty,max=100"`
}

func (f *ReservationFilter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if f.Date != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldDate, Value: f.Date, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.TableCode != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldTableCode, Value: f.TableCode, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Status != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldStatus, Value: f.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Customer != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldCustomerName, Value: f.Customer, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}
