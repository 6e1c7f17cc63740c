package dto

import (
	"floorplan/internal/domains/availability/model"
	tableModel "floorplan/internal/domains/table/model"
)

type AvailabilityRequest struct {
	Date      string `json:"date"       validate:"required,datetime=2006-01-02"`
	Time      string `json:"time"       validate:"required,clock"`
	PartySize int    `json:"party_size" validate:"required,gt=0,lte=50"`
	CallID    string `json:"call_id"    validate:"omitempty,max=100"`
}

type AvailableTableResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Capacity int             `json:"capacity"`
	Zone     tableModel.Zone `json:"zone"`
}

func (r *AvailableTableResponse) FromModel(model model.AvailableTable) {
	r.ID = model.Code
	r.Name = model.Name
	r.Capacity = model.Capacity
	r.Zone = model.Zone
}

func FromModels(models []model.AvailableTable) []AvailableTableResponse {
	res := make([]AvailableTableResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
