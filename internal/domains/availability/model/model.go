package model

import (
	reservationModel "floorplan/internal/domains/reservation/model"
	tableModel "floorplan/internal/domains/table/model"
)

const EntityName = "availability"

// Blocking lists the statuses that keep a table out of the results, unless the row
// belongs to the caller's own call.
var Blocking = []reservationModel.Status{
	reservationModel.StatusReserved,
	reservationModel.StatusOccupied,
	reservationModel.StatusBlocked,
}

type AvailableTable struct {
	Code     string          `db:"code"`
	Name     string          `db:"name"`
	Capacity int             `db:"capacity"`
	Zone     tableModel.Zone `db:"zone"`
}
