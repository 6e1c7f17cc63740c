package dto

import (
	"floorplan/shared/constant"
	"floorplan/shared/model"
	"floorplan/shared/timezone"
)

// Metadata is the audit block attached to tables, reservations and users.
// The modification pair is omitted for rows never touched after creation.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(src model.Metadata) {
	m.CreatedAt = timezone.Format(src.CreatedAt, constant.DateFormat)
	m.CreatedBy = src.CreatedBy

	if src.ModifiedAt.IsZero() || (src.ModifiedAt.Equal(src.CreatedAt) && src.ModifiedBy == src.CreatedBy) {
		m.ModifiedAt, m.ModifiedBy = "", ""

		return
	}

	m.ModifiedAt = timezone.Format(src.ModifiedAt, constant.DateFormat)
	m.ModifiedBy = src.ModifiedBy
}
