package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"floorplan/internal/domains/table/model/dto"
)

var ErrNoTables = errors.New("layout has no tables list")

const (
	EntityName = "layout"

	// ObjectPrefix is the object storage folder for layout backups.
	ObjectPrefix = "layouts"
)

// Layout is the legacy JSON layout file: {"tables": [...]}, stamped with what it was built from.
type Layout struct {
	GeneratedAt string                    `json:"generated_at,omitempty"`
	Date        string                    `json:"date,omitempty"`
	Shift       string                    `json:"shift,omitempty"`
	Tables      []dto.TableStatusResponse `json:"tables"`
}

// Parse decodes a layout document, rejecting anything without a tables list.
func Parse(raw []byte) (layout Layout, err error) {
	if err = json.Unmarshal(raw, &layout); err != nil {
		return layout, err
	}

	if layout.Tables == nil {
		return layout, ErrNoTables
	}

	return layout, nil
}

// ObjectName is the backup key for a snapshot taken at unix seconds.
func ObjectName(date, shift string, unix int64) string {
	return fmt.Sprintf("%s-%s-%d.json", date, shift, unix)
}
