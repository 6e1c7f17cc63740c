package model

import (
	"strings"
	"time"

	"floorplan/shared/constant"
	"floorplan/shared/dto"
	"floorplan/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldName      = "name"
	FieldRole      = "role"
	FieldActive    = "active"
	FieldLastLogin = "last_login"

	ConstraintUsername = "users_username_key"
)

type User struct {
	ID        string     `db:"id"`
	Username  string     `db:"username"`
	Password  string     `db:"password"`
	Name      string     `db:"name"`
	Role      string     `db:"role"`
	Active    bool       `db:"active"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}

// ActiveByUsername matches an active account; usernames are compared lowercase.
func ActiveByUsername(username string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: FieldUsername, Value: strings.ToLower(strings.TrimSpace(username)), Operator: dto.FilterOperatorEq, Table: TableName},
			dto.Filter{Field: FieldActive, Value: true, Operator: dto.FilterOperatorEq, Table: TableName},
		},
	}
}

func ActiveByID(id string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: FieldID, Value: id, Operator: dto.FilterOperatorEq, Table: TableName},
			dto.Filter{Field: FieldActive, Value: true, Operator: dto.FilterOperatorEq, Table: TableName},
		},
	}
}

func ValidRole(role string) bool {
	return role == constant.RoleAdmin || role == constant.RoleStaff
}
