package repository

import (
	"errors"

	"floorplan/shared/constant"

	"github.com/lib/pq"
)

// UniqueViolation returns the violated constraint when err is a postgres unique violation.
func UniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
		return pqErr.Constraint, true
	}

	return "", false
}
