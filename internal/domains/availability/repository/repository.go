package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"floorplan/infras/otel"
	"floorplan/infras/postgres"
	"floorplan/internal/domains/availability/model"
	"floorplan/internal/domains/shift"
	"floorplan/shared/constant"
	"floorplan/shared/logger"

	"github.com/jmoiron/sqlx"
)

const queryAvailable = `SELECT t.code, t.name, t.capacity, t.zone
	FROM tables t
	WHERE t.active = TRUE
		AND t.capacity >= :party_size
		AND NOT EXISTS (
			SELECT 1
			FROM reservations r
			WHERE r.table_code = t.code
				AND r.reservation_date = CAST(:date AS DATE)
				AND r.reservation_time >= CAST(:start AS TIME)
				AND r.reservation_time < CAST(:end AS TIME)
				AND r.status IN (:statuses)
				AND (r.call_id IS NULL OR CAST(:call_id AS TEXT) = '' OR r.call_id <> :call_id)
		)
	ORDER BY t.capacity, LENGTH(t.code), t.code`

// Query narrows the search to one date, shift window and party size.
type Query struct {
	Date      string
	Window    shift.Window
	PartySize int
	CallID    string
}

type Availability interface {
	FindAvailable(ctx context.Context, query Query) ([]model.AvailableTable, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// bind expands the statuses and renders the query with postgres placeholders.
func bind(query Query) (string, []any, error) {
	named, args, err := sqlx.Named(queryAvailable, map[string]any{
		"party_size": query.PartySize,
		"date":       query.Date,
		"start":      query.Window.Start.String(),
		"end":        query.Window.End.String(),
		"statuses":   model.Blocking,
		"call_id":    query.CallID,
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to bind availability query: %w", err)
	}

	named, args, err = sqlx.In(named, args...)
	if err != nil {
		return "", nil, fmt.Errorf("failed to expand availability statuses: %w", err)
	}

	return sqlx.Rebind(sqlx.DOLLAR, named), args, nil
}

func (r *repositoryImpl) FindAvailable(ctx context.Context, query Query) ([]model.AvailableTable, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.FindAvailable")
	defer scope.End()

	named, args, err := bind(query)
	if err != nil {
		return nil, err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, named)

	tables := []model.AvailableTable{}

	if err = r.db.Read.SelectContext(ctx, &tables, named, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to find available tables: %w", err)
	}

	return tables, nil
}
