package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"floorplan/infras/otel"
	"floorplan/infras/postgres"
	"floorplan/internal/domains/shift"
	"floorplan/internal/domains/table/model"
	"floorplan/shared/constant"
	gDto "floorplan/shared/dto"
	"floorplan/shared/logger"
	gRepo "floorplan/shared/repository"

	"github.com/jmoiron/sqlx"
)

const (
	queryNextNumber = `SELECT COALESCE(MAX(CAST(SUBSTRING(code FROM 2) AS INTEGER)), 0) + 1
		FROM tables
		WHERE code ~ '^T[0-9]+$'`

	queryFloorPlan = `SELECT t.id, t.code, t.name, t.capacity, t.zone, t.pos_x, t.pos_y, t.rotation, t.active,
			r.customer_name, r.reservation_time, r.party_size, r.status AS reservation_status
		FROM tables t
		LEFT JOIN LATERAL (
			SELECT customer_name, TO_CHAR(reservation_time, 'HH24:MI:SS') AS reservation_time, party_size, status
			FROM reservations
			WHERE reservations.table_code = t.code
				AND reservations.reservation_date = CAST(:date AS DATE)
				AND reservations.reservation_time >= CAST(:start AS TIME)
				AND reservations.reservation_time < CAST(:end AS TIME)
				AND reservations.status IN ('reserved', 'occupied')
			ORDER BY CASE reservations.status WHEN 'occupied' THEN 0 ELSE 1 END, reservations.reservation_time
			LIMIT 1
		) r ON TRUE
		WHERE t.active = TRUE
		ORDER BY LENGTH(t.code), t.code`
)

type Table interface {
	Insert(ctx context.Context, table model.Table) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Table, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Table, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Table, error)
	Upsert(ctx context.Context, table model.Table, conflictColumns ...string) error
	NextNumber(ctx context.Context) (int, error)
	FloorPlan(ctx context.Context, date string, window shift.Window) ([]model.FloorPlanRow, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Table]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Table {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Table](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// NextNumber returns the number following the highest T<n> code, inactive tables included.
func (r *repositoryImpl) NextNumber(ctx context.Context) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".table.NextNumber")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryNextNumber)

	var next int

	if err := r.db.Write.GetContext(ctx, &next, queryNextNumber); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to get next table number: %w", err)
	}

	return next, nil
}

func (r *repositoryImpl) FloorPlan(ctx context.Context, date string, window shift.Window) ([]model.FloorPlanRow, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".table.FloorPlan")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryFloorPlan)

	prepare, err := r.db.Read.PrepareNamedContext(ctx, queryFloorPlan)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare floor plan statement: %w", err)
	}
	defer prepare.Close()

	rows := []model.FloorPlanRow{}

	err = prepare.SelectContext(ctx, &rows, map[string]any{
		"date":  date,
		"start": window.Start.String(),
		"end":   window.End.String(),
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get floor plan: %w", err)
	}

	return rows, nil
}
