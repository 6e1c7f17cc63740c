package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"floorplan/infras/otel"
	"floorplan/infras/postgres"
	"floorplan/shared/constant"
	"floorplan/shared/dto"
	"floorplan/shared/logger"

	"github.com/jmoiron/sqlx"
)

const lockForUpdate = "FOR UPDATE"

var errRequiredFilter = errors.New("required filter")

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository is the generic sqlx data mapper behind the tables, reservations and
// users stores. Its column list comes from the db tags of T, embedded structs
// included.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entitas       string
	primaryColumn string
	InsertColumns []string
	insertQuery   string
}

func NewRepository[T any](entitasName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns := getColumns(reflect.TypeOf(zero))

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		InsertColumns: columns,
		insertQuery: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			tableName, strings.Join(columns, ", "), strings.Join(namedParams(columns), ", ")),
	}
}

func namedParams(columns []string) []string {
	params := make([]string, len(columns))
	for i, col := range columns {
		params[i] = ":" + col
	}

	return params
}

// span opens a repository span named after the entity and operation and
// records the query on it.
func (repo *Repository[T]) span(ctx context.Context, op, query string) (context.Context, otel.Scope) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entitas, op))

	if query != constant.Empty {
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)
	}

	return ctx, scope
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entitas, err)
}

func (repo *Repository[T]) exec(ctx context.Context, ex execer, op, query string, arg any) (int64, error) {
	ctx, scope := repo.span(ctx, op, query)
	defer scope.End()

	result, err := ex.NamedExecContext(ctx, query, arg)
	if err != nil {
		return 0, repo.fail(scope, op, err)
	}

	return rowsAffected(result), nil
}

// fetch prepares query and scans its result into dest with get or select semantics.
func (repo *Repository[T]) fetch(ctx context.Context, prep preparer, op, query string, args map[string]any, dest any, many bool) error {
	ctx, scope := repo.span(ctx, op, query)
	defer scope.End()

	stmt, err := prep.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if many {
		err = stmt.SelectContext(ctx, dest, args)
	} else {
		err = stmt.GetContext(ctx, dest, args)
	}

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return repo.fail(scope, op, err)
	}

	return err
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	_, err := repo.exec(ctx, repo.db.Write, "insert", repo.insertQuery, model)

	return err
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	_, err := repo.exec(ctx, sqltx, "insert", repo.insertQuery, model)

	return err
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == constant.Empty {
		return false, errRequiredFilter
	}

	var exist bool

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	if err := repo.fetch(ctx, repo.db.Read, "check exist", query, args, &exist, false); err != nil {
		return false, err
	}

	return exist, nil
}

func (repo *Repository[T]) get(ctx context.Context, prep preparer, filter dto.FilterGroup, lock string, columns ...string) (T, error) {
	var model T

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.getSelectQuery(columns...), repo.table, where, lock)

	err := repo.fetch(ctx, prep, "get", query, args, &model, false)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	return model, err
}

// Get returns the zero value when no row matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, repo.db.Read, filter, constant.Empty, columns...)
}

// GetForUpdateTx reads one row and holds a row lock until the transaction ends.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, filter, lockForUpdate, columns...)
}

func (repo *Repository[T]) getAll(ctx context.Context, prep preparer, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	where, args := repo.BuildWhereClause(ctx, filter)

	var ordering, pagination string

	if params.SortBy != constant.Empty && params.SortDir != constant.Empty {
		ordering = fmt.Sprintf("ORDER BY %s %s", params.SortBy, params.SortDir)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = params.Offset()
		pagination = "LIMIT :limit OFFSET :offset"
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s",
		repo.getSelectQuery(columns...), repo.table, where, ordering, pagination)

	var models []T
	if err := repo.fetch(ctx, prep, "get all", query, args, &models, true); err != nil {
		return models, err
	}

	return models, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, repo.db.Read, params, filter, columns...)
}

func (repo *Repository[T]) GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, sqltx, params, filter, columns...)
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	where, args := repo.BuildWhereClause(ctx, filter)

	var count int

	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s", repo.table, repo.primaryColumn, repo.table, where)
	if err := repo.fetch(ctx, repo.db.Read, "count", query, args, &count, false); err != nil {
		return 0, err
	}

	return count, nil
}

// DeleteCount hard-deletes matching rows. An empty filter is refused.
func (repo *Repository[T]) DeleteCount(ctx context.Context, filter dto.FilterGroup) (int64, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == constant.Empty {
		return 0, errRequiredFilter
	}

	return repo.exec(ctx, repo.db.Write, "delete", fmt.Sprintf("DELETE FROM %s %s", repo.table, where), args)
}

// setArgPrefix keeps SET values apart from WHERE binds on the same column.
const setArgPrefix = "set_"

func (repo *Repository[T]) updateQuery(mod map[string]any, filter dto.FilterGroup) (string, map[string]any, error) {
	where, args := repo.BuildWhereClause(context.Background(), filter)
	if where == constant.Empty {
		return constant.Empty, nil, errRequiredFilter
	}

	assignments := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s%s", col, setArgPrefix, col))
		args[setArgPrefix+col] = mod[col]
	}

	return fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), where), args, nil
}

func (repo *Repository[T]) update(ctx context.Context, ex execer, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	query, args, err := repo.updateQuery(mod, filter)
	if err != nil {
		return 0, err
	}

	return repo.exec(ctx, ex, "update", query, args)
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	_, err := repo.update(ctx, repo.db.Write, mod, filter)

	return err
}

// UpdateCount reports how many rows matched the filter.
func (repo *Repository[T]) UpdateCount(ctx context.Context, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	return repo.update(ctx, repo.db.Write, mod, filter)
}

func (repo *Repository[T]) UpdateCountTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	return repo.update(ctx, sqltx, mod, filter)
}

// Upsert inserts the model or, on conflict over conflictColumns, overwrites every
// non-key column except the creation metadata.
func (repo *Repository[T]) Upsert(ctx context.Context, model T, conflictColumns ...string) error {
	if len(conflictColumns) == 0 {
		conflictColumns = []string{repo.primaryColumn}
	}

	keep := append([]string{repo.primaryColumn, constant.FieldCreatedAt, constant.FieldCreatedBy}, conflictColumns...)

	updates := make([]string, 0, len(repo.InsertColumns))
	for _, col := range repo.InsertColumns {
		if !slices.Contains(keep, col) {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
	}

	query := fmt.Sprintf("%s ON CONFLICT (%s) DO UPDATE SET %s",
		repo.insertQuery, strings.Join(conflictColumns, ", "), strings.Join(updates, ", "))

	_, err := repo.exec(ctx, repo.db.Write, "upsert", query, model)

	return err
}

// getSelectQuery lists every mapped column, or only the requested ones,
// qualified by the table.
func (repo *Repository[T]) getSelectQuery(only ...string) string {
	exprs := make([]string, 0, len(repo.InsertColumns))

	for _, col := range repo.InsertColumns {
		if len(only) > 0 && !slices.Contains(only, col) {
			continue
		}

		exprs = append(exprs, repo.table+"."+col)
	}

	return strings.Join(exprs, ", ")
}

// BuildWhereClause renders filter as a WHERE clause with its named arguments.
// The args map is always non-nil so callers can add paging parameters.
func (repo *Repository[T]) BuildWhereClause(_ context.Context, filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == constant.Empty {
		return constant.Empty, map[string]any{}
	}

	return " WHERE " + where + " ", args
}

func getColumns(reflectType reflect.Type) []string {
	var columns []string

	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, getColumns(field.Type)...)

			continue
		}

		if dbTag := field.Tag.Get("db"); dbTag != constant.Empty && dbTag != "-" {
			columns = append(columns, dbTag)
		}
	}

	return columns
}

func rowsAffected(result sql.Result) int64 {
	affected, err := result.RowsAffected()
	if err != nil {
		return 0
	}

	return affected
}
