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

	"studio/infras/otel"
	"studio/infras/postgres"
	"studio/shared/constant"
	"studio/shared/dto"
	"studio/shared/logger"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

const (
	lockNone      = ""
	lockForUpdate = "FOR UPDATE"

	onConflictDoNothing = "ON CONFLICT DO NOTHING"

	argLimit  = "limit"
	argOffset = "offset"
)

type column struct {
	name  string
	table string
	alias string
}

func (c column) expr() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return fmt.Sprintf("%s.%s AS %s", c.table, c.name, c.alias)
	default:
		return c.table + "." + c.name
	}
}

// session is satisfied by both *sqlx.DB and *sqlx.Tx.
type session interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// Repository maps T's db tags onto table. Embedded structs contribute their columns;
// a `table` tag marks a joined column and `column` renames it in the select list.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	insertColumns []string
	join          string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	join := ""
	if joiner, ok := any(zero).(interface{ GetJoinQuery() string }); ok {
		join = joiner.GetJoinQuery()
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		insertColumns: insertColumns,
		join:          join,
	}
}

func (repo *Repository[T]) newScope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, operation))
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	ctx, scope := repo.newScope(ctx, "InsertTx")
	defer scope.End()

	query := repo.insertQuery("")
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := sqltx.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

// InsertBulkIgnoreConflict writes models in one statement, skipping rows that hit
// an existing unique key, and reports how many rows were written.
func (repo *Repository[T]) InsertBulkIgnoreConflict(ctx context.Context, models []T) (int64, error) {
	ctx, scope := repo.newScope(ctx, "InsertBulkIgnoreConflict")
	defer scope.End()

	return repo.insertBulk(ctx, scope, repo.db.Write, models)
}

func (repo *Repository[T]) InsertBulkIgnoreConflictTx(ctx context.Context, sqltx *sqlx.Tx, models []T) (int64, error) {
	ctx, scope := repo.newScope(ctx, "InsertBulkIgnoreConflictTx")
	defer scope.End()

	return repo.insertBulk(ctx, scope, sqltx, models)
}

func (repo *Repository[T]) insertBulk(ctx context.Context, scope otel.Scope, sess session, models []T) (int64, error) {
	if len(models) == 0 {
		return 0, nil
	}

	query := repo.insertQuery(onConflictDoNothing)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := sess.NamedExecContext(ctx, query, models)
	if err != nil {
		return 0, repo.fail(scope, "bulk insert data", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, repo.fail(scope, "read affected rows", err)
	}

	return affected, nil
}

// Get returns the zero value of T when no row matches, including when a filter value
// cannot be cast to its column type.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.newScope(ctx, "Get")
	defer scope.End()

	return repo.get(ctx, scope, repo.db.Read, filter, lockNone, columns)
}

func (repo *Repository[T]) GetTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.newScope(ctx, "GetTx")
	defer scope.End()

	return repo.get(ctx, scope, sqltx, filter, lockNone, columns)
}

// GetForUpdateTx reads one row and holds its row lock until the transaction ends.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.newScope(ctx, "GetForUpdateTx")
	defer scope.End()

	return repo.get(ctx, scope, sqltx, filter, lockForUpdate, columns)
}

func (repo *Repository[T]) get(ctx context.Context, scope otel.Scope, sess session, filter dto.FilterGroup, lock string, columns []string) (T, error) {
	var model T

	where, args := repo.BuildWhereClause(filter)
	query := repo.selectQuery(columns, where, "LIMIT 1", lock)

	err := repo.prepared(ctx, scope, sess, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &model, args)
	})
	if errors.Is(err, sql.ErrNoRows) || IsInvalidText(err) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.newScope(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	query := repo.selectQuery(columns, where, repo.ordering(params), repo.pagination(params, args))

	models := []T{}

	err := repo.prepared(ctx, scope, repo.db.Read, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args)
	})
	if err != nil {
		return models, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

// GetAllForUpdateTx locks every matching row until the transaction ends.
func (repo *Repository[T]) GetAllForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.newScope(ctx, "GetAllForUpdateTx")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return nil, errRequiredFilter
	}

	query := repo.selectQuery(columns, where, lockForUpdate)

	models := []T{}

	err := repo.prepared(ctx, scope, sqltx, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args)
	})
	if err != nil {
		return models, repo.fail(scope, "lock data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.newScope(ctx, "Count")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)

	count := 0

	err := repo.prepared(ctx, scope, repo.db.Read, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args)
	})
	if err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.newScope(ctx, "Update")
	defer scope.End()

	return repo.update(ctx, scope, repo.db.Write, mod, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.newScope(ctx, "UpdateTx")
	defer scope.End()

	return repo.update(ctx, scope, sqltx, mod, filter)
}

func (repo *Repository[T]) update(ctx context.Context, scope otel.Scope, sess session, mod map[string]any, filter dto.FilterGroup) error {
	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	query := repo.updateQuery(mod, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	maps.Copy(args, mod)

	if _, err := sess.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "update data", err)
	}

	return nil
}

func (repo *Repository[T]) prepared(ctx context.Context, scope otel.Scope, sess session, query string, run func(stmt *sqlx.NamedStmt) error) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := sess.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	return run(stmt)
}

// BuildWhereClause renders filter with a leading WHERE, or nothing for an empty group.
func (repo *Repository[T]) BuildWhereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return " WHERE " + where + " ", args
}

func (repo *Repository[T]) selectQuery(only []string, where string, tail ...string) string {
	selected := []string{}

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		selected = append(selected, col.expr())
	}

	parts := []string{"SELECT", strings.Join(selected, ", "), "FROM", repo.table}

	for _, part := range append([]string{repo.join, strings.TrimSpace(where)}, tail...) {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, " ")
}

func (repo *Repository[T]) insertQuery(suffix string) string {
	placeholders := make([]string, len(repo.insertColumns))
	for idx, col := range repo.insertColumns {
		placeholders[idx] = ":" + col
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		repo.table, strings.Join(repo.insertColumns, ", "), strings.Join(placeholders, ", "))

	if suffix != "" {
		query += " " + suffix
	}

	return query
}

func (repo *Repository[T]) updateQuery(mod map[string]any, where string) string {
	assignments := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}

	return fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), strings.TrimSpace(where))
}

// ordering only accepts the entity's own columns.
func (repo *Repository[T]) ordering(params dto.QueryParams) string {
	if params.SortBy == "" || params.SortDir == "" || !slices.Contains(repo.insertColumns, params.SortBy) {
		return ""
	}

	return fmt.Sprintf("ORDER BY %s %s", params.SortBy, params.SortDir)
}

func (repo *Repository[T]) pagination(params dto.QueryParams, args map[string]any) string {
	if params.Limit <= 0 {
		return ""
	}

	args[argLimit] = params.Limit

	if params.Page <= 0 {
		return "LIMIT :" + argLimit
	}

	args[argOffset] = params.Offset()

	return fmt.Sprintf("LIMIT :%s OFFSET :%s", argLimit, argOffset)
}

func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for idx := range reflectType.NumField() {
		field := reflectType.Field(idx)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, nestedInsert := getColumns(table, field.Type)
			columns = append(columns, nested...)
			insertColumns = append(insertColumns, nestedInsert...)

			continue
		}

		name := field.Tag.Get("db")
		if name == "" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" || owner == table {
			owner = table
			insertColumns = append(insertColumns, name)
		}

		if rename := field.Tag.Get("column"); rename != "" {
			columns = append(columns, column{name: rename, table: owner, alias: name})
		} else {
			columns = append(columns, column{name: name, table: owner})
		}
	}

	return columns, insertColumns
}
