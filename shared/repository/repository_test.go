package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"studio/infras/otel/mocks"
	"studio/shared/dto"
	"studio/shared/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointment struct {
	ID          string    `db:"id"`
	StartTime   time.Time `db:"start_time"`
	ServiceName string    `db:"service_name" table:"massage_services" column:"name"`
	model.Metadata
}

func (appointment) GetJoinQuery() string {
	return "JOIN massage_services ON massage_services.id = appointments.service_id"
}

func newAppointments() Repository[appointment] {
	return NewRepository[appointment]("appointment", "appointments", "id", nil, mocks.NewOtel())
}

func TestNewRepository_Columns(t *testing.T) {
	repo := newAppointments()

	assert.Equal(t,
		[]string{"id", "start_time", "created_at", "modified_at", "created_by", "modified_by"},
		repo.insertColumns,
	)
	assert.Equal(t, "JOIN massage_services ON massage_services.id = appointments.service_id", repo.join)
	assert.Equal(t, "massage_services.name AS service_name", repo.columns[2].expr())
}

func TestSelectQuery(t *testing.T) {
	repo := newAppointments()

	where, args := repo.BuildWhereClause(dto.FilterGroup{
		Filters: []any{dto.Filter{Field: "id", Value: "a-1", Operator: dto.FilterOperatorEq, Table: "appointments"}},
	})

	query := repo.selectQuery([]string{"id", "start_time"}, where, "LIMIT 1", lockForUpdate)

	assert.Equal(t,
		"SELECT appointments.id, appointments.start_time FROM appointments "+
			"JOIN massage_services ON massage_services.id = appointments.service_id "+
			"WHERE (appointments.id = :id) LIMIT 1 FOR UPDATE",
		query,
	)
	assert.Equal(t, map[string]any{"id": "a-1"}, args)
}

func TestBuildWhereClause_Empty(t *testing.T) {
	repo := newAppointments()

	where, args := repo.BuildWhereClause(dto.FilterGroup{})

	assert.Empty(t, where)
	assert.NotNil(t, args)
}

func TestInsertQuery(t *testing.T) {
	repo := newAppointments()

	assert.Equal(t,
		"INSERT INTO appointments (id, start_time, created_at, modified_at, created_by, modified_by) "+
			"VALUES (:id, :start_time, :created_at, :modified_at, :created_by, :modified_by) ON CONFLICT DO NOTHING",
		repo.insertQuery(onConflictDoNothing),
	)
}

func TestUpdateQuery_SortsAssignments(t *testing.T) {
	repo := newAppointments()

	query := repo.updateQuery(map[string]any{"status": "CANCELED", "modified_by": "u-1"}, " WHERE (id = :id) ")

	assert.Equal(t, "UPDATE appointments SET modified_by = :modified_by, status = :status WHERE (id = :id)", query)
}

func TestOrderingAndPagination(t *testing.T) {
	repo := newAppointments()

	assert.Equal(t, "ORDER BY start_time ASC", repo.ordering(dto.QueryParams{SortBy: "start_time", SortDir: dto.SortDirAsc}))
	assert.Empty(t, repo.ordering(dto.QueryParams{SortBy: "service_name", SortDir: dto.SortDirAsc}))
	assert.Empty(t, repo.ordering(dto.QueryParams{SortBy: "start_time; DROP TABLE appointments", SortDir: dto.SortDirAsc}))

	args := map[string]any{}
	assert.Equal(t, "LIMIT :limit OFFSET :offset", repo.pagination(dto.QueryParams{Page: 3, Limit: 10}, args))
	assert.Equal(t, map[string]any{"limit": 10, "offset": 20}, args)

	args = map[string]any{}
	assert.Equal(t, "LIMIT :limit", repo.pagination(dto.QueryParams{Limit: 5}, args))
	assert.Empty(t, repo.pagination(dto.QueryParams{}, map[string]any{}))
}

type failingSession struct {
	err error
}

func (f failingSession) PrepareNamedContext(context.Context, string) (*sqlx.NamedStmt, error) {
	return nil, f.err
}

func (f failingSession) NamedExecContext(context.Context, string, interface{}) (sql.Result, error) {
	return nil, f.err
}

func TestGet_MalformedValueMatchesNothing(t *testing.T) {
	repo := newAppointments()
	filter := dto.FilterGroup{Filters: []any{dto.Filter{Field: "id", Value: "abc", Operator: dto.FilterOperatorEq}}}

	ctx, scope := mocks.NewOtel().NewScope(context.Background(), "test", "test.get")

	res, err := repo.get(ctx, scope, failingSession{err: &pq.Error{Code: "22P02"}}, filter, lockNone, nil)
	require.NoError(t, err)
	assert.Empty(t, res.ID)

	_, err = repo.get(ctx, scope, failingSession{err: errors.New("connection refused")}, filter, lockNone, nil)
	assert.Error(t, err)
}
