package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"studio/shared/constant"
	"studio/shared/dto"
	"studio/shared/model"
	"studio/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2030, time.January, 3, 9, 0, 0, 0, time.UTC)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: createdAt.Add(time.Hour),
		CreatedBy:  "user-1",
		ModifiedBy: "admin-1",
	})

	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, timezone.Format(createdAt.Add(time.Hour), constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "user-1", metadata.CreatedBy)
	assert.Equal(t, "admin-1", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		withDefaults bool
		expected     dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=start_time&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "start_time", SortDir: dto.SortDirAsc},
		},
		{
			name:         "defaults",
			withDefaults: true,
			expected:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults",
			expected: dto.QueryParams{},
		},
		{
			name:         "invalid numbers fall back",
			query:        "page=abc&limit=-3",
			withDefaults: true,
			expected:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit is capped",
			query:    "limit=5000",
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:     "unknown sort direction is ignored",
			query:    "sort_by=name&sort_dir=sideways",
			expected: dto.QueryParams{SortBy: "name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/v1/bookings/?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(request, tt.withDefaults)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, dto.QueryParams{Page: 3, Limit: 10}.Offset())
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name   string
		filter dto.Filter
		where  string
		args   map[string]any
	}{
		{
			name:   "eq with table",
			filter: dto.Filter{Field: "status", Value: "BOOKED", Operator: dto.FilterOperatorEq, Table: "bookings"},
			where:  "bookings.status = :status",
			args:   map[string]any{"status": "BOOKED"},
		},
		{
			name:   "less with custom arg name",
			filter: dto.Filter{ArgName: "window_end", Field: "start_time", Value: 10, Operator: dto.FilterOperatorLess},
			where:  "start_time < :window_end",
			args:   map[string]any{"window_end": 10},
		},
		{
			name:   "greater or equal",
			filter: dto.Filter{Field: "slot_date", Value: "2030-01-03", Operator: dto.FilterOperatorGreaterEq},
			where:  "slot_date >= :slot_date",
			args:   map[string]any{"slot_date": "2030-01-03"},
		},
		{
			name:   "like",
			filter: dto.Filter{Field: "category", Value: "relax", Operator: dto.FilterOperatorLike},
			where:  "LOWER(category) LIKE LOWER(:category)",
			args:   map[string]any{"category": "%relax%"},
		},
		{
			name:   "in",
			filter: dto.Filter{Field: "status", Value: []string{"BOOKED", "COMPLETED"}, Operator: dto.FilterOperatorIn},
			where:  "status IN (:status_0, :status_1)",
			args:   map[string]any{"status_0": "BOOKED", "status_1": "COMPLETED"},
		},
		{
			name:   "empty in matches nothing",
			filter: dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			where:  "FALSE",
			args:   map[string]any{},
		},
		{
			name:   "is null",
			filter: dto.Filter{Field: "user_id", Operator: dto.FilterIsNull},
			where:  "user_id IS NULL",
			args:   map[string]any{},
		},
		{
			name:   "unknown operator",
			filter: dto.Filter{Field: "user_id", Operator: "between"},
			where:  "",
			args:   map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "client_id", Value: "c-1", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "booked", Field: "status", Value: "BOOKED", Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "done", Field: "status", Value: "COMPLETED", Operator: dto.FilterOperatorEq},
				},
			},
			"ignored",
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(client_id = :client_id AND (status = :booked OR status = :done))", where)
	assert.Equal(t, map[string]any{"client_id": "c-1", "booked": "BOOKED", "done": "COMPLETED"}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
