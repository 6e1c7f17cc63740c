package dto_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"floorplan/shared/constant"
	"floorplan/shared/dto"
	"floorplan/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2026, 10, 18, 19, 30, 0, 0, time.UTC)

	t.Run("modified row", func(t *testing.T) {
		metadata := &dto.Metadata{}
		metadata.FromModel(model.Metadata{
			CreatedAt:  createdAt,
			ModifiedAt: modifiedAt,
			CreatedBy:  "maria",
			ModifiedBy: "jorge",
		})

		assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
		assert.Equal(t, "maria", metadata.CreatedBy)
		assert.Equal(t, modifiedAt.Format(constant.DateFormat), metadata.ModifiedAt)
		assert.Equal(t, "jorge", metadata.ModifiedBy)
	})

	t.Run("untouched row omits modification", func(t *testing.T) {
		metadata := &dto.Metadata{}
		metadata.FromModel(model.NewMetadata("maria", createdAt))

		assert.Equal(t, "maria", metadata.CreatedBy)
		assert.Empty(t, metadata.ModifiedAt)
		assert.Empty(t, metadata.ModifiedBy)
	})
}

func TestQueryParams_FromRequest(t *testing.T) {
	defaults := dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit}

	tests := []struct {
		name     string
		query    url.Values
		paged    bool
		expected dto.QueryParams
	}{
		{
			name:     "explicit values",
			query:    url.Values{"page": {"2"}, "limit": {"20"}, "sort_by": {"reservation_date"}, "sort_dir": {"asc"}},
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "reservation_date", SortDir: dto.SortDirAsc},
		},
		{name: "unpaged listing keeps zero values", query: url.Values{}},
		{name: "paged listing falls back to defaults", query: url.Values{}, paged: true, expected: defaults},
		{name: "non numeric page", query: url.Values{"page": {"first"}}, paged: true, expected: defaults},
		{name: "negative page", query: url.Values{"page": {"-1"}}, paged: true, expected: defaults},
		{name: "zero page", query: url.Values{"page": {"0"}}, paged: true, expected: defaults},
		{name: "negative limit", query: url.Values{"limit": {"-10"}}, paged: true, expected: defaults},
		{name: "unknown sort direction is dropped", query: url.Values{"sort_dir": {"sideways"}}},
		{
			name:     "limit above the cap",
			query:    url.Values{"limit": {"5000"}},
			paged:    true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.MaxValueLimit},
		},
		{
			name:     "partial values with defaults",
			query:    url.Values{"page": {"3"}, "sort_by": {"table_code"}},
			paged:    true,
			expected: dto.QueryParams{Page: 3, Limit: constant.DefaultValueLimit, SortBy: "table_code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/reservations?"+tt.query.Encode(), nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.paged)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_RestrictSort(t *testing.T) {
	q := dto.QueryParams{SortBy: "code; DROP TABLE tables", SortDir: dto.SortDirDesc}
	q.RestrictSort("reservation_date", "reservation_date", "reservation_time")

	assert.Equal(t, "reservation_date", q.SortBy)
	assert.Equal(t, dto.SortDirDesc, q.SortDir)

	q = dto.QueryParams{SortBy: "reservation_time"}
	q.RestrictSort("reservation_date", "reservation_date", "reservation_time")

	assert.Equal(t, "reservation_time", q.SortBy)
	assert.Equal(t, dto.SortDirAsc, q.SortDir)
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "table_code", Value: "T3", Operator: dto.FilterOperatorEq, Table: "reservations"},
			dto.Filter{ArgName: "start", Field: "reservation_time", Value: "17:00:00", Operator: dto.FilterOperatorGreaterEq},
			dto.Filter{ArgName: "end", Field: "reservation_time", Value: "23:59:59", Operator: dto.FilterOperatorLess},
			dto.Filter{Field: "status", Value: []string{"reserved", "occupied"}, Operator: dto.FilterOperatorIn},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(reservations.table_code = :table_code AND reservation_time >= :start AND reservation_time < :end AND status IN (:status_0, :status_1))", where)
	assert.Equal(t, map[string]any{
		"table_code": "T3",
		"start":      "17:00:00",
		"end":        "23:59:59",
		"status_0":   "reserved",
		"status_1":   "occupied",
	}, args)
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, (&dto.QueryParams{}).Offset())
	assert.Equal(t, 0, (&dto.QueryParams{Page: 1, Limit: 10}).Offset())
	assert.Equal(t, 40, (&dto.QueryParams{Page: 3, Limit: 20}).Offset())
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "like wraps the value",
			filter:    dto.Filter{Field: "customer_name", Value: "ana", Operator: dto.FilterOperatorLike, Table: "reservations"},
			wantWhere: "LOWER(reservations.customer_name) LIKE LOWER(:customer_name)",
			wantArgs:  map[string]any{"customer_name": "%ana%"},
		},
		{
			name:      "not equal",
			filter:    dto.Filter{Field: "status", Value: "cancelled", Operator: dto.FilterOperatorNotEq},
			wantWhere: "status != :status",
			wantArgs:  map[string]any{"status": "cancelled"},
		},
		{
			name:      "in with empty slice matches nothing",
			filter:    dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "in with scalar binds a single value",
			filter:    dto.Filter{Field: "zone", Value: "terrace", Operator: dto.FilterOperatorIn},
			wantWhere: "zone = :zone",
			wantArgs:  map[string]any{"zone": "terrace"},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "zone", Value: "terrace", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_SkipsEmptyClauses(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []any{
			dto.Filter{Field: "zone", Value: "terrace", Operator: "between"},
			dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd},
			dto.Filter{Field: "zone", Value: "interior", Operator: dto.FilterOperatorEq},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(zone = :zone)", where)
	assert.Equal(t, map[string]any{"zone": "interior"}, args)
}
