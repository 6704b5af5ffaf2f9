package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/ssma/pkg/pagination"
	"github.com/JaimeStill/ssma/pkg/query"
)

var cfg = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		in         pagination.PageRequest
		page, size int
	}{
		{"defaults", pagination.PageRequest{}, 1, 20},
		{"negative page", pagination.PageRequest{Page: -3, PageSize: 10}, 1, 10},
		{"clamped size", pagination.PageRequest{Page: 4, PageSize: 500}, 4, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.in
			req.Normalize(cfg)
			assert.Equal(t, tt.page, req.Page)
			assert.Equal(t, tt.size, req.PageSize)
		})
	}

	req := pagination.PageRequest{Page: 3, PageSize: 25}
	assert.Equal(t, 50, req.Offset())
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{
		"page":      {"2"},
		"page_size": {"abc"},
		"search":    {"nr-35"},
		"sort":      {"-expires_on,employee_name"},
	}

	req := pagination.PageRequestFromQuery(values, cfg)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 20, req.PageSize)
	require.NotNil(t, req.Search)
	assert.Equal(t, "nr-35", *req.Search)
	assert.Equal(t, pagination.SortFields{
		{Field: "expires_on", Descending: true},
		{Field: "employee_name"},
	}, req.Sort)

	empty := pagination.PageRequestFromQuery(url.Values{}, cfg)
	assert.Nil(t, empty.Search)
	assert.Empty(t, empty.Sort)
}

func TestSortFieldsJSON(t *testing.T) {
	var fromString pagination.PageRequest
	require.NoError(t, json.Unmarshal([]byte(`{"sort":"-issued_on"}`), &fromString))
	assert.Equal(t, pagination.SortFields{{Field: "issued_on", Descending: true}}, fromString.Sort)

	var fromArray pagination.PageRequest
	require.NoError(t, json.Unmarshal([]byte(`{"sort":[{"Field":"name","Descending":false}]}`), &fromArray))
	assert.Equal(t, pagination.SortFields{query.SortField{Field: "name"}}, fromArray.Sort)

	var bad pagination.PageRequest
	assert.Error(t, json.Unmarshal([]byte(`{"sort":42}`), &bad))
}

func TestNewPageResult(t *testing.T) {
	res := pagination.NewPageResult([]string{"a", "b"}, 45, 2, 20)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 45, res.Total)

	empty := pagination.NewPageResult[string](nil, 0, 1, 20)
	assert.Equal(t, 1, empty.TotalPages)
	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"data":[]`)
}

func TestConfigFinalize(t *testing.T) {
	var c pagination.Config
	require.NoError(t, c.Finalize(""))
	assert.Equal(t, cfg, c)

	t.Setenv("TEST_PAGINATION_MAX_PAGE_SIZE", "10")
	over := pagination.Config{DefaultPageSize: 20}
	assert.ErrorContains(t, over.Finalize("TEST_PAGINATION"), "cannot exceed")
}
