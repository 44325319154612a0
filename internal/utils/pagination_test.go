package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		query   string
		page    int
		limit   int
		offset  int
		wantErr bool
	}{
		{name: "defaults", query: "", page: 1, limit: 20, offset: 0},
		{name: "explicit", query: "page=3&limit=10", page: 3, limit: 10, offset: 20},
		{name: "empty values", query: "page=&limit=", page: 1, limit: 20, offset: 0},
		{name: "limit above maximum", query: "page=2&limit=1000", page: 2, limit: 20, offset: 20},
		{name: "page zero", query: "page=0&limit=5", wantErr: true},
		{name: "negative limit", query: "limit=-3", wantErr: true},
		{name: "garbage page", query: "page=abc", wantErr: true},
		{name: "garbage limit", query: "limit=xyz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/api/tasks?"+tt.query, nil)

			params, err := GetPaginationParams(c)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPagination)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.limit, params.Limit)
			assert.Equal(t, tt.offset, params.Offset)
		})
	}
}

func TestNewPaginationResponse(t *testing.T) {
	params := NewPaginationParams(1, 10)

	assert.Equal(t, 0, NewPaginationResponse(params, 0).TotalPages)
	assert.Equal(t, 1, NewPaginationResponse(params, 10).TotalPages)
	assert.Equal(t, 2, NewPaginationResponse(params, 11).TotalPages)
}
