package utils

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rahafha1/project-manager-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ErrInvalidPagination reports a page or limit that is not a positive integer.
var ErrInvalidPagination = errors.New("page and limit must be positive integers")

// GetPaginationParams extracts pagination parameters from the request.
// Absent values take defaults and an oversized limit is clamped, but a
// value that is not a positive integer is an error.
func GetPaginationParams(c *gin.Context) (PaginationParams, error) {
	page, err := positiveQuery(c, "page", constants.MinPageSize)
	if err != nil {
		return PaginationParams{}, err
	}
	limit, err := positiveQuery(c, "limit", constants.DefaultPageSize)
	if err != nil {
		return PaginationParams{}, err
	}

	return NewPaginationParams(page, limit), nil
}

func positiveQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidPagination, key, raw)
	}
	return n, nil
}

// NewPaginationParams clamps page and limit into the allowed range.
func NewPaginationParams(page, limit int) PaginationParams {
	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// NewPaginationResponse builds the response metadata for a total row count.
func NewPaginationResponse(params PaginationParams, total int64) PaginationResponse {
	totalPages := int(total) / params.Limit
	if int(total)%params.Limit > 0 {
		totalPages++
	}

	return PaginationResponse{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
