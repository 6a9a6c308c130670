package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultPageSize is applied when the limit query parameter is absent.
	DefaultPageSize = 20
	// MaxPageSize is the upper bound a caller can request; larger values are clamped.
	MaxPageSize = 100
)

// ParsePagination parses and validates the page and limit query parameters.
// Page defaults to 1. Limit defaults to DefaultPageSize and is clamped into
// [1, MaxPageSize] rather than rejected, so forward-compatible clients asking
// for oversized pages still get a valid response.
func ParsePagination(c *gin.Context) (page, limit int, err error) {
	pageStr := c.DefaultQuery("page", "1")
	page, err = strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, 0, fmt.Errorf("invalid page parameter: must be a positive integer")
	}

	limitStr := c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize))
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be a positive integer")
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	return page, limit, nil
}

// NewMeta builds pagination metadata from the real row count, never an estimate.
func NewMeta(page, limit int, total int64) Meta {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset converts a page/limit pair into a SQL offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}
