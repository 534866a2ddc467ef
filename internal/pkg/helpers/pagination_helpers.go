package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deniz/examhub/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// normalizePageSize clamps a requested page size into the allowed range.
func normalizePageSize(size int) int {
	if size <= 0 || size > MaxPageSize {
		return DefaultPageSize
	}
	return size
}

// CalculateOffsetLimit converts a 1-based page number into the offset and
// limit used by SQL queries.
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	limit = normalizePageSize(size)
	if page < 1 {
		page = DefaultPage
	}
	return uint64((page - 1) * limit), limit
}

// NewPaginationInfo builds the pagination block for list responses. The
// current page is clamped to the last page so a client cannot report a page
// past the end. page is 1-based.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	var totalPages int
	switch {
	case totalItems > 0:
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	case page == 1:
		totalPages = 1
	}

	current := page
	if totalPages > 0 && current > totalPages {
		current = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: current,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  int(totalItems),
	}
}

// ParsePaginationParams reads page and size from the query string, falling
// back to defaults on anything unparsable or out of range.
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	size, err = strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	return page, size
}
