// package utils provides utility functions to support various operations within the application.
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"skillswap-web/internal/schemas"
)

// DefaultPageSize is the number of members shown per home page.
const DefaultPageSize = 6

// ParsePaginationParams extracts the 'offset' and 'limit' parameters from the request's query parameters.
// It provides default values and ensures that the returned values are non-negative.
func ParsePaginationParams(c *gin.Context) (int, int) {
	offset, err := strconv.Atoi(c.DefaultQuery(OffsetParamKey, "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	limit, err := strconv.Atoi(c.DefaultQuery(LimitParamKey, strconv.Itoa(DefaultPageSize)))
	if err != nil || limit <= 0 {
		limit = DefaultPageSize
	}

	return offset, limit
}

// Paginate returns the window [offset, offset+limit) of records and the matching pagination descriptor.
func Paginate[T any](records []T, offset, limit int) ([]T, schemas.Pagination) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if offset > len(records) {
		offset = len(records)
	}

	// Compared before adding so a huge limit cannot overflow.
	end := len(records)
	if limit < end-offset {
		end = offset + limit
	}

	subset := make([]T, end-offset)
	copy(subset, records[offset:end])

	return subset, schemas.Pagination{
		Offset:  offset,
		Limit:   limit,
		Records: len(records),
	}
}
