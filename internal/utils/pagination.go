package utils

import (
	"strconv"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/constants"
	"github.com/gin-gonic/gin"
)

// PaginationParams holds the pagination parameters. A zero Limit means "no limit".
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// NewPaginationParams normalizes a page/limit pair into bounded parameters.
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

// GetPaginationParams extracts and validates pagination parameters from the
// request. Without page and limit the whole collection is returned.
func GetPaginationParams(c *gin.Context) PaginationParams {
	if c.Query("page") == "" && c.Query("limit") == "" {
		return PaginationParams{}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	return NewPaginationParams(page, limit)
}
