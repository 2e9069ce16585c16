package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parsePagination reads page/page_size query params with the shared
// defaults. Out-of-range values fall back rather than erroring.
func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
