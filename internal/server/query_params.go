package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/rahvarz/bazar/pkg/db/pagination"
)

// idParam parses a snowflake path parameter. A zero or malformed id
// aborts the request with a not-found style validation error.
func idParam(c *gin.Context, name string) (int64, bool) {
	raw := strings.TrimSpace(c.Param(name))
	parsed, err := snowflake.ParseString(raw)
	if err != nil || parsed == 0 {
		AbortWithError(c, errInvalidRequest)
		return 0, false
	}
	return parsed.Int64(), true
}

func pageQuery(c *gin.Context) (pagination.Pagination, bool) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, errInvalidRequest)
		return page, false
	}
	page.Normalize()
	return page, true
}

// orderParams reads ordering either from the /order/:column/:direction
// path segments or from order_by/direction query parameters. Path
// segments win when both are present.
func orderParams(c *gin.Context) (column, direction string) {
	column = strings.TrimSpace(c.Param("column"))
	direction = strings.TrimSpace(c.Param("direction"))
	if column == "" {
		column = strings.TrimSpace(c.Query("order_by"))
	}
	if direction == "" {
		direction = strings.TrimSpace(c.Query("direction"))
	}
	return column, direction
}
