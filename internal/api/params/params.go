// Package params reads path and query parameters shared by the handlers.
package params

import (
	"strconv"
	"strings"

	"artmarket-admin/internal/apperr"

	"github.com/gin-gonic/gin"
)

// ID parses the numeric path parameter name.
func ID(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, &apperr.Error{Kind: apperr.KindValidation, Field: name, Message: "Invalid " + name}
	}
	return uint(v), nil
}

// Page reads limit/offset, or page/limit when page is given (1-based).
func Page(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit"))
	offset, _ = strconv.Atoi(c.Query("offset"))
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 && limit > 0 {
		offset = (page - 1) * limit
	}
	return limit, offset
}

// Bool returns nil when the query parameter is absent or unparseable.
func Bool(c *gin.Context, name string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(name)))
	if err != nil {
		return nil
	}
	return &v
}
