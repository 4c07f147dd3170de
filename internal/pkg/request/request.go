// Package request holds the parsing steps every handler repeats: path ids,
// JSON bodies with validation, and typed query parameters. Each helper writes
// the error response itself and reports false when the handler must return.
package request

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotelpms/internal/pkg/dates"
	"hotelpms/internal/pkg/response"
	"hotelpms/internal/pkg/validator"
)

func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}

func BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return false
	}
	return true
}

// QueryInt64 returns nil when the parameter is absent.
func QueryInt64(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "Invalid "+name)
		return nil, false
	}
	return &v, true
}

// QueryDate parses a YYYY-MM-DD parameter, nil when absent.
func QueryDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := dates.Parse(raw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Invalid "+name+", expected YYYY-MM-DD")
		return nil, false
	}
	return &d, true
}

// RequireDate is QueryDate for mandatory parameters.
func RequireDate(c *gin.Context, name string) (time.Time, bool) {
	d, ok := QueryDate(c, name)
	if !ok {
		return time.Time{}, false
	}
	if d == nil {
		response.Error(c, http.StatusBadRequest, "MISSING_PARAM", name+" is required")
		return time.Time{}, false
	}
	return *d, true
}

func QueryBool(c *gin.Context, name string) *bool {
	switch c.Query(name) {
	case "1", "true", "yes":
		v := true
		return &v
	case "0", "false", "no":
		v := false
		return &v
	}
	return nil
}

// Page reads page/per_page with defaults 1 and 20, per_page capped at 100.
func Page(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
