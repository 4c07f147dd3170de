package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelpms/internal/pkg/apperror"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Paginated wraps a page of items with its paging metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, perPage int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"meta": gin.H{
			"total":    total,
			"page":     page,
			"per_page": perPage,
		},
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError renders a service error. Typed domain errors keep their code and
// status; anything else is logged by the error middleware and hidden behind a
// generic 500.
func FromError(c *gin.Context, err error) {
	if appErr, ok := apperror.As(err); ok {
		Error(c, appErr.Kind.HTTPStatus(), appErr.Code, appErr.Message)
		return
	}
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// WithData renders err like FromError but also attaches a payload, used when a
// rejected operation still returns the current state of the resource.
func WithData(c *gin.Context, err error, data any) {
	appErr, ok := apperror.As(err)
	if !ok {
		FromError(c, err)
		return
	}
	c.JSON(appErr.Kind.HTTPStatus(), gin.H{
		"success": false,
		"data":    data,
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
