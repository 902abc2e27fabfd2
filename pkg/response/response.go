package response

import (
	"github.com/gin-gonic/gin"

	"github.com/openpaths/reentry-api/pkg/apierror"
)

// JSON writes the payload under a named field, e.g. {"services": [...]}.
func JSON(c *gin.Context, status int, key string, data any) {
	c.JSON(status, gin.H{key: data})
}

// Err serializes a taxonomy error. The body always carries "error" with
// the human-readable message; VALIDATION_ERROR also carries "details".
func Err(c *gin.Context, e *apierror.Error) {
	c.JSON(e.Status, body(e))
}

// AbortErr writes the error and stops the handler chain; used by
// middleware.
func AbortErr(c *gin.Context, e *apierror.Error) {
	c.AbortWithStatusJSON(e.Status, body(e))
}

func body(e *apierror.Error) gin.H {
	b := gin.H{"error": e.Message, "code": e.Code}
	if len(e.Fields) > 0 {
		b["details"] = e.Fields
	}
	return b
}
