package middleware

import (
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the last error a handler attached as an ErrorResponse
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
	}
}
