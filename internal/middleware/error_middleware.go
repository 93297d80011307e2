package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"redirectflow-go/internal/apperrors"
	"redirectflow-go/response"
)

// GlobalErrorMiddleware turns AppErrors collected on the context into the
// standard error envelope.
func GlobalErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				var appErr *apperrors.AppError
				if errors.As(err.Err, &appErr) {
					c.AbortWithStatusJSON(appErr.Code, response.ErrorFromAppError(appErr))
					return
				}
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error("Internal server error"))
			return
		}
	}
}
