package handler

import (
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"redirectflow-go/internal/apperrors"
)

// bindJSON binds the request body into req and, on validation failure,
// surfaces the field's msg tag as the error message. req must be a
// pointer to a struct.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)

		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			t := reflect.TypeOf(req).Elem()
			for _, e := range validationErrs {
				field, ok := t.FieldByName(e.Field())
				if !ok {
					continue
				}
				if customMsg := field.Tag.Get("msg"); customMsg != "" {
					_ = c.Error(apperrors.InvalidRequestError(customMsg))
					return false
				}
			}
		}

		_ = c.Error(apperrors.InvalidRequestErrorDefault())
		return false
	}
	return true
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		_ = c.Error(apperrors.InvalidRequestError("invalid id"))
		return 0, false
	}
	return uint(id), true
}
