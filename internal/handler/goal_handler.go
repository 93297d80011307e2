package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"redirectflow-go/internal/apperrors"
	"redirectflow-go/internal/dto"
	"redirectflow-go/internal/service"
	"redirectflow-go/pkg/utils"
	"redirectflow-go/response"
)

// GetGoalHandler returns the targets for one YYYY-MM month. Months that
// were never configured come back with the defaults.
func GetGoalHandler(c *gin.Context) {
	month := c.Param("month")
	if err := utils.ValidateMonth(month); err != nil {
		_ = c.Error(apperrors.InvalidRequestError("month must be YYYY-MM"))
		return
	}

	goal, err := service.GetGoal(month)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(goal, "success"))
}

func UpsertGoalHandler(c *gin.Context) {
	month := c.Param("month")
	if err := utils.ValidateMonth(month); err != nil {
		_ = c.Error(apperrors.InvalidRequestError("month must be YYYY-MM"))
		return
	}

	var req dto.UpsertGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := service.UpsertGoal(month, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(goal, "Goal saved"))
}
