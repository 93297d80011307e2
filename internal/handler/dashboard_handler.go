package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"redirectflow-go/internal/apperrors"
	"redirectflow-go/internal/service"
	"redirectflow-go/pkg/utils"
	"redirectflow-go/response"
)

// GetDashboardHandler aggregates the month the team is looking at:
// progress against the goal, per-member stats and recent completions.
// month defaults to the current month, member narrows the summary.
func GetDashboardHandler(c *gin.Context) {
	month := c.DefaultQuery("month", service.CurrentMonth(time.Now()))
	if err := utils.ValidateMonth(month); err != nil {
		_ = c.Error(apperrors.InvalidRequestError("month must be YYYY-MM"))
		return
	}

	var memberID uint
	if s := c.Query("member"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			_ = c.Error(apperrors.InvalidRequestError("member must be an integer id"))
			return
		}
		memberID = uint(id)
	}

	data, err := service.GetDashboard(month, memberID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(data, "success"))
}

// GetRankingHandler orders members by completed revenue for the current
// month or year.
func GetRankingHandler(c *gin.Context) {
	period := c.DefaultQuery("period", "monthly")
	if period != "monthly" && period != "yearly" {
		_ = c.Error(apperrors.InvalidRequestError("period must be monthly or yearly"))
		return
	}

	ranking, err := service.GetRanking(period, time.Now())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(ranking, "success"))
}
