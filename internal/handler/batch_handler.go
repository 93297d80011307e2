package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"redirectflow-go/internal/service"
	"redirectflow-go/pkg/logging"
)

// DailySummaryHandler serves GET /api/batch/daily-summary, the external
// trigger for the summary job. It authenticates with a shared bearer
// secret rather than the admin session so schedulers can call it. An
// unset secret rejects every call. ?test=true sends regardless of
// counts or prior deliveries and skips the sent markers.
func DailySummaryHandler(c *gin.Context) {
	secret := viper.GetString("batch.secret")
	auth := c.GetHeader("Authorization")
	if secret == "" || auth != "Bearer "+secret {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	isTest := strings.EqualFold(c.Query("test"), "true")

	if err := service.DailySummary(time.Now(), isTest); err != nil {
		logging.Logger.Error("daily summary batch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process batch"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
