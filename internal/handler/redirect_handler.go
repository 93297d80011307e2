package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"redirectflow-go/internal/apperrors"
	"redirectflow-go/internal/dto"
	"redirectflow-go/internal/service"
	"redirectflow-go/response"
)

func CreateRedirectHandler(c *gin.Context) {
	var req dto.CreateRedirectRequest
	if !bindJSON(c, &req) {
		return
	}

	redirect, err := service.CreateRedirect(req)
	if err != nil {
		zap.L().Warn("Redirect creation failed",
			zap.Error(err),
			zap.String("slug", req.Slug),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(redirect, "Redirect created"))
}

func GetRedirectHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	redirect, err := service.GetRedirect(id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(redirect, "success"))
}

// ListRedirectsHandler pages through redirects, optionally filtered by
// slug substring.
func ListRedirectsHandler(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	sizeStr := c.DefaultQuery("size", "10")
	slug := c.Query("slug")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		_ = c.Error(apperrors.InvalidRequestError("page must be a positive integer"))
		return
	}

	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 || size > 100 {
		_ = c.Error(apperrors.InvalidRequestError("size must be between 1 and 100"))
		return
	}

	pageResp, err := service.ListRedirects(page, size, slug)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(pageResp, "success"))
}

func UpdateRedirectHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateRedirectRequest
	if !bindJSON(c, &req) {
		return
	}

	redirect, err := service.UpdateRedirect(id, req)
	if err != nil {
		zap.L().Warn("Redirect update failed",
			zap.Error(err),
			zap.Uint("id", id),
			zap.String("target_url", req.TargetURL),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(redirect, "Redirect updated"))
}

func DeleteRedirectHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := service.DeleteRedirect(id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK("", "Redirect deleted"))
}

// ListAccessLogsHandler returns the latest access-log rows for one
// redirect, newest first.
func ListAccessLogsHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	logs, err := service.ListAccessLogs(id, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(logs, "success"))
}

// GetRedirectStatsHandler computes total and unique hits over the last
// N days (default 1).
func GetRedirectStatsHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "1"))
	if err != nil || days < 1 || days > 365 {
		_ = c.Error(apperrors.InvalidRequestError("days must be between 1 and 365"))
		return
	}

	since := time.Now().AddDate(0, 0, -days)
	stats, err := service.GetRedirectStats(id, since)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(stats, "success"))
}

// ExportAccessLogsHandler streams the latest access logs as a CSV
// download. The byte-order mark keeps the Japanese headers readable when
// the file is opened in Excel.
func ExportAccessLogsHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	redirect, err := service.GetRedirect(id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	logs, err := service.ListAccessLogs(id, 1000)
	if err != nil {
		_ = c.Error(err)
		return
	}

	filename := fmt.Sprintf("logs_%s_%s.csv", redirect.Slug, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if _, err := c.Writer.WriteString("\uFEFF"); err != nil {
		zap.L().Error("CSV export write failed", zap.Error(err))
		return
	}

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"日時", "IDパラメータ", "IPアドレス", "UserAgent"})
	for _, l := range logs {
		_ = w.Write([]string{
			l.CreatedAt.Format("2006-01-02 15:04:05"),
			l.ParamID,
			l.IPAddress,
			l.UserAgent,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		zap.L().Error("CSV export write failed", zap.Error(err))
	}
}
