package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"redirectflow-go/internal/model"
	"redirectflow-go/internal/service"
)

// ResolveHandler serves GET /r/:slug. A hit records one access-log entry
// without waiting for the write and answers 302; a miss answers a JSON
// 404 so scanners get a stable machine-readable body.
func ResolveHandler(c *gin.Context) {
	slug := c.Param("slug")

	redirect, ok := service.ResolveRedirect(slug)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Redirect not found"})
		return
	}

	paramID := c.Query("id")
	if paramID == "" {
		paramID = c.Query("ID")
	}

	service.RecordAccess(model.AccessLog{
		RedirectID: redirect.ID,
		ParamID:    paramID,
		IPAddress:  clientIP(c),
		UserAgent:  userAgent(c),
	})

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Redirect(http.StatusFound, redirect.TargetURL)
}

// clientIP prefers the edge proxy's X-Forwarded-For chain, first hop.
func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func userAgent(c *gin.Context) string {
	if ua := c.GetHeader("User-Agent"); ua != "" {
		return ua
	}
	return "unknown"
}
