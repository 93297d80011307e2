package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redirectflow-go/internal/dto"
	"redirectflow-go/internal/model"
	"redirectflow-go/internal/repository"
	"redirectflow-go/internal/service"
)

func TestResolveHandlerRedirectsAndLogs(t *testing.T) {
	setupHandlerTest(t)
	r := testRouter()
	r.GET("/r/:slug", ResolveHandler)

	created, err := service.CreateRedirect(dto.CreateRedirectRequest{
		Slug:      "campaign",
		TargetURL: "https://example.com/landing",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/r/campaign?id=visitor-9", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.50, 10.0.0.1")
	req.Header.Set("User-Agent", "UnitTest/1.0")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://example.com/landing", rec.Header().Get("Location"))

	service.WaitForAccessLogs()

	var logs []model.AccessLog
	require.NoError(t, repository.DB.Where("redirect_id = ?", created.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "visitor-9", logs[0].ParamID)
	assert.Equal(t, "203.0.113.50", logs[0].IPAddress)
	assert.Equal(t, "UnitTest/1.0", logs[0].UserAgent)
}

func TestResolveHandlerUnknownSlug(t *testing.T) {
	setupHandlerTest(t)
	r := testRouter()
	r.GET("/r/:slug", ResolveHandler)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/r/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Redirect not found"}`, rec.Body.String())

	// a miss never writes a log row
	service.WaitForAccessLogs()
	var count int64
	repository.DB.Model(&model.AccessLog{}).Count(&count)
	assert.Zero(t, count)
}

func TestResolveHandlerDefaultsMissingHeaders(t *testing.T) {
	setupHandlerTest(t)
	r := testRouter()
	r.GET("/r/:slug", ResolveHandler)

	created, err := service.CreateRedirect(dto.CreateRedirectRequest{
		Slug:      "bare",
		TargetURL: "https://example.com",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/r/bare", nil)
	req.Header.Del("User-Agent")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)

	service.WaitForAccessLogs()

	var entry model.AccessLog
	require.NoError(t, repository.DB.Where("redirect_id = ?", created.ID).First(&entry).Error)
	assert.Equal(t, "unknown", entry.UserAgent)
	assert.Empty(t, entry.ParamID)
}
