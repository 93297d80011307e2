package service

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redirectflow-go/internal/model"
	"redirectflow-go/internal/repository"
)

func TestRecordAccessIsEventuallyWritten(t *testing.T) {
	setupTestDB(t)

	RecordAccess(model.AccessLog{
		RedirectID: 42,
		ParamID:    "visitor-1",
		IPAddress:  "198.51.100.7",
		UserAgent:  "Mozilla/5.0",
	})
	WaitForAccessLogs()

	var logs []model.AccessLog
	require.NoError(t, repository.DB.Where("redirect_id = ?", 42).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "visitor-1", logs[0].ParamID)
	assert.Equal(t, "198.51.100.7", logs[0].IPAddress)
}

func TestRecordAccessSyncMode(t *testing.T) {
	setupTestDB(t)
	viper.Set("access_log.sync", true)
	t.Cleanup(func() { viper.Set("access_log.sync", false) })

	RecordAccess(model.AccessLog{RedirectID: 7, ParamID: "p"})

	var count int64
	repository.DB.Model(&model.AccessLog{}).Where("redirect_id = ?", 7).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestListAccessLogsNewestFirst(t *testing.T) {
	setupTestDB(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		require.NoError(t, repository.DB.Create(&model.AccessLog{
			RedirectID: 1,
			ParamID:    "p",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	logs, err := ListAccessLogs(1, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.True(t, logs[0].CreatedAt.After(logs[1].CreatedAt))
}

func TestGetRedirectStats(t *testing.T) {
	setupTestDB(t)

	now := time.Now()
	entries := []model.AccessLog{
		{RedirectID: 1, ParamID: "user-a", CreatedAt: now},
		{RedirectID: 1, ParamID: "user-a", CreatedAt: now},
		{RedirectID: 1, ParamID: "", CreatedAt: now},
		{RedirectID: 1, ParamID: "user-b", CreatedAt: now.Add(-48 * time.Hour)}, // outside window
		{RedirectID: 2, ParamID: "user-c", CreatedAt: now},                      // other redirect
	}
	for i := range entries {
		require.NoError(t, repository.DB.Create(&entries[i]).Error)
	}

	since := now.Add(-24 * time.Hour)

	stats, err := GetRedirectStats(1, since)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalCount)
	assert.EqualValues(t, 1, stats.UniqueCount)

	// the client-side scan must agree with the SQL aggregate
	scanned, err := scanRedirectStats(1, since)
	require.NoError(t, err)
	assert.Equal(t, stats.TotalCount, scanned.TotalCount)
	assert.Equal(t, stats.UniqueCount, scanned.UniqueCount)
}
