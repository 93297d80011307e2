package service

import (
	"sync"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"redirectflow-go/internal/model"
	"redirectflow-go/internal/repository"
	"redirectflow-go/pkg/logging"
)

const accessLogQueueSize = 1024

var (
	accessLogQueue   chan model.AccessLog
	accessLogPending sync.WaitGroup
	accessLogOnce    sync.Once
)

// RecordAccess schedules the write of one access-log row without making
// the redirect response wait for it. Failures are logged and swallowed;
// the redirect must never be delayed or fail because of logging. Runtimes
// without a completion guarantee for detached work can set
// access_log.sync to fall back to a synchronous write.
func RecordAccess(entry model.AccessLog) {
	if viper.GetBool("access_log.sync") {
		writeAccessLog(entry)
		return
	}

	accessLogOnce.Do(startAccessLogWriter)

	accessLogPending.Add(1)
	select {
	case accessLogQueue <- entry:
	default:
		// queue saturated; drop rather than block the response path
		accessLogPending.Done()
		logging.Logger.Warn("access log queue full, dropping entry",
			zap.Uint("redirect_id", entry.RedirectID))
	}
}

func startAccessLogWriter() {
	accessLogQueue = make(chan model.AccessLog, accessLogQueueSize)
	go func() {
		for entry := range accessLogQueue {
			writeAccessLog(entry)
			accessLogPending.Done()
		}
	}()
}

func writeAccessLog(entry model.AccessLog) {
	if err := repository.DB.Create(&entry).Error; err != nil {
		logging.Logger.Error("access log write failed",
			zap.Uint("redirect_id", entry.RedirectID),
			zap.String("param_id", entry.ParamID),
			zap.Error(err))
	}
}

// WaitForAccessLogs blocks until every submitted entry has been attempted.
// Used by tests and graceful shutdown; log visibility is otherwise
// eventual.
func WaitForAccessLogs() {
	accessLogPending.Wait()
}

// ListAccessLogs returns the latest rows for one redirect, newest first.
func ListAccessLogs(redirectID uint, limit int) ([]model.AccessLog, error) {
	if limit < 1 || limit > 1000 {
		limit = 100
	}
	var logs []model.AccessLog
	err := repository.DB.
		Where("redirect_id = ?", redirectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		logging.Logger.Error("access log query failed",
			zap.Uint("redirect_id", redirectID),
			zap.Error(err))
		return nil, err
	}
	return logs, nil
}

// RedirectStats is the per-redirect aggregate over an access-log window.
type RedirectStats struct {
	RedirectID  uint  `json:"redirectId"`
	TotalCount  int64 `json:"totalCount"`
	UniqueCount int64 `json:"uniqueCount"`
}

// GetRedirectStats computes total hits and unique users (distinct
// non-empty correlation ids) since the given instant. The aggregate runs
// in the store; older deployments without the aggregate fall back to a
// client-side scan with identical results.
func GetRedirectStats(redirectID uint, since time.Time) (*RedirectStats, error) {
	var stats RedirectStats
	err := repository.DB.Model(&model.AccessLog{}).
		Select("COUNT(*) AS total_count, COUNT(DISTINCT CASE WHEN param_id <> '' THEN param_id END) AS unique_count").
		Where("redirect_id = ? AND created_at >= ?", redirectID, since).
		Scan(&stats).Error
	if err != nil {
		logging.Logger.Warn("stats aggregate failed, scanning rows instead",
			zap.Uint("redirect_id", redirectID),
			zap.Error(err))
		return scanRedirectStats(redirectID, since)
	}
	stats.RedirectID = redirectID
	return &stats, nil
}

// scanRedirectStats is the pre-aggregate code path: fetch the window and
// count client-side.
func scanRedirectStats(redirectID uint, since time.Time) (*RedirectStats, error) {
	var logs []model.AccessLog
	err := repository.DB.
		Where("redirect_id = ? AND created_at >= ?", redirectID, since).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	unique := make(map[string]struct{})
	for _, l := range logs {
		if l.ParamID != "" {
			unique[l.ParamID] = struct{}{}
		}
	}

	return &RedirectStats{
		RedirectID:  redirectID,
		TotalCount:  int64(len(logs)),
		UniqueCount: int64(len(unique)),
	}, nil
}
