package service

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"redirectflow-go/internal/model"
	"redirectflow-go/internal/repository"
	"redirectflow-go/pkg/logging"
)

// BatchLocation is the timezone the daily window and the cron schedule are
// evaluated in.
func BatchLocation() *time.Location {
	name := viper.GetString("batch.timezone")
	if name == "" {
		name = "Asia/Tokyo"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logging.Logger.Warn("invalid batch.timezone, falling back to UTC",
			zap.String("timezone", name),
			zap.Error(err))
		return time.UTC
	}
	return loc
}

// DailySummary aggregates access logs since yesterday midnight per
// redirect configured for daily notification and emails one report each.
// Per-redirect failures (log fetch, email send) are logged and skipped;
// only the initial redirect-list fetch is fatal to the invocation. In test
// mode the email goes out regardless of hit count and no sent marker is
// recorded.
func DailySummary(now time.Time, isTest bool) error {
	var redirects []model.Redirect
	if err := repository.DB.
		Where("notification_frequency = ?", model.FrequencyDaily6AM).
		Find(&redirects).Error; err != nil {
		logging.Logger.Error("failed to fetch redirects for daily summary", zap.Error(err))
		return err
	}

	loc := BatchLocation()
	local := now.In(loc)
	since := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	reportDate := since.Format("2006-01-02")

	for _, r := range redirects {
		if r.NotificationEmail == "" {
			continue
		}

		if !isTest && summaryAlreadySent(r.ID, reportDate) {
			logging.Logger.Info("summary already sent, skipping",
				zap.String("slug", r.Slug),
				zap.String("date", reportDate))
			continue
		}

		stats, err := GetRedirectStats(r.ID, since)
		if err != nil {
			logging.Logger.Error("log fetch failed, continuing with next redirect",
				zap.String("slug", r.Slug),
				zap.Error(err))
			continue
		}

		if stats.TotalCount == 0 && !isTest {
			logging.Logger.Info("no accesses in window",
				zap.String("slug", r.Slug),
				zap.String("since", since.Format(time.RFC3339)))
			continue
		}

		subject, html := buildSummaryEmail(&r, stats, reportDate, isTest)
		if err := mailer.Send(r.NotificationEmail, subject, html); err != nil {
			logging.Logger.Error("summary email failed",
				zap.String("slug", r.Slug),
				zap.String("to", r.NotificationEmail),
				zap.Error(err))
			continue
		}

		if !isTest {
			marker := &model.NotificationLog{
				RedirectID:  r.ID,
				Date:        reportDate,
				Email:       r.NotificationEmail,
				TotalCount:  stats.TotalCount,
				UniqueCount: stats.UniqueCount,
			}
			if err := repository.DB.Create(marker).Error; err != nil {
				logging.Logger.Error("failed to record summary marker",
					zap.String("slug", r.Slug),
					zap.String("date", reportDate),
					zap.Error(err))
			}
		}
	}

	return nil
}

// summaryAlreadySent treats a marker lookup failure as "not sent": a
// possible duplicate email beats a silently dropped report.
func summaryAlreadySent(redirectID uint, date string) bool {
	var count int64
	if err := repository.DB.Model(&model.NotificationLog{}).
		Where("redirect_id = ? AND date = ?", redirectID, date).
		Count(&count).Error; err != nil {
		logging.Logger.Warn("summary marker lookup failed",
			zap.Uint("redirect_id", redirectID),
			zap.Error(err))
		return false
	}
	return count > 0
}

func buildSummaryEmail(r *model.Redirect, stats *RedirectStats, reportDate string, isTest bool) (subject, html string) {
	subjectPrefix := ""
	titlePrefix := ""
	if isTest {
		subjectPrefix = "[TEST] "
		titlePrefix = "テスト用 "
	}

	subject = fmt.Sprintf("%s【RedirectFlow】集計レポート: %s", subjectPrefix, r.Slug)
	html = fmt.Sprintf(`<h1>%sアクセス集計レポート</h1>
<p><strong>対象URL:</strong> %s (%s)</p>
<p><strong>集計期間:</strong> %s</p>
<hr />
<ul>
  <li><strong>総アクセス数:</strong> %d 件</li>
  <li><strong>ユニークユーザー数(ID基準):</strong> %d 名</li>
</ul>
<p><a href="%s">管理画面で詳細を確認する</a></p>`,
		titlePrefix, r.Slug, r.TargetURL, reportDate,
		stats.TotalCount, stats.UniqueCount,
		viper.GetString("site.url"))
	return subject, html
}
