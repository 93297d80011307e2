package service

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"redirectflow-go/internal/apperrors"
	"redirectflow-go/internal/model"
	"redirectflow-go/internal/repository"
	"redirectflow-go/pkg/logging"
	"redirectflow-go/pkg/utils"
)

const recentActivityLimit = 5

// DashboardSummary is the month-level rollup shown at the top of the team
// dashboard.
type DashboardSummary struct {
	CompletedAmount       int64        `json:"completedAmount"`
	PendingAmount         int64        `json:"pendingAmount"`
	CompletedPoints       int          `json:"completedPoints"`
	PendingPoints         int          `json:"pendingPoints"`
	TargetAmount          int64        `json:"targetAmount"`
	TargetPoints          int          `json:"targetPoints"`
	RecentActivities      []model.Task `json:"recentActivities"`
	MonthlyCompletedCount int          `json:"monthlyCompletedCount"`
}

// MemberStats is the per-member leaderboard row.
type MemberStats struct {
	Member             model.Member `json:"member"`
	TotalAmount        int64        `json:"totalAmount"`
	CompletedAmount    int64        `json:"completedAmount"`
	TotalPoints        int          `json:"totalPoints"`
	CompletedPoints    int          `json:"completedPoints"`
	TaskCount          int          `json:"taskCount"`
	CompletedTaskCount int          `json:"completedTaskCount"`
}

// DashboardData bundles the summary with the member breakdown.
type DashboardData struct {
	Summary     DashboardSummary `json:"summary"`
	MemberStats []MemberStats    `json:"memberStats"`
}

// CurrentMonth is the dashboard's default month key, evaluated in the
// batch timezone.
func CurrentMonth(now time.Time) string {
	return now.In(BatchLocation()).Format("2006-01")
}

// monthWindow expands YYYY-MM into its first and last day.
func monthWindow(month string) (start, end string, err error) {
	if err := utils.ValidateMonth(month); err != nil {
		return "", "", apperrors.InvalidRequestError(err.Error())
	}
	t, parseErr := time.Parse("2006-01", month)
	if parseErr != nil {
		return "", "", apperrors.InvalidRequestError("error.month_invalid")
	}
	return t.Format("2006-01-02"), t.AddDate(0, 1, -1).Format("2006-01-02"), nil
}

// taskInWindow checks overlap of the task's date range with [start, end].
// ScheduledDate fills in for rows created before the explicit range
// existed. Date strings compare lexically.
func taskInWindow(t model.Task, start, end string) bool {
	s := t.StartDate
	if s == "" {
		s = t.ScheduledDate
	}
	e := t.EndDate
	if e == "" {
		e = t.ScheduledDate
	}
	if s == "" || e == "" {
		return false
	}
	return s <= end && e >= start
}

// GetDashboard computes the summary and member stats for one month. A
// non-zero memberID narrows the summary to that member's share.
func GetDashboard(month string, memberID uint) (*DashboardData, error) {
	start, end, err := monthWindow(month)
	if err != nil {
		return nil, err
	}

	goal, err := GetGoal(month)
	if err != nil {
		return nil, err
	}

	var tasks []model.Task
	if dbErr := repository.DB.
		Where("status IN ?", []model.TaskStatus{model.TaskStatusPending, model.TaskStatusCompleted}).
		Find(&tasks).Error; dbErr != nil {
		logging.Logger.Error("dashboard task query failed", zap.Error(dbErr))
		return nil, apperrors.SystemErrorDefault()
	}

	members, err := ListMembers()
	if err != nil {
		return nil, err
	}

	var monthTasks []model.Task
	for _, t := range tasks {
		if taskInWindow(t, start, end) {
			monthTasks = append(monthTasks, t)
		}
	}

	summary := DashboardSummary{
		TargetAmount: goal.TargetAmount,
		TargetPoints: goal.TargetPoints,
	}
	for _, t := range monthTasks {
		if t.Status == model.TaskStatusCompleted {
			summary.CompletedAmount += t.Amount
			summary.CompletedPoints += t.Points
			summary.MonthlyCompletedCount++
		} else {
			summary.PendingAmount += t.Amount
			summary.PendingPoints += t.Points
		}
	}

	memberStats := buildMemberStats(members, monthTasks)

	if memberID != 0 {
		for _, s := range memberStats {
			if s.Member.ID == memberID {
				summary.CompletedAmount = s.CompletedAmount
				summary.PendingAmount = s.TotalAmount - s.CompletedAmount
				summary.CompletedPoints = s.CompletedPoints
				summary.PendingPoints = s.TotalPoints - s.CompletedPoints
				summary.MonthlyCompletedCount = s.CompletedTaskCount
				break
			}
		}
	}

	summary.RecentActivities = recentActivities(tasks, memberID)

	return &DashboardData{
		Summary:     summary,
		MemberStats: memberStats,
	}, nil
}

func buildMemberStats(members []model.Member, tasks []model.Task) []MemberStats {
	stats := make([]MemberStats, 0, len(members))
	for _, m := range members {
		s := MemberStats{Member: m}
		for _, t := range tasks {
			if t.MemberID != m.ID {
				continue
			}
			s.TotalAmount += t.Amount
			s.TotalPoints += t.Points
			s.TaskCount++
			if t.Status == model.TaskStatusCompleted {
				s.CompletedAmount += t.Amount
				s.CompletedPoints += t.Points
				s.CompletedTaskCount++
			}
		}
		stats = append(stats, s)
	}
	return stats
}

// recentActivities orders by completion time (incomplete last), then by
// creation time, and takes the newest few.
func recentActivities(tasks []model.Task, memberID uint) []model.Task {
	recent := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if memberID != 0 && t.MemberID != memberID {
			continue
		}
		recent = append(recent, t)
	}

	sort.SliceStable(recent, func(i, j int) bool {
		a, b := recent[i], recent[j]
		switch {
		case a.CompletedAt != nil && b.CompletedAt != nil:
			return a.CompletedAt.After(*b.CompletedAt)
		case a.CompletedAt != nil:
			return true
		case b.CompletedAt != nil:
			return false
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})

	if len(recent) > recentActivityLimit {
		recent = recent[:recentActivityLimit]
	}
	return recent
}

// GetRanking returns members ordered by completed revenue, either for the
// current month or for the calendar year of CompletedAt.
func GetRanking(period string, now time.Time) ([]MemberStats, error) {
	members, err := ListMembers()
	if err != nil {
		return nil, err
	}

	var stats []MemberStats
	switch period {
	case "yearly":
		year := now.In(BatchLocation()).Year()
		from := time.Date(year, 1, 1, 0, 0, 0, 0, BatchLocation())
		to := from.AddDate(1, 0, 0)

		var tasks []model.Task
		if dbErr := repository.DB.
			Where("status = ? AND completed_at >= ? AND completed_at < ?",
				model.TaskStatusCompleted, from, to).
			Find(&tasks).Error; dbErr != nil {
			logging.Logger.Error("yearly ranking query failed", zap.Error(dbErr))
			return nil, apperrors.SystemErrorDefault()
		}
		stats = buildMemberStats(members, tasks)

	case "", "monthly":
		data, err := GetDashboard(CurrentMonth(now), 0)
		if err != nil {
			return nil, err
		}
		stats = data.MemberStats

	default:
		return nil, apperrors.InvalidRequestError("period must be monthly or yearly")
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].CompletedAmount > stats[j].CompletedAmount
	})
	return stats, nil
}
