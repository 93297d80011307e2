package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redirectflow-go/internal/dto"
	"redirectflow-go/internal/model"
	"redirectflow-go/internal/repository"
)

func seedTask(t *testing.T, memberID uint, amount int64, points int, start, end string, completed bool) *model.Task {
	t.Helper()
	task, err := CreateTask(dto.CreateTaskRequest{
		Title:     "seeded",
		MemberID:  memberID,
		Amount:    amount,
		Points:    points,
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	if completed {
		task, err = SetTaskStatus(task.ID, model.TaskStatusCompleted)
		require.NoError(t, err)
	}
	return task
}

func TestMonthWindow(t *testing.T) {
	start, end, err := monthWindow("2026-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", start)
	assert.Equal(t, "2026-02-28", end)

	_, _, err = monthWindow("2026-13")
	assert.Error(t, err)
	_, _, err = monthWindow("bogus")
	assert.Error(t, err)
}

func TestTaskInWindow(t *testing.T) {
	cases := []struct {
		name string
		task model.Task
		want bool
	}{
		{"inside", model.Task{StartDate: "2026-08-05", EndDate: "2026-08-10"}, true},
		{"spans the month", model.Task{StartDate: "2026-07-20", EndDate: "2026-09-02"}, true},
		{"ends on day one", model.Task{StartDate: "2026-07-01", EndDate: "2026-08-01"}, true},
		{"before", model.Task{StartDate: "2026-07-01", EndDate: "2026-07-31"}, false},
		{"after", model.Task{StartDate: "2026-09-01", EndDate: "2026-09-02"}, false},
		{"scheduled date fallback", model.Task{ScheduledDate: "2026-08-15"}, true},
		{"no dates at all", model.Task{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, taskInWindow(tc.task, "2026-08-01", "2026-08-31"))
		})
	}
}

func TestGetDashboardSummary(t *testing.T) {
	setupTestDB(t)
	tanaka := seedMember(t, "Tanaka")
	suzuki := seedMember(t, "Suzuki")

	seedTask(t, tanaka.ID, 300_000, 30, "2026-08-01", "2026-08-10", true)
	seedTask(t, tanaka.ID, 200_000, 20, "2026-08-05", "2026-08-20", false)
	seedTask(t, suzuki.ID, 100_000, 10, "2026-08-03", "2026-08-04", true)
	seedTask(t, suzuki.ID, 999_000, 50, "2026-07-01", "2026-07-15", true) // prior month

	data, err := GetDashboard("2026-08", 0)
	require.NoError(t, err)

	assert.EqualValues(t, 400_000, data.Summary.CompletedAmount)
	assert.EqualValues(t, 200_000, data.Summary.PendingAmount)
	assert.Equal(t, 40, data.Summary.CompletedPoints)
	assert.Equal(t, 20, data.Summary.PendingPoints)
	assert.Equal(t, 2, data.Summary.MonthlyCompletedCount)

	// defaults apply when no goal row exists
	assert.EqualValues(t, 10_000_000, data.Summary.TargetAmount)
	assert.Equal(t, 1000, data.Summary.TargetPoints)

	require.Len(t, data.MemberStats, 2)
	for _, s := range data.MemberStats {
		switch s.Member.ID {
		case tanaka.ID:
			assert.EqualValues(t, 500_000, s.TotalAmount)
			assert.EqualValues(t, 300_000, s.CompletedAmount)
			assert.Equal(t, 2, s.TaskCount)
			assert.Equal(t, 1, s.CompletedTaskCount)
		case suzuki.ID:
			assert.EqualValues(t, 100_000, s.TotalAmount)
			assert.Equal(t, 1, s.TaskCount)
		}
	}
}

func TestGetDashboardNarrowsByMember(t *testing.T) {
	setupTestDB(t)
	tanaka := seedMember(t, "Tanaka")
	suzuki := seedMember(t, "Suzuki")

	seedTask(t, tanaka.ID, 300_000, 30, "2026-08-01", "2026-08-10", true)
	seedTask(t, suzuki.ID, 100_000, 10, "2026-08-03", "2026-08-04", true)

	data, err := GetDashboard("2026-08", suzuki.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 100_000, data.Summary.CompletedAmount)
	assert.Equal(t, 10, data.Summary.CompletedPoints)
	assert.Equal(t, 1, data.Summary.MonthlyCompletedCount)

	for _, task := range data.Summary.RecentActivities {
		assert.Equal(t, suzuki.ID, task.MemberID)
	}
}

func TestRecentActivitiesOrderAndLimit(t *testing.T) {
	setupTestDB(t)
	member := seedMember(t, "Tanaka")

	base := time.Now().Add(-time.Hour)
	var latest *model.Task
	for i := 0; i < 7; i++ {
		latest = seedTask(t, member.ID, 1000, 10, "2026-08-01", "2026-08-31", true)
		// distinct completion instants so the ordering is deterministic
		require.NoError(t, repository.DB.Model(&model.Task{}).
			Where("id = ?", latest.ID).
			Update("completed_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}
	seedTask(t, member.ID, 1000, 10, "2026-08-01", "2026-08-31", false)

	data, err := GetDashboard("2026-08", 0)
	require.NoError(t, err)

	recent := data.Summary.RecentActivities
	require.Len(t, recent, recentActivityLimit)

	// completed tasks lead, newest completion first
	assert.Equal(t, latest.ID, recent[0].ID)
	for i := 1; i < len(recent); i++ {
		require.NotNil(t, recent[i].CompletedAt)
		assert.False(t, recent[i].CompletedAt.After(*recent[i-1].CompletedAt))
	}
}

func TestGetRankingMonthly(t *testing.T) {
	setupTestDB(t)
	tanaka := seedMember(t, "Tanaka")
	suzuki := seedMember(t, "Suzuki")

	month := CurrentMonth(time.Now())
	start := month + "-01"
	end := month + "-02"

	seedTask(t, tanaka.ID, 100_000, 10, start, end, true)
	seedTask(t, suzuki.ID, 900_000, 10, start, end, true)

	ranking, err := GetRanking("monthly", time.Now())
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	assert.Equal(t, suzuki.ID, ranking[0].Member.ID)
	assert.Equal(t, tanaka.ID, ranking[1].Member.ID)
}

func TestGetRankingYearly(t *testing.T) {
	setupTestDB(t)
	tanaka := seedMember(t, "Tanaka")
	suzuki := seedMember(t, "Suzuki")

	now := time.Now()
	seedTask(t, tanaka.ID, 500_000, 10, "2026-01-05", "2026-01-06", true)

	// completion stamped last year falls outside the ranking window
	old := seedTask(t, suzuki.ID, 900_000, 10, "2025-03-01", "2025-03-02", true)
	lastYear := now.AddDate(-1, 0, 0)
	require.NoError(t, repository.DB.Model(&model.Task{}).
		Where("id = ?", old.ID).
		Update("completed_at", lastYear).Error)

	ranking, err := GetRanking("yearly", now)
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	assert.Equal(t, tanaka.ID, ranking[0].Member.ID)
	assert.EqualValues(t, 500_000, ranking[0].CompletedAmount)
	assert.EqualValues(t, 0, ranking[1].CompletedAmount)
}

func TestGetRankingRejectsUnknownPeriod(t *testing.T) {
	setupTestDB(t)

	_, err := GetRanking("weekly", time.Now())
	assert.Error(t, err)
}
