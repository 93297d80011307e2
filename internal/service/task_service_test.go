package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redirectflow-go/internal/apperrors"
	"redirectflow-go/internal/dto"
	"redirectflow-go/internal/model"
)

func seedMember(t *testing.T, name string) *model.Member {
	t.Helper()
	member, err := CreateMember(dto.CreateMemberRequest{Name: name, Color: "#3b82f6"})
	require.NoError(t, err)
	return member
}

func TestCreateTask(t *testing.T) {
	setupTestDB(t)
	member := seedMember(t, "Tanaka")

	task, err := CreateTask(dto.CreateTaskRequest{
		Title:     "Client proposal",
		MemberID:  member.ID,
		Amount:    500_000,
		Points:    30,
		StartDate: "2026-08-01",
		EndDate:   "2026-08-15",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusPending, task.Status)
	assert.Equal(t, "2026-08-01", task.ScheduledDate)
	assert.Nil(t, task.CompletedAt)
}

func TestCreateTaskValidation(t *testing.T) {
	setupTestDB(t)
	member := seedMember(t, "Tanaka")

	_, err := CreateTask(dto.CreateTaskRequest{
		Title:     "Backwards range",
		MemberID:  member.ID,
		StartDate: "2026-08-15",
		EndDate:   "2026-08-01",
	})
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)

	_, err = CreateTask(dto.CreateTaskRequest{
		Title:     "Ghost member",
		MemberID:  9999,
		StartDate: "2026-08-01",
		EndDate:   "2026-08-02",
	})
	require.Error(t, err)
	appErr, ok = err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestSetTaskStatusStampsCompletion(t *testing.T) {
	setupTestDB(t)
	member := seedMember(t, "Tanaka")

	task, err := CreateTask(dto.CreateTaskRequest{
		Title:     "Toggle me",
		MemberID:  member.ID,
		StartDate: "2026-08-01",
		EndDate:   "2026-08-02",
	})
	require.NoError(t, err)

	completed, err := SetTaskStatus(task.ID, model.TaskStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)

	reverted, err := SetTaskStatus(task.ID, model.TaskStatusPending)
	require.NoError(t, err)
	assert.Nil(t, reverted.CompletedAt)
	assert.Equal(t, model.TaskStatusPending, reverted.Status)
}

func TestListTasksFilters(t *testing.T) {
	setupTestDB(t)
	tanaka := seedMember(t, "Tanaka")
	suzuki := seedMember(t, "Suzuki")

	mk := func(title string, memberID uint) *model.Task {
		task, err := CreateTask(dto.CreateTaskRequest{
			Title:     title,
			MemberID:  memberID,
			StartDate: "2026-08-01",
			EndDate:   "2026-08-31",
		})
		require.NoError(t, err)
		return task
	}

	mk("Quarterly review", tanaka.ID)
	done := mk("Launch campaign", tanaka.ID)
	gone := mk("Old task", suzuki.ID)

	_, err := SetTaskStatus(done.ID, model.TaskStatusCompleted)
	require.NoError(t, err)
	require.NoError(t, DeleteTask(gone.ID))

	all, err := ListTasks(0, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2) // deleted rows never show

	byMember, err := ListTasks(tanaka.ID, "", "")
	require.NoError(t, err)
	assert.Len(t, byMember, 2)

	byStatus, err := ListTasks(0, model.TaskStatusCompleted, "")
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "Launch campaign", byStatus[0].Title)

	bySearch, err := ListTasks(0, "", "campaign")
	require.NoError(t, err)
	require.Len(t, bySearch, 1)

	// the member relation is preloaded for the list view
	require.NotNil(t, byStatus[0].Member)
	assert.Equal(t, "Tanaka", byStatus[0].Member.Name)
}

func TestUpdateTaskKeepsScheduledDateInSync(t *testing.T) {
	setupTestDB(t)
	member := seedMember(t, "Tanaka")

	task, err := CreateTask(dto.CreateTaskRequest{
		Title:     "Reschedule",
		MemberID:  member.ID,
		StartDate: "2026-08-01",
		EndDate:   "2026-08-02",
	})
	require.NoError(t, err)

	updated, err := UpdateTask(task.ID, dto.UpdateTaskRequest{
		Title:     "Reschedule",
		MemberID:  member.ID,
		Amount:    100_000,
		Points:    10,
		StartDate: "2026-09-01",
		EndDate:   "2026-09-05",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", updated.ScheduledDate)
	assert.EqualValues(t, 100_000, updated.Amount)
}

func TestDeleteMemberRefusedWhileTasksRemain(t *testing.T) {
	setupTestDB(t)
	member := seedMember(t, "Tanaka")

	task, err := CreateTask(dto.CreateTaskRequest{
		Title:     "Blocking task",
		MemberID:  member.ID,
		StartDate: "2026-08-01",
		EndDate:   "2026-08-02",
	})
	require.NoError(t, err)

	err = DeleteMember(member.ID)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Code)

	require.NoError(t, DeleteTask(task.ID))
	assert.NoError(t, DeleteMember(member.ID))
}
