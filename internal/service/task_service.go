package service

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"redirectflow-go/internal/apperrors"
	"redirectflow-go/internal/dto"
	"redirectflow-go/internal/model"
	"redirectflow-go/internal/repository"
	"redirectflow-go/pkg/logging"
)

// CreateTask registers a pending task. ScheduledDate mirrors StartDate for
// rows predating the start/end range.
func CreateTask(req dto.CreateTaskRequest) (*model.Task, error) {
	if req.EndDate < req.StartDate {
		return nil, apperrors.InvalidRequestError("End date must be on or after the start date")
	}

	var member model.Member
	if err := repository.DB.First(&member, req.MemberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundError("Member not found")
		}
		return nil, apperrors.SystemErrorDefault()
	}

	task := &model.Task{
		MemberID:      req.MemberID,
		Title:         req.Title,
		Amount:        req.Amount,
		Points:        req.Points,
		Status:        model.TaskStatusPending,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		ScheduledDate: req.StartDate,
		Notes:         req.Notes,
	}
	if err := repository.DB.Create(task).Error; err != nil {
		logging.Logger.Error("task insert failed", zap.String("title", req.Title), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return task, nil
}

// ListTasks returns non-deleted tasks ordered by due date, with optional
// member/status/title filters.
func ListTasks(memberID uint, status model.TaskStatus, search string) ([]model.Task, error) {
	db := repository.DB.Preload("Member").
		Where("status <> ?", model.TaskStatusDeleted)
	if memberID != 0 {
		db = db.Where("member_id = ?", memberID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if search != "" {
		db = db.Where("title LIKE ?", "%"+search+"%")
	}

	var tasks []model.Task
	if err := db.Order("end_date ASC").Find(&tasks).Error; err != nil {
		logging.Logger.Error("task list query failed", zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return tasks, nil
}

// UpdateTask edits task fields; status is changed through SetTaskStatus.
func UpdateTask(id uint, req dto.UpdateTaskRequest) (*model.Task, error) {
	if req.EndDate < req.StartDate {
		return nil, apperrors.InvalidRequestError("End date must be on or after the start date")
	}

	var task model.Task
	if err := repository.DB.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundError("Task not found")
		}
		return nil, apperrors.SystemErrorDefault()
	}

	task.Title = req.Title
	task.MemberID = req.MemberID
	task.Amount = req.Amount
	task.Points = req.Points
	task.StartDate = req.StartDate
	task.EndDate = req.EndDate
	task.ScheduledDate = req.StartDate
	task.Notes = req.Notes

	if err := repository.DB.Save(&task).Error; err != nil {
		logging.Logger.Error("task update failed", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return &task, nil
}

// SetTaskStatus transitions a task. Completing stamps CompletedAt;
// reverting clears it. Deletion is the soft kind.
func SetTaskStatus(id uint, status model.TaskStatus) (*model.Task, error) {
	var task model.Task
	if err := repository.DB.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundError("Task not found")
		}
		return nil, apperrors.SystemErrorDefault()
	}

	switch status {
	case model.TaskStatusCompleted:
		now := time.Now()
		task.CompletedAt = &now
	case model.TaskStatusPending, model.TaskStatusCancelled:
		task.CompletedAt = nil
	}
	task.Status = status

	if err := repository.DB.Save(&task).Error; err != nil {
		logging.Logger.Error("task status update failed",
			zap.Uint("id", id),
			zap.String("status", string(status)),
			zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return &task, nil
}

// DeleteTask soft-deletes via status.
func DeleteTask(id uint) error {
	_, err := SetTaskStatus(id, model.TaskStatusDeleted)
	return err
}
