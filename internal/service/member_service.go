package service

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"redirectflow-go/internal/apperrors"
	"redirectflow-go/internal/dto"
	"redirectflow-go/internal/model"
	"redirectflow-go/internal/repository"
	"redirectflow-go/pkg/logging"
)

// CreateMember adds a team member.
func CreateMember(req dto.CreateMemberRequest) (*model.Member, error) {
	member := &model.Member{
		Name:  req.Name,
		Color: req.Color,
	}
	if err := repository.DB.Create(member).Error; err != nil {
		logging.Logger.Error("member insert failed", zap.String("name", req.Name), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return member, nil
}

// ListMembers returns all members, oldest first (matches the dashboard
// badge ordering).
func ListMembers() ([]model.Member, error) {
	var members []model.Member
	if err := repository.DB.Order("created_at").Find(&members).Error; err != nil {
		logging.Logger.Error("member list query failed", zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return members, nil
}

// UpdateMember edits a member's name and color.
func UpdateMember(id uint, req dto.UpdateMemberRequest) (*model.Member, error) {
	var member model.Member
	if err := repository.DB.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundError("Member not found")
		}
		return nil, apperrors.SystemErrorDefault()
	}

	member.Name = req.Name
	member.Color = req.Color
	if err := repository.DB.Save(&member).Error; err != nil {
		logging.Logger.Error("member update failed", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return &member, nil
}

// DeleteMember removes a member. Members with live (non-deleted) tasks
// keep their history and cannot be removed.
func DeleteMember(id uint) error {
	var count int64
	if err := repository.DB.Model(&model.Task{}).
		Where("member_id = ? AND status <> ?", id, model.TaskStatusDeleted).
		Count(&count).Error; err != nil {
		return apperrors.SystemErrorDefault()
	}
	if count > 0 {
		return apperrors.BusinessError(http.StatusConflict, "Member still has tasks")
	}

	if err := repository.DB.Delete(&model.Member{}, id).Error; err != nil {
		return apperrors.SystemError("Failed to delete member: " + err.Error())
	}
	return nil
}
