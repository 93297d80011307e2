package service

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"redirectflow-go/internal/apperrors"
	"redirectflow-go/internal/dto"
	"redirectflow-go/internal/model"
	"redirectflow-go/internal/repository"
	"redirectflow-go/pkg/logging"
	"redirectflow-go/pkg/utils"
)

// Targets assumed when no goal row exists for a month.
const (
	defaultTargetAmount = 10_000_000
	defaultTargetPoints = 1000
)

// GetGoal returns the goal for a month, or the defaults (ID 0) when none
// has been set yet.
func GetGoal(month string) (*model.MonthlyGoal, error) {
	if err := utils.ValidateMonth(month); err != nil {
		return nil, apperrors.InvalidRequestError(err.Error())
	}

	var goal model.MonthlyGoal
	if err := repository.DB.Where("month = ?", month).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.MonthlyGoal{
				Month:        month,
				TargetAmount: defaultTargetAmount,
				TargetPoints: defaultTargetPoints,
			}, nil
		}
		logging.Logger.Error("goal lookup failed", zap.String("month", month), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return &goal, nil
}

// UpsertGoal creates or updates the month's targets.
func UpsertGoal(month string, req dto.UpsertGoalRequest) (*model.MonthlyGoal, error) {
	if err := utils.ValidateMonth(month); err != nil {
		return nil, apperrors.InvalidRequestError(err.Error())
	}

	goal := &model.MonthlyGoal{
		Month:        month,
		TargetAmount: req.TargetAmount,
		TargetPoints: req.TargetPoints,
	}
	if err := repository.DB.
		Where("month = ?", month).
		Assign("target_amount", req.TargetAmount, "target_points", req.TargetPoints).
		FirstOrCreate(goal).Error; err != nil {
		logging.Logger.Error("goal upsert failed", zap.String("month", month), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return goal, nil
}
