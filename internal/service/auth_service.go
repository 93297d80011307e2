package service

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"redirectflow-go/internal/apperrors"
	"redirectflow-go/internal/model"
	"redirectflow-go/internal/repository"
	"redirectflow-go/pkg/logging"
)

const sessionTTL = 7 * 24 * time.Hour

// Login verifies the credentials and opens a new session.
func Login(email, password string) (*model.User, string, error) {
	var user model.User
	if err := repository.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.BusinessError(http.StatusUnauthorized, "Invalid email or password")
		}
		logging.Logger.Error("user lookup failed", zap.String("email", email), zap.Error(err))
		return nil, "", apperrors.SystemErrorDefault()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.BusinessError(http.StatusUnauthorized, "Invalid email or password")
	}

	session := &model.Session{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := repository.DB.Create(session).Error; err != nil {
		logging.Logger.Error("session insert failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, "", apperrors.SystemErrorDefault()
	}

	return &user, session.Token, nil
}

// Logout drops the session row; a missing or unknown token is fine.
func Logout(token string) {
	if token == "" {
		return
	}
	if err := repository.DB.Where("token = ?", token).Delete(&model.Session{}).Error; err != nil {
		logging.Logger.Warn("session delete failed", zap.Error(err))
	}
}

// ValidateSession resolves a session token to its user. It returns
// (nil, nil) for a missing, unknown or expired token and a non-nil error
// only when the store itself failed; the session gate decides between
// fail-open and fail-closed for that case. A valid session's expiry
// slides forward.
func ValidateSession(token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}

	var session model.Session
	if err := repository.DB.
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var user model.User
	if err := repository.DB.First(&user, session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	// sliding expiry, best effort
	if err := repository.DB.Model(&session).
		Update("expires_at", time.Now().Add(sessionTTL)).Error; err != nil {
		logging.Logger.Warn("session refresh failed", zap.Error(err))
	}

	return &user, nil
}

// CreateUser registers an admin account.
func CreateUser(email, name, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.SystemErrorDefault()
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := repository.DB.Create(user).Error; err != nil {
		logging.Logger.Error("user insert failed", zap.String("email", email), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return user, nil
}

// EnsureAdminUser seeds the configured admin account on first boot so a
// fresh deployment is not locked out.
func EnsureAdminUser() {
	email := viper.GetString("auth.admin_email")
	password := viper.GetString("auth.admin_password")
	if email == "" || password == "" {
		return
	}

	var existing model.User
	err := repository.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("admin lookup failed", zap.Error(err))
		return
	}

	if _, err := CreateUser(email, "admin", password); err != nil {
		logging.Logger.Error("failed to seed admin user", zap.String("email", email), zap.Error(err))
		return
	}
	logging.Logger.Info("seeded admin user", zap.String("email", email))
}
