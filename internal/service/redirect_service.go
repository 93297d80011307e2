package service

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"redirectflow-go/constant"
	"redirectflow-go/internal/apperrors"
	"redirectflow-go/internal/dto"
	"redirectflow-go/internal/model"
	"redirectflow-go/internal/repository"
	"redirectflow-go/pkg/logging"
	"redirectflow-go/pkg/utils"
	"redirectflow-go/response"
)

const (
	slugAlphabet        = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	generatedSlugLength = 12
	slugGenerateRetries = 5
)

// cachedRedirect is the resolve payload kept in redis.
type cachedRedirect struct {
	ID        uint   `json:"id"`
	TargetURL string `json:"targetUrl"`
}

// CreateRedirect issues a new redirect. A client-supplied slug is rejected
// on collision; an omitted slug is generated server-side and regenerated
// until unique.
func CreateRedirect(req dto.CreateRedirectRequest) (*model.Redirect, error) {
	if err := utils.ValidateTargetURL(req.TargetURL); err != nil {
		return nil, apperrors.InvalidRequestError(err.Error())
	}

	frequency := model.NotificationFrequency(req.NotificationFrequency)
	if frequency == "" {
		frequency = model.FrequencyNone
	}

	slug := req.Slug
	if slug == "" {
		generated, err := newUniqueSlug()
		if err != nil {
			return nil, err
		}
		slug = generated
	} else {
		if err := utils.ValidateSlug(slug); err != nil {
			return nil, apperrors.InvalidRequestError(err.Error())
		}
		var existing model.Redirect
		if err := repository.DB.Where("slug = ?", slug).First(&existing).Error; err == nil {
			return nil, apperrors.BusinessError(http.StatusConflict, "Slug already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			logging.Logger.Error("slug lookup failed", zap.String("slug", slug), zap.Error(err))
			return nil, apperrors.SystemErrorDefault()
		}
	}

	redirect := &model.Redirect{
		Slug:                  slug,
		TargetURL:             req.TargetURL,
		NotificationEmail:     req.NotificationEmail,
		NotificationFrequency: frequency,
	}

	if err := repository.DB.Create(redirect).Error; err != nil {
		logging.Logger.Error("redirect insert failed",
			zap.String("slug", slug),
			zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return redirect, nil
}

func newUniqueSlug() (string, error) {
	for attempt := 0; attempt < slugGenerateRetries; attempt++ {
		candidate := generateSlug(generatedSlugLength)
		var existing model.Redirect
		err := repository.DB.Where("slug = ?", candidate).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			logging.Logger.Error("slug collision check failed", zap.Error(err))
			return "", apperrors.SystemErrorDefault()
		}
	}
	return "", apperrors.SystemError("Could not generate a unique slug")
}

func generateSlug(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = slugAlphabet[rand.Intn(len(slugAlphabet))]
	}
	return string(b)
}

// GetRedirect fetches one redirect by id.
func GetRedirect(id uint) (*model.Redirect, error) {
	var redirect model.Redirect
	if err := repository.DB.First(&redirect, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundError("Redirect not found")
		}
		logging.Logger.Error("redirect lookup failed", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return &redirect, nil
}

// ListRedirects pages through redirects, optionally filtered by slug.
func ListRedirects(page, size int, slug string) (*response.PageResponse[model.Redirect], error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	db := repository.DB.Model(&model.Redirect{})
	if slug != "" {
		db = db.Where("slug LIKE ?", "%"+slug+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, apperrors.SystemError("Failed to count redirects: " + err.Error())
	}

	if total == 0 {
		return &response.PageResponse[model.Redirect]{
			Page:      page,
			Size:      size,
			Total:     0,
			TotalPage: 0,
			List:      []model.Redirect{},
		}, nil
	}

	var redirects []model.Redirect
	if err := db.
		Limit(size).
		Offset((page - 1) * size).
		Order("id DESC").
		Find(&redirects).Error; err != nil {
		logging.Logger.Error("redirect list query failed", zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	totalPage := (int(total) + size - 1) / size

	return &response.PageResponse[model.Redirect]{
		Page:      page,
		Size:      size,
		Total:     int(total),
		TotalPage: totalPage,
		List:      redirects,
	}, nil
}

// UpdateRedirect edits destination and notification settings and drops the
// cached resolve payload.
func UpdateRedirect(id uint, req dto.UpdateRedirectRequest) (*model.Redirect, error) {
	var existing model.Redirect
	if err := repository.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundError("Redirect not found")
		}
		logging.Logger.Error("redirect lookup failed", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	if err := utils.ValidateTargetURL(req.TargetURL); err != nil {
		return nil, apperrors.InvalidRequestError(err.Error())
	}

	existing.TargetURL = req.TargetURL
	existing.NotificationEmail = req.NotificationEmail
	existing.NotificationFrequency = model.NotificationFrequency(req.NotificationFrequency)

	if err := repository.DB.Save(&existing).Error; err != nil {
		logging.Logger.Error("redirect update failed", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	invalidateSlugCache(existing.Slug)
	return &existing, nil
}

// DeleteRedirect removes the redirect together with its access logs,
// summary markers and cache entry.
func DeleteRedirect(id uint) error {
	var existing model.Redirect
	if err := repository.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundError("Redirect not found")
		}
		logging.Logger.Error("redirect lookup failed", zap.Uint("id", id), zap.Error(err))
		return apperrors.SystemErrorDefault()
	}

	if err := repository.DB.Where("redirect_id = ?", id).Delete(&model.AccessLog{}).Error; err != nil {
		return apperrors.SystemError("Failed to delete access logs: " + err.Error())
	}
	if err := repository.DB.Where("redirect_id = ?", id).Delete(&model.NotificationLog{}).Error; err != nil {
		return apperrors.SystemError("Failed to delete summary markers: " + err.Error())
	}
	if err := repository.DB.Delete(&existing).Error; err != nil {
		return apperrors.SystemError("Failed to delete redirect: " + err.Error())
	}

	invalidateSlugCache(existing.Slug)
	return nil
}

// ResolveRedirect finds the redirect for a slug: cache first with negative
// caching, database on a miss. The match is exact and case-sensitive.
func ResolveRedirect(slug string) (*cachedRedirect, bool) {
	if err := utils.ValidateSlug(slug); err != nil {
		return nil, false
	}

	if repository.RedisPool == nil {
		return resolveFromDB(slug, nil)
	}

	cacheKey := constant.GetSlugKey(slug)
	conn := repository.RedisPool.Get()
	defer closeRedisConn(conn)

	cachedValue, err := redis.Bytes(conn.Do("GET", cacheKey))
	if err == nil {
		if string(cachedValue) == "" {
			// negative cache hit
			return nil, false
		}
		var cached cachedRedirect
		if err := json.Unmarshal(cachedValue, &cached); err == nil {
			return &cached, true
		}
		logging.Logger.Warn("Failed to unmarshal cached value",
			zap.String("cache_key", cacheKey),
			zap.Error(err))
	} else if err != redis.ErrNil {
		logging.Logger.Warn("Error getting from Redis",
			zap.String("cache_key", cacheKey),
			zap.Error(err))
	}

	return resolveFromDB(slug, conn)
}

func resolveFromDB(slug string, conn redis.Conn) (*cachedRedirect, bool) {
	cacheKey := constant.GetSlugKey(slug)

	var redirect model.Redirect
	if err := repository.DB.Where("slug = ?", slug).First(&redirect).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logging.Logger.Error("redirect resolve query failed",
				zap.String("slug", slug),
				zap.Error(err))
		} else if conn != nil {
			// cache the miss to blunt lookup floods for dead slugs
			if _, err := conn.Do("SET", cacheKey, "", "EX", 300); err != nil {
				logging.Logger.Error("Failed to set negative cache",
					zap.String("cache_key", cacheKey),
					zap.Error(err))
			}
		}
		return nil, false
	}

	resolved := &cachedRedirect{ID: redirect.ID, TargetURL: redirect.TargetURL}

	if conn != nil {
		cachedValue, _ := json.Marshal(resolved)
		if _, err := conn.Do("SET", cacheKey, cachedValue, "EX", 3600); err != nil {
			logging.Logger.Error("Failed to set slug cache",
				zap.String("cache_key", cacheKey),
				zap.Error(err))
		}
	}

	return resolved, true
}

func invalidateSlugCache(slug string) {
	if repository.RedisPool == nil {
		return
	}
	conn := repository.RedisPool.Get()
	defer closeRedisConn(conn)

	cacheKey := constant.GetSlugKey(slug)
	if _, err := conn.Do("DEL", cacheKey); err != nil {
		logging.Logger.Warn("Failed to drop slug cache",
			zap.String("cache_key", cacheKey),
			zap.Error(err))
	}
}

func closeRedisConn(conn redis.Conn) {
	if err := conn.Close(); err != nil {
		logging.Logger.Error("Failed to close Redis connection",
			zap.Error(err),
			zap.String("connection_type", "redis"),
		)
	}
}
