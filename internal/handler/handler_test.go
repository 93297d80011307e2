package handler

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"redirectflow-go/internal/middleware"
	"redirectflow-go/internal/model"
	"redirectflow-go/internal/repository"
)

func setupHandlerTest(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	viper.Reset()
	viper.Set("batch.timezone", "UTC")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Redirect{},
		&model.AccessLog{},
		&model.NotificationLog{},
		&model.Member{},
		&model.Task{},
		&model.MonthlyGoal{},
		&model.User{},
		&model.Session{},
	))

	repository.DB = db
	repository.RedisPool = nil
}

func testRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.GlobalErrorMiddleware())
	return r
}
