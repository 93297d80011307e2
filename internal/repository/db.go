package repository

import (
	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"redirectflow-go/internal/model"
	"redirectflow-go/pkg/logging"
)

var DB *gorm.DB

// InitDB connects to the configured Postgres store. A missing db.dsn must
// not crash the process mid-provisioning: it degrades to an in-memory
// placeholder database so non-critical paths keep working.
func InitDB(logger *zap.Logger, atomicLogLevel zap.AtomicLevel) {
	dsn := viper.GetString("db.dsn")

	var dialector gorm.Dialector
	if dsn == "" {
		logger.Warn("db.dsn is not configured, using in-memory placeholder store")
		dialector = sqlite.Open("file::memory:?cache=shared")
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.NewGormLogger(logger, logging.ToGormLogLevel(atomicLogLevel.Level())),
	})
	if err != nil {
		logging.Logger.Fatal("Failed to connect database", zap.Error(err))
	}

	err = db.AutoMigrate(
		&model.Redirect{},
		&model.AccessLog{},
		&model.NotificationLog{},
		&model.Member{},
		&model.Task{},
		&model.MonthlyGoal{},
		&model.User{},
		&model.Session{},
	)
	if err != nil {
		logging.Logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	DB = db
}
