package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"redirectflow-go/internal/model"
	"redirectflow-go/internal/repository"
)

// setupTestDB points the repository globals at a fresh in-memory store.
// A single connection keeps every query on the same sqlite database.
func setupTestDB(t *testing.T) {
	t.Helper()

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

type sentMail struct {
	to      string
	subject string
	html    string
}

// fakeMailer records deliveries instead of calling Resend.
type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, html string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, html: html})
	return nil
}
