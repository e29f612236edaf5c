package service

import (
	"errors"
	"testing"

	"teamloft/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB returns an isolated in-memory database with the full schema
// applied. A single connection keeps every session on the same memory store.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamRole{},
		&models.Invite{},
		&models.Session{},
		&models.Account{},
		&models.Subscription{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: "Test User"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func requireServiceError(t *testing.T, err error, code ErrorCode, message string) {
	t.Helper()
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr), "expected *service.Error, got %v", err)
	require.Equal(t, code, svcErr.Code)
	require.Equal(t, message, svcErr.Message)
}

func countRows(t *testing.T, db *gorm.DB, table, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Where(where, args...).Count(&n).Error)
	return n
}
