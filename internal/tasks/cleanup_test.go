package tasks

import (
	"testing"
	"time"

	"teamloft/internal/logging"
	"teamloft/internal/models"
	"teamloft/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openCleanupTestDB(t *testing.T) *gorm.DB {
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

	require.NoError(t, db.AutoMigrate(&models.Session{}, &models.Invite{}))
	return db
}

func TestCleanup_Sweep(t *testing.T) {
	db := openCleanupTestDB(t)
	now := time.Now()

	live := &models.Session{UserID: 1, Token: "live", IsActive: true, LastUsed: now, ExpiresAt: now.Add(time.Hour)}
	expired := &models.Session{UserID: 1, Token: "expired", IsActive: true, LastUsed: now, ExpiresAt: now.Add(-time.Hour)}
	stale := &models.Session{UserID: 1, Token: "stale", IsActive: false, LastUsed: now.AddDate(0, 0, -31), ExpiresAt: now.Add(time.Hour)}
	for _, s := range []*models.Session{live, expired, stale} {
		require.NoError(t, db.Create(s).Error)
	}
	// IsActive carries `gorm:"default:true"`, so the zero value is dropped on
	// insert; force the stale row inactive the way the repository does.
	require.NoError(t, db.Model(stale).Update("is_active", false).Error)

	require.NoError(t, db.Create(&models.Invite{
		TeamID: 1, Email: "old@example.com", Role: models.RoleMember,
		Code: "old-code", ExpiresAt: now.Add(-time.Hour),
	}).Error)
	require.NoError(t, db.Create(&models.Invite{
		TeamID: 1, Email: "fresh@example.com", Role: models.RoleMember,
		Code: "fresh-code", ExpiresAt: now.Add(time.Hour),
	}).Error)

	c := NewCleanup(db,
		repository.NewSessionRepository(db),
		repository.NewInviteRepository(db),
		logging.GetLogger(),
	)
	c.sweep()

	// Swept rows are gone physically, not just soft-deleted.
	var tokens []string
	require.NoError(t, db.Unscoped().Model(&models.Session{}).Pluck("token", &tokens).Error)
	require.Equal(t, []string{"live"}, tokens)

	var emails []string
	require.NoError(t, db.Model(&models.Invite{}).Pluck("email", &emails).Error)
	require.Equal(t, []string{"fresh@example.com"}, emails)
}

func TestCleanup_StartStop(t *testing.T) {
	db := openCleanupTestDB(t)
	c := NewCleanup(db,
		repository.NewSessionRepository(db),
		repository.NewInviteRepository(db),
		logging.GetLogger(),
	)

	c.Start()
	done := make(chan struct{})
	go func() {
		c.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}
