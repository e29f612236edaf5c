package tasks

import (
	"context"
	"time"

	"teamloft/internal/logging"
	"teamloft/internal/models"
	"teamloft/internal/repository"

	"gorm.io/gorm"
)

const (
	cleanupInterval = 12 * time.Hour
	sweepTimeout    = time.Minute
)

// Cleanup periodically removes expired sessions and expired invitations.
type Cleanup struct {
	db       *gorm.DB
	sessions repository.SessionRepository
	invites  repository.InviteRepository
	logger   *logging.Logger
	stop     chan struct{}
	done     chan struct{}
}

// NewCleanup creates a new cleanup task
func NewCleanup(db *gorm.DB, sessions repository.SessionRepository, invites repository.InviteRepository, logger *logging.Logger) *Cleanup {
	return &Cleanup{
		db:       db,
		sessions: sessions,
		invites:  invites,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the cleanup task in the background
func (c *Cleanup) Start() {
	go c.runPeriodically()
}

// Stop halts the background loop and waits for any running sweep to finish.
func (c *Cleanup) Stop() {
	close(c.stop)
	<-c.done
}

func (c *Cleanup) runPeriodically() {
	defer close(c.done)

	// Run immediately on startup
	c.sweep()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

func (c *Cleanup) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if n, err := c.sessions.DeleteExpired(ctx); err != nil {
		c.logger.Error("Session cleanup failed: %v", err)
	} else if n > 0 {
		c.logger.Info("Deleted %d expired sessions", n)
	}

	// Sessions abandoned without logout are swept once they go stale. The
	// sweep must remove the rows for real, not soft-delete them.
	inactive := c.db.WithContext(ctx).
		Unscoped().
		Where("is_active = ? AND last_used < ?", false, time.Now().AddDate(0, 0, -30)).
		Delete(&models.Session{})
	if inactive.Error != nil {
		c.logger.Error("Session cleanup failed: %v", inactive.Error)
	} else if inactive.RowsAffected > 0 {
		c.logger.Info("Deleted %d inactive sessions", inactive.RowsAffected)
	}

	if n, err := c.invites.DeleteExpired(ctx, time.Now()); err != nil {
		c.logger.Error("Invite cleanup failed: %v", err)
	} else if n > 0 {
		c.logger.Info("Deleted %d expired invites", n)
	}
}
