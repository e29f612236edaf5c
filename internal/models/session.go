package models

import (
	"time"

	"gorm.io/gorm"
)

type Session struct {
	gorm.Model
	UserID    uint   `gorm:"not null;index"`
	Token     string `gorm:"uniqueIndex;not null"`
	UserAgent string
	IPAddress string
	LastUsed  time.Time
	ExpiresAt time.Time
	IsActive  bool `gorm:"default:true"`

	User User
}

// Valid reports whether the session can still authenticate requests.
func (s *Session) Valid() bool {
	return s.IsActive && time.Now().Before(s.ExpiresAt)
}
