package models

import (
	"time"
)

// Invite is a pending, code-bearing offer for an email address to join a team
// with a given role. At most one pending invite may exist per (team, email);
// batch inserts skip duplicates on that key. An invite is consumed
// (hard-deleted) exactly once on acceptance; soft deletion would keep the
// (team, email) slot occupied for re-invites.
type Invite struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	TeamID    uint     `gorm:"not null;uniqueIndex:idx_invites_team_email"`
	Email     string   `gorm:"not null;uniqueIndex:idx_invites_team_email"`
	Role      RoleName `gorm:"type:varchar(20);not null"`
	Code      string   `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time

	Team Team `json:"-"`
}

// Expired reports whether the invite is past its expiry.
func (i *Invite) Expired() bool {
	return !i.ExpiresAt.IsZero() && time.Now().After(i.ExpiresAt)
}
