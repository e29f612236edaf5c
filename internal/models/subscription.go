package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription is the billing collaborator's record attached to a team. This
// service only reads it (for the team guard context and the billing endpoint);
// it is produced and kept current by the external billing sync.
type Subscription struct {
	gorm.Model
	TeamID           uint   `gorm:"not null;uniqueIndex"`
	CustomerID       string `gorm:"index"`
	Status           string `gorm:"type:varchar(30)"`
	PriceID          string
	ProductName      string
	CurrentPeriodEnd time.Time
}

// Active reports whether the subscription currently entitles the team.
func (s *Subscription) Active() bool {
	return s.Status == "active" || s.Status == "trialing"
}
