package models

import (
	"gorm.io/gorm"
)

// Account links a user to a federated identity provider.
type Account struct {
	gorm.Model
	UserID            uint   `gorm:"not null;index"`
	Provider          string `gorm:"not null;uniqueIndex:idx_accounts_provider_id"`
	ProviderAccountID string `gorm:"not null;uniqueIndex:idx_accounts_provider_id"`
}

const ProviderGoogle = "google"
