package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string
	Name         string
	Image        string
	JobTitle     string
	Interests    []string `gorm:"serializer:json"`
	HasOnboarded bool     `gorm:"default:false"`

	// CurrentTeamID is a UI preference pointer only. Team scope is always an
	// explicit request parameter, never derived from this field.
	CurrentTeamID *uint

	Teams    []Team `gorm:"many2many:team_users;"`
	Roles    []TeamRole
	Accounts []Account
}

// HasPassword reports whether the user can sign in with credentials.
// OAuth-only users have no password hash.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
