package models

import (
	"time"

	"gorm.io/gorm"
)

type Team struct {
	gorm.Model
	Name string `gorm:"not null"`
	Slug string `gorm:"uniqueIndex;not null"`

	Users        []User `gorm:"many2many:team_users;"`
	Roles        []TeamRole
	Invites      []Invite
	Subscription *Subscription
}

// TeamRole is the explicit role record for a user within a team.
// A user holds at most one role per team. Role rows are hard-deleted;
// a soft-deleted row would keep occupying the unique (user, team) index.
type TeamRole struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint     `gorm:"not null;uniqueIndex:idx_team_roles_user_team"`
	TeamID    uint     `gorm:"not null;uniqueIndex:idx_team_roles_user_team"`
	Name      RoleName `gorm:"type:varchar(20);not null;default:'Member'"`
}

type RoleName string

const (
	RoleAdmin  RoleName = "Admin"
	RoleMember RoleName = "Member"
)

// Valid reports whether the role name is one of the known roles.
func (r RoleName) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}
