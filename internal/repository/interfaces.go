package repository

import (
	"context"
	"time"

	"teamloft/internal/models"
)

// TeamRef addresses a team by exactly one of its id or slug.
type TeamRef struct {
	ID   *uint
	Slug *string
}

// Informative reports whether the reference carries an identifier.
func (r TeamRef) Informative() bool {
	return r.ID != nil || (r.Slug != nil && *r.Slug != "")
}

// TeamMember is a user together with their role in a specific team.
type TeamMember struct {
	User models.User
	Role models.RoleName
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// Get returns a user by ID
	Get(ctx context.Context, id uint) (*models.User, error)
	// GetByEmail returns a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByProviderAccount returns the user linked to a federated identity
	GetByProviderAccount(ctx context.Context, provider, providerAccountID string) (*models.User, error)
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error
	// Update persists changes to an existing user
	Update(ctx context.Context, user *models.User) error
	// LinkAccount attaches a federated identity to a user
	LinkAccount(ctx context.Context, account *models.Account) error
}

// TeamRepository defines the interface for team-related database operations
type TeamRepository interface {
	// Get returns a team by ID
	Get(ctx context.Context, id uint) (*models.Team, error)
	// SlugExists reports whether any team already uses the slug
	SlugExists(ctx context.Context, slug string) (bool, error)
	// ForUser returns all teams the user is a member of
	ForUser(ctx context.Context, userID uint) ([]models.Team, error)
	// ResolveForMember resolves the referenced team if the user is a member,
	// preloading roles and subscription. Returns gorm.ErrRecordNotFound
	// semantics via the underlying store when the user is not in the team.
	ResolveForMember(ctx context.Context, userID uint, ref TeamRef) (*models.Team, error)
	// ResolveForAdmin is ResolveForMember plus an Admin role requirement
	ResolveForAdmin(ctx context.Context, userID uint, ref TeamRef) (*models.Team, error)
	// Members returns the team's users with their roles
	Members(ctx context.Context, teamID uint) ([]TeamMember, error)
	// Subscription returns the team's subscription or nil if none exists
	Subscription(ctx context.Context, teamID uint) (*models.Subscription, error)
}

// InviteRepository defines the interface for invitation database operations
type InviteRepository interface {
	// CreateBatch inserts invitations, skipping rows that collide with an
	// existing pending invite for the same (team, email)
	CreateBatch(ctx context.Context, invites []models.Invite) error
	// ListByTeam returns the team's pending invitations
	ListByTeam(ctx context.Context, teamID uint) ([]models.Invite, error)
	// GetByTeamAndID returns one invitation scoped to a team
	GetByTeamAndID(ctx context.Context, teamID, id uint) (*models.Invite, error)
	// GetByCodeAndEmail returns the invitation matching both code and email
	GetByCodeAndEmail(ctx context.Context, code, email string) (*models.Invite, error)
	// Delete hard-deletes an invitation
	Delete(ctx context.Context, id uint) error
	// DeleteExpired removes invitations that expired before the given time
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// SessionRepository defines the interface for session database operations
type SessionRepository interface {
	// Create creates a new session
	Create(ctx context.Context, session *models.Session) error
	// GetActiveByToken returns a live session (with its user) by token
	GetActiveByToken(ctx context.Context, token string) (*models.Session, error)
	// Touch updates the session's last-used timestamp
	Touch(ctx context.Context, session *models.Session) error
	// Invalidate marks the session with the given token inactive
	Invalidate(ctx context.Context, token string) error
	// DeleteExpired removes sessions past their expiry
	DeleteExpired(ctx context.Context) (int64, error)
}
