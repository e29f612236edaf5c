package repository

import (
	"context"
	"errors"

	"teamloft/internal/models"

	"gorm.io/gorm"
)

// teamRepository implements TeamRepository interface
type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository instance
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Get(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Team{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *teamRepository) ForUser(ctx context.Context, userID uint) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.WithContext(ctx).
		Joins("JOIN team_users ON team_users.team_id = teams.id").
		Where("team_users.user_id = ?", userID).
		Order("teams.created_at ASC").
		Find(&teams).Error
	return teams, err
}

func (r *teamRepository) ResolveForMember(ctx context.Context, userID uint, ref TeamRef) (*models.Team, error) {
	return r.resolve(ctx, userID, ref, false)
}

func (r *teamRepository) ResolveForAdmin(ctx context.Context, userID uint, ref TeamRef) (*models.Team, error) {
	return r.resolve(ctx, userID, ref, true)
}

// resolve loads the referenced team if the user is in its user set, with
// roles and subscription attached for the request context. The membership
// (and, for admins, the role record) is part of the query itself, so a
// non-member and a missing team are indistinguishable to the caller.
func (r *teamRepository) resolve(ctx context.Context, userID uint, ref TeamRef, adminOnly bool) (*models.Team, error) {
	if !ref.Informative() {
		return nil, errors.New("team reference must carry either teamId or slug")
	}

	q := r.db.WithContext(ctx).Model(&models.Team{}).
		Joins("JOIN team_users ON team_users.team_id = teams.id AND team_users.user_id = ?", userID)

	if ref.ID != nil {
		q = q.Where("teams.id = ?", *ref.ID)
	} else {
		q = q.Where("teams.slug = ?", *ref.Slug)
	}

	if adminOnly {
		q = q.Joins(
			"JOIN team_roles ON team_roles.team_id = teams.id AND team_roles.user_id = ? AND team_roles.name = ?",
			userID, models.RoleAdmin,
		)
	}

	var team models.Team
	err := q.Preload("Roles").Preload("Subscription").First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) Members(ctx context.Context, teamID uint) ([]TeamMember, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN team_users ON team_users.user_id = users.id").
		Where("team_users.team_id = ?", teamID).
		Order("users.created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	var roles []models.TeamRole
	if err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Find(&roles).Error; err != nil {
		return nil, err
	}

	roleByUser := make(map[uint]models.RoleName, len(roles))
	for _, role := range roles {
		roleByUser[role.UserID] = role.Name
	}

	members := make([]TeamMember, 0, len(users))
	for _, u := range users {
		role, ok := roleByUser[u.ID]
		if !ok {
			role = models.RoleMember
		}
		members = append(members, TeamMember{User: u, Role: role})
	}
	return members, nil
}

func (r *teamRepository) Subscription(ctx context.Context, teamID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).Where("team_id = ?", teamID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
