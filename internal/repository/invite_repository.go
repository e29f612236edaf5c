package repository

import (
	"context"
	"time"

	"teamloft/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// inviteRepository implements InviteRepository interface
type inviteRepository struct {
	db *gorm.DB
}

// NewInviteRepository creates a new InviteRepository instance
func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) CreateBatch(ctx context.Context, invites []models.Invite) error {
	if len(invites) == 0 {
		return nil
	}
	// Skip rows colliding with an existing pending invite for the same
	// (team, email).
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team_id"}, {Name: "email"}},
			DoNothing: true,
		}).
		Create(&invites).Error
}

func (r *inviteRepository) ListByTeam(ctx context.Context, teamID uint) ([]models.Invite, error) {
	var invites []models.Invite
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Find(&invites).Error
	return invites, err
}

func (r *inviteRepository) GetByTeamAndID(ctx context.Context, teamID, id uint) (*models.Invite, error) {
	var invite models.Invite
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND id = ?", teamID, id).
		First(&invite).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepository) GetByCodeAndEmail(ctx context.Context, code, email string) (*models.Invite, error) {
	var invite models.Invite
	err := r.db.WithContext(ctx).
		Where("code = ? AND email = ?", code, email).
		First(&invite).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Invite{}, id).Error
}

func (r *inviteRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&models.Invite{})
	return result.RowsAffected, result.Error
}
