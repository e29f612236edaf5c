package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"teamloft/internal/models"
	"teamloft/internal/repository"
	"teamloft/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamService owns the team lifecycle: creation with slug derivation, rename
// and slug change, deletion, leaving, and role updates.
type TeamService struct {
	db    *gorm.DB
	teams repository.TeamRepository
}

func NewTeamService(db *gorm.DB, teams repository.TeamRepository) *TeamService {
	return &TeamService{
		db:    db,
		teams: teams,
	}
}

// Create creates a team, attaches the creator as a member and grants them the
// Admin role, all in one transaction. The slug is derived from the name; on
// collision a random numeric suffix is appended.
func (s *TeamService) Create(ctx context.Context, userID uint, name string) (*models.Team, error) {
	slug := utils.Slugify(name)
	if slug == "" {
		return nil, BadRequest("Team name must contain at least one letter or number")
	}

	exists, err := s.teams.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		slug = fmt.Sprintf("%s-%d", slug, rand.Intn(100000000))
	}

	team := models.Team{Name: name, Slug: slug}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		if err := addMembership(tx, team.ID, userID); err != nil {
			return err
		}
		role := models.TeamRole{UserID: userID, TeamID: team.ID, Name: models.RoleAdmin}
		return tx.Create(&role).Error
	})
	if err != nil {
		return nil, err
	}

	return &team, nil
}

// Update renames a team and/or changes its slug. A slug collision is a
// user-correctable error; the caller must retry with a different slug.
func (s *TeamService) Update(ctx context.Context, teamID uint, name, slug string) error {
	err := s.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("id = ?", teamID).
		Updates(map[string]interface{}{"name": name, "slug": slug}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return BadRequest("URL unavailable. Please try another.")
	}
	return err
}

// Delete removes a team and everything attached to it. The membership join
// rows cannot cascade implicitly, so they are cleared in the same transaction
// as the team row.
func (s *TeamService) Delete(ctx context.Context, teamID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM team_users WHERE team_id = ?", teamID).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", teamID).Delete(&models.TeamRole{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", teamID).Delete(&models.Invite{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("team_id = ?", teamID).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Team{}, teamID).Error
	})
}

// Leave disconnects the caller from the team. A team must retain at least one
// role-holder, so the last one cannot leave; the count runs inside the same
// transaction as the removal, with the role rows locked against a concurrent
// leave.
func (s *TeamService) Leave(ctx context.Context, teamID, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// SQLite serializes writers on its own; the row lock matters on Postgres.
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var roles []models.TeamRole
		if err := q.Where("team_id = ?", teamID).Find(&roles).Error; err != nil {
			return err
		}
		if len(roles) == 1 {
			return BadRequest("You are the last member of this team. Please transfer ownership before leaving.")
		}

		if err := tx.Exec("DELETE FROM team_users WHERE team_id = ? AND user_id = ?", teamID, userID).Error; err != nil {
			return err
		}
		return tx.Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&models.TeamRole{}).Error
	})
}

// UpdateRole changes an existing member's role record. Demoting the last
// admin is intentionally not special-cased.
func (s *TeamService) UpdateRole(ctx context.Context, teamID, userID uint, role models.RoleName) error {
	if !role.Valid() {
		return BadRequest("Unknown role")
	}

	result := s.db.WithContext(ctx).
		Model(&models.TeamRole{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Update("name", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return BadRequest("Member not found")
	}
	return nil
}

// ForUser returns every team the user belongs to.
func (s *TeamService) ForUser(ctx context.Context, userID uint) ([]models.Team, error) {
	return s.teams.ForUser(ctx, userID)
}

// Members returns the team's users with their roles.
func (s *TeamService) Members(ctx context.Context, teamID uint) ([]repository.TeamMember, error) {
	return s.teams.Members(ctx, teamID)
}

// addMembership inserts the user<->team join row, tolerating an existing one.
func addMembership(tx *gorm.DB, teamID, userID uint) error {
	return tx.Table("team_users").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(map[string]interface{}{"team_id": teamID, "user_id": userID}).Error
}
