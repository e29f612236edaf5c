package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"teamloft/internal/logging"
	"teamloft/internal/mailer"
	"teamloft/internal/models"
	"teamloft/internal/repository"
	"teamloft/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultInviteTTL bounds how long a pending invitation stays redeemable.
const DefaultInviteTTL = 14 * 24 * time.Hour

// inviteCodeBytes sized so codes are unguessable (128 bits of entropy).
const inviteCodeBytes = 16

// NewInvite is one entry of an invite batch.
type NewInvite struct {
	Email string
	Role  models.RoleName
}

// InviteService owns the invitation lifecycle: batch creation with email
// notification, listing, resending, deletion, and acceptance.
type InviteService struct {
	db        *gorm.DB
	invites   repository.InviteRepository
	mail      mailer.Mailer
	clientURL string
	ttl       time.Duration
	logger    *logging.Logger
}

func NewInviteService(db *gorm.DB, invites repository.InviteRepository, mail mailer.Mailer, clientURL string) *InviteService {
	return &InviteService{
		db:        db,
		invites:   invites,
		mail:      mail,
		clientURL: clientURL,
		ttl:       DefaultInviteTTL,
		logger:    logging.GetLogger(),
	}
}

// InviteMembers inserts invitation rows for the batch, skipping entries that
// already have a pending invite on this team, then dispatches one notification
// email per invitee concurrently. Row creation commits before any email goes
// out; a failed email leaves the invitation valid and redeemable by code.
func (s *InviteService) InviteMembers(ctx context.Context, team *models.Team, inviter *models.User, batch []NewInvite) error {
	rows := make([]models.Invite, 0, len(batch))
	emails := make(map[string]bool, len(batch))
	for _, in := range batch {
		if !in.Role.Valid() {
			return BadRequest("Unknown role")
		}
		if emails[in.Email] {
			continue
		}
		emails[in.Email] = true

		code, err := utils.GenerateSecureToken(inviteCodeBytes)
		if err != nil {
			return err
		}
		rows = append(rows, models.Invite{
			TeamID:    team.ID,
			Email:     in.Email,
			Role:      in.Role,
			Code:      code,
			ExpiresAt: time.Now().Add(s.ttl),
		})
	}

	if err := s.invites.CreateBatch(ctx, rows); err != nil {
		return err
	}

	// Re-read the pending rows: an entry skipped as a duplicate keeps its
	// original code, and the email must carry the code that is actually
	// stored.
	pending, err := s.invites.ListByTeam(ctx, team.ID)
	if err != nil {
		return err
	}
	byEmail := make(map[string]models.Invite, len(pending))
	for _, inv := range pending {
		byEmail[inv.Email] = inv
	}

	inviterName := inviter.Name
	if inviterName == "" {
		inviterName = team.Name
	}

	var wg sync.WaitGroup
	for email := range emails {
		inv, ok := byEmail[email]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(inv models.Invite) {
			defer wg.Done()
			msg := mailer.InviteEmail(s.clientURL, inviterName, team.Name, inv.Email, inv.Code)
			if err := s.mail.Send(ctx, msg); err != nil {
				s.logger.Error("Failed to send invite email to %s for team %d: %v", inv.Email, team.ID, err)
			}
		}(inv)
	}
	wg.Wait()

	return nil
}

// List returns the team's pending invitations.
func (s *InviteService) List(ctx context.Context, teamID uint) ([]models.Invite, error) {
	return s.invites.ListByTeam(ctx, teamID)
}

// Resend re-sends the notification email for an existing invitation without
// mutating the row. Delivery is fire-and-forget.
func (s *InviteService) Resend(ctx context.Context, team *models.Team, inviter *models.User, inviteID uint) error {
	inv, err := s.invites.GetByTeamAndID(ctx, team.ID, inviteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return BadRequest("Invite not found")
	}
	if err != nil {
		return err
	}

	inviterName := inviter.Name
	if inviterName == "" {
		inviterName = team.Name
	}

	msg := mailer.InviteEmail(s.clientURL, inviterName, team.Name, inv.Email, inv.Code)
	go func() {
		// The request context ends with the response; delivery gets its own.
		sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mail.Send(sendCtx, msg); err != nil {
			s.logger.Error("Failed to resend invite email to %s for team %d: %v", inv.Email, team.ID, err)
		}
	}()

	return nil
}

// Delete hard-deletes an invitation scoped to the team.
func (s *InviteService) Delete(ctx context.Context, teamID, inviteID uint) error {
	_, err := s.invites.GetByTeamAndID(ctx, teamID, inviteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return BadRequest("Invite not found")
	}
	if err != nil {
		return err
	}
	return s.invites.Delete(ctx, inviteID)
}

// Accept redeems an invitation by its (code, email) pair: the row is consumed
// and, in the same transaction, the caller joins the team with the
// invitation's stored role. Returns the team for the client-side redirect.
func (s *InviteService) Accept(ctx context.Context, user *models.User, code, email string) (*models.Team, error) {
	inv, err := s.invites.GetByCodeAndEmail(ctx, code, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, BadRequest("Invite not found")
	}
	if err != nil {
		return nil, err
	}
	if inv.Expired() {
		return nil, BadRequest("Invite has expired. Please ask for a new invitation.")
	}

	var team models.Team
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The delete doubles as the consumption guard: under concurrent
		// accepts only one transaction removes the row.
		result := tx.Delete(&models.Invite{}, inv.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return BadRequest("Invite not found")
		}

		if err := addMembership(tx, inv.TeamID, user.ID); err != nil {
			return err
		}

		role := models.TeamRole{UserID: user.ID, TeamID: inv.TeamID, Name: inv.Role}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&role).Error; err != nil {
			return err
		}

		return tx.First(&team, inv.TeamID).Error
	})
	if err != nil {
		return nil, err
	}

	return &team, nil
}
