package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"teamloft/internal/mailer"
	"teamloft/internal/models"
	"teamloft/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeMailer records outbound messages instead of delivering them.
type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (f *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) messages() []mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mailer.Message(nil), f.sent...)
}

func newInviteService(db *gorm.DB, mail mailer.Mailer) *InviteService {
	return NewInviteService(db, repository.NewInviteRepository(db), mail, "http://localhost:3000")
}

func setupTeam(t *testing.T, db *gorm.DB, owner *models.User) *models.Team {
	t.Helper()
	team, err := newTeamService(db).Create(context.Background(), owner.ID, "Invite Crew")
	require.NoError(t, err)
	return team
}

func TestInviteService_InviteMembersAndAccept(t *testing.T) {
	db := openTestDB(t)
	mail := &fakeMailer{}
	svc := newInviteService(db, mail)
	owner := seedUser(t, db, "owner@example.com")
	team := setupTeam(t, db, owner)

	err := svc.InviteMembers(context.Background(), team, owner, []NewInvite{
		{Email: "alice@example.com", Role: models.RoleAdmin},
		{Email: "bob@example.com", Role: models.RoleMember},
	})
	require.NoError(t, err)

	invites, err := svc.List(context.Background(), team.ID)
	require.NoError(t, err)
	require.Len(t, invites, 2)
	for _, inv := range invites {
		require.NotEmpty(t, inv.Code)
		require.False(t, inv.Expired())
	}
	require.Len(t, mail.messages(), 2)

	// Alice accepts and lands in the team with the invited role.
	alice := seedUser(t, db, "alice@example.com")
	var aliceInvite models.Invite
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&aliceInvite).Error)

	joined, err := svc.Accept(context.Background(), alice, aliceInvite.Code, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, team.ID, joined.ID)
	require.Equal(t, team.Slug, joined.Slug)

	var role models.TeamRole
	require.NoError(t, db.Where("team_id = ? AND user_id = ?", team.ID, alice.ID).First(&role).Error)
	require.Equal(t, models.RoleAdmin, role.Name)
	require.EqualValues(t, 1, countRows(t, db, "team_users", "team_id = ? AND user_id = ?", team.ID, alice.ID))

	// The invitation is consumed; a second redemption fails.
	_, err = svc.Accept(context.Background(), alice, aliceInvite.Code, "alice@example.com")
	requireServiceError(t, err, CodeBadRequest, "Invite not found")
}

func TestInviteService_InviteMembers_DuplicateKeepsOriginalCode(t *testing.T) {
	db := openTestDB(t)
	mail := &fakeMailer{}
	svc := newInviteService(db, mail)
	owner := seedUser(t, db, "owner@example.com")
	team := setupTeam(t, db, owner)

	batch := []NewInvite{{Email: "alice@example.com", Role: models.RoleMember}}
	require.NoError(t, svc.InviteMembers(context.Background(), team, owner, batch))

	var original models.Invite
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&original).Error)

	// Inviting the same address again keeps the stored row and its code.
	require.NoError(t, svc.InviteMembers(context.Background(), team, owner, batch))
	require.EqualValues(t, 1, countRows(t, db, "invites", "team_id = ?", team.ID))

	var after models.Invite
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&after).Error)
	require.Equal(t, original.Code, after.Code)

	// The second email carries the code that is actually redeemable.
	msgs := mail.messages()
	require.Len(t, msgs, 2)
	require.Contains(t, msgs[1].HTML, original.Code)
}

func TestInviteService_InviteMembers_DedupesBatch(t *testing.T) {
	db := openTestDB(t)
	mail := &fakeMailer{}
	svc := newInviteService(db, mail)
	owner := seedUser(t, db, "owner@example.com")
	team := setupTeam(t, db, owner)

	err := svc.InviteMembers(context.Background(), team, owner, []NewInvite{
		{Email: "alice@example.com", Role: models.RoleMember},
		{Email: "alice@example.com", Role: models.RoleAdmin},
	})
	require.NoError(t, err)

	require.EqualValues(t, 1, countRows(t, db, "invites", "team_id = ?", team.ID))
	require.Len(t, mail.messages(), 1)
}

func TestInviteService_InviteMembers_UnknownRole(t *testing.T) {
	db := openTestDB(t)
	svc := newInviteService(db, &fakeMailer{})
	owner := seedUser(t, db, "owner@example.com")
	team := setupTeam(t, db, owner)

	err := svc.InviteMembers(context.Background(), team, owner, []NewInvite{
		{Email: "alice@example.com", Role: "Owner"},
	})
	requireServiceError(t, err, CodeBadRequest, "Unknown role")
}

func TestInviteService_Accept_Expired(t *testing.T) {
	db := openTestDB(t)
	svc := newInviteService(db, &fakeMailer{})
	owner := seedUser(t, db, "owner@example.com")
	team := setupTeam(t, db, owner)

	require.NoError(t, db.Create(&models.Invite{
		TeamID:    team.ID,
		Email:     "late@example.com",
		Role:      models.RoleMember,
		Code:      "expired-code",
		ExpiresAt: time.Now().Add(-time.Hour),
	}).Error)

	late := seedUser(t, db, "late@example.com")
	_, err := svc.Accept(context.Background(), late, "expired-code", "late@example.com")
	requireServiceError(t, err, CodeBadRequest, "Invite has expired. Please ask for a new invitation.")
}

func TestInviteService_Accept_WrongEmail(t *testing.T) {
	db := openTestDB(t)
	mail := &fakeMailer{}
	svc := newInviteService(db, mail)
	owner := seedUser(t, db, "owner@example.com")
	team := setupTeam(t, db, owner)

	require.NoError(t, svc.InviteMembers(context.Background(), team, owner, []NewInvite{
		{Email: "alice@example.com", Role: models.RoleMember},
	}))

	var inv models.Invite
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&inv).Error)

	mallory := seedUser(t, db, "mallory@example.com")
	_, err := svc.Accept(context.Background(), mallory, inv.Code, "mallory@example.com")
	requireServiceError(t, err, CodeBadRequest, "Invite not found")
}

func TestInviteService_Delete(t *testing.T) {
	db := openTestDB(t)
	svc := newInviteService(db, &fakeMailer{})
	owner := seedUser(t, db, "owner@example.com")
	team := setupTeam(t, db, owner)

	require.NoError(t, svc.InviteMembers(context.Background(), team, owner, []NewInvite{
		{Email: "alice@example.com", Role: models.RoleMember},
	}))

	var inv models.Invite
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&inv).Error)

	require.NoError(t, svc.Delete(context.Background(), team.ID, inv.ID))
	require.EqualValues(t, 0, countRows(t, db, "invites", "team_id = ?", team.ID))

	err := svc.Delete(context.Background(), team.ID, inv.ID)
	requireServiceError(t, err, CodeBadRequest, "Invite not found")
}

func TestInviteService_Resend_NotFound(t *testing.T) {
	db := openTestDB(t)
	svc := newInviteService(db, &fakeMailer{})
	owner := seedUser(t, db, "owner@example.com")
	team := setupTeam(t, db, owner)

	err := svc.Resend(context.Background(), team, owner, 9999)
	requireServiceError(t, err, CodeBadRequest, "Invite not found")
}

func TestInviteService_Delete_OtherTeamScope(t *testing.T) {
	db := openTestDB(t)
	svc := newInviteService(db, &fakeMailer{})
	owner := seedUser(t, db, "owner@example.com")
	team := setupTeam(t, db, owner)
	other, err := newTeamService(db).Create(context.Background(), owner.ID, "Other Crew")
	require.NoError(t, err)

	require.NoError(t, svc.InviteMembers(context.Background(), team, owner, []NewInvite{
		{Email: "alice@example.com", Role: models.RoleMember},
	}))
	var inv models.Invite
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&inv).Error)

	// An invite cannot be deleted through another team's scope.
	err = svc.Delete(context.Background(), other.ID, inv.ID)
	requireServiceError(t, err, CodeBadRequest, "Invite not found")
	require.EqualValues(t, 1, countRows(t, db, "invites", "team_id = ?", team.ID))
}
