package service

import (
	"context"
	"testing"
	"time"

	"teamloft/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		time.Hour,
	)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(db)

	user, session, err := svc.Register(context.Background(), "new@example.com", "hunter2hunter2", "New User", "test-agent", "127.0.0.1")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.NotEqual(t, "hunter2hunter2", user.PasswordHash)
	require.NotEmpty(t, session.Token)
	require.True(t, session.IsActive)

	// The fresh session resolves back to the user.
	sessions := repository.NewSessionRepository(db)
	got, err := sessions.GetActiveByToken(context.Background(), session.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.UserID)

	loggedIn, loginSession, err := svc.Login(context.Background(), "new@example.com", "hunter2hunter2", "test-agent", "127.0.0.1")
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
	require.NotEqual(t, session.Token, loginSession.Token)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(db)

	_, _, err := svc.Register(context.Background(), "dup@example.com", "hunter2hunter2", "First", "", "")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "dup@example.com", "hunter2hunter2", "Second", "", "")
	requireServiceError(t, err, CodeConflict, "Email already registered")
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(db)

	_, _, err := svc.Register(context.Background(), "who@example.com", "hunter2hunter2", "Who", "", "")
	require.NoError(t, err)

	// Unknown email, OAuth-only account, and wrong password all produce the
	// same, non-enumerable failure.
	_, _, err = svc.Login(context.Background(), "nobody@example.com", "whatever123", "", "")
	requireServiceError(t, err, CodeUnauthorized, "Invalid credentials")

	_, _, err = svc.Login(context.Background(), "who@example.com", "wrong-password", "", "")
	requireServiceError(t, err, CodeUnauthorized, "Invalid credentials")

	oauthOnly := seedUser(t, db, "oauth@example.com")
	require.Empty(t, oauthOnly.PasswordHash)
	_, _, err = svc.Login(context.Background(), "oauth@example.com", "whatever123", "", "")
	requireServiceError(t, err, CodeUnauthorized, "Invalid credentials")
}

func TestAuthService_Logout(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(db)

	_, session, err := svc.Register(context.Background(), "out@example.com", "hunter2hunter2", "Out", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.Token))

	sessions := repository.NewSessionRepository(db)
	_, err = sessions.GetActiveByToken(context.Background(), session.Token)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
