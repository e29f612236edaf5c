package service

import (
	"context"
	"errors"
	"time"

	"teamloft/internal/models"
	"teamloft/internal/repository"
	"teamloft/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionTokenBytes = 32

// AuthService owns credential registration, sign-in and session issuance.
type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	ttl      time.Duration
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		ttl:      sessionTTL,
	}
}

// Register creates a user with a bcrypt credential hash and signs them in.
func (s *AuthService) Register(ctx context.Context, email, password, name, userAgent, ip string) (*models.User, *models.Session, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, nil, Conflict("Email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, Conflict("Email already registered")
		}
		return nil, nil, err
	}

	session, err := s.CreateSession(ctx, user.ID, userAgent, ip)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login verifies credentials and issues a session. The same error covers an
// unknown email, an OAuth-only user, and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password, userAgent, ip string) (*models.User, *models.Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, Unauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, nil, err
	}

	if !user.HasPassword() {
		return nil, nil, Unauthorized("Invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, Unauthorized("Invalid credentials")
	}

	session, err := s.CreateSession(ctx, user.ID, userAgent, ip)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout invalidates the session behind the given token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Invalidate(ctx, token)
}

// CreateSession issues a fresh opaque session token for the user.
func (s *AuthService) CreateSession(ctx context.Context, userID uint, userAgent, ip string) (*models.Session, error) {
	token, err := utils.GenerateSecureToken(sessionTokenBytes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &models.Session{
		UserID:    userID,
		Token:     token,
		UserAgent: userAgent,
		IPAddress: ip,
		LastUsed:  now,
		ExpiresAt: now.Add(s.ttl),
		IsActive:  true,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
