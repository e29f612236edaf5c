package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"teamloft/internal/models"
	"teamloft/internal/repository"

	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// OAuthService handles Google federated sign-in: exchanging the authorization
// code, resolving or provisioning the local user, and linking the provider
// account.
type OAuthService struct {
	users repository.UserRepository
	conf  *oauth2.Config
}

func NewOAuthService(users repository.UserRepository, clientID, clientSecret, redirectURL string) *OAuthService {
	var conf *oauth2.Config
	if clientID != "" && clientSecret != "" {
		conf = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     googleEndpoint,
		}
	}
	return &OAuthService{users: users, conf: conf}
}

// Enabled reports whether Google sign-in is configured.
func (s *OAuthService) Enabled() bool {
	return s.conf != nil
}

// AuthURL returns the provider consent URL bound to the given state.
func (s *OAuthService) AuthURL(state string) string {
	return s.conf.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type googleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// HandleCallback exchanges the authorization code and returns the local user,
// creating and linking one as needed. An existing user with the same email is
// linked rather than duplicated.
func (s *OAuthService) HandleCallback(ctx context.Context, code string) (*models.User, error) {
	token, err := s.conf.Exchange(ctx, code)
	if err != nil {
		return nil, Unauthorized("OAuth sign-in failed")
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	if profile.Email == "" {
		return nil, Unauthorized("OAuth provider returned no email")
	}

	user, err := s.users.GetByProviderAccount(ctx, models.ProviderGoogle, profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err = s.users.GetByEmail(ctx, profile.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{
			Email: profile.Email,
			Name:  profile.Name,
			Image: profile.Picture,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	account := &models.Account{
		UserID:            user.ID,
		Provider:          models.ProviderGoogle,
		ProviderAccountID: profile.ID,
	}
	if err := s.users.LinkAccount(ctx, account); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *OAuthService) fetchProfile(ctx context.Context, token *oauth2.Token) (*googleProfile, error) {
	client := s.conf.Client(ctx, token)
	resp, err := client.Get(googleUserinfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("userinfo returned %d: %s", resp.StatusCode, string(detail))
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	return &profile, nil
}
