package handlers

import (
	"net/http"
	"strings"

	"teamloft/internal/api/constants"
	"teamloft/internal/api/dto/common"
	authdto "teamloft/internal/api/dto/v1/auth"
	"teamloft/internal/api/mapper"
	"teamloft/internal/config"
	"teamloft/internal/repository"
	"teamloft/internal/service"
	"teamloft/internal/utils"

	"github.com/gin-gonic/gin"
)

const oauthStateBytes = 24

type AuthHandler struct {
	auth     *service.AuthService
	oauth    *service.OAuthService
	sessions repository.SessionRepository
	cfg      *config.Config
}

func NewAuthHandler(auth *service.AuthService, oauth *service.OAuthService, sessions repository.SessionRepository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		oauth:    oauth,
		sessions: sessions,
		cfg:      cfg,
	}
}

// Register creates a credential-based account and signs the caller in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	user, session, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Name, c.Request.UserAgent(), utils.GetRealIP(c))
	if err != nil {
		handleAPIError(c, err, "Failed to register")
		return
	}

	h.setSessionCookie(c, session.Token)
	utils.HandleCreated(c, gin.H{
		"token": session.Token,
		"user":  mapper.UserToAuthUserResponse(user),
	})
}

// Login verifies credentials and issues a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	user, session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, c.Request.UserAgent(), utils.GetRealIP(c))
	if err != nil {
		handleAPIError(c, err, "Failed to sign in")
		return
	}

	h.setSessionCookie(c, session.Token)
	utils.HandleSuccess(c, gin.H{
		"token": session.Token,
		"user":  mapper.UserToAuthUserResponse(user),
	})
}

// Logout invalidates the caller's session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := h.sessionToken(c)
	if token != "" {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			handleAPIError(c, err, "Failed to sign out")
			return
		}
	}

	h.clearSessionCookie(c)
	utils.HandleMessage(c, "Signed out")
}

// GetSession reports the current session state. Public: an anonymous caller
// gets authenticated=false instead of an error.
func (h *AuthHandler) GetSession(c *gin.Context) {
	token := h.sessionToken(c)
	if token == "" {
		utils.HandleSuccess(c, authdto.SessionResponse{Authenticated: false})
		return
	}

	session, err := h.sessions.GetActiveByToken(c.Request.Context(), token)
	if err != nil {
		utils.HandleSuccess(c, authdto.SessionResponse{Authenticated: false})
		return
	}

	utils.HandleSuccess(c, authdto.SessionResponse{
		Authenticated: true,
		User:          mapper.UserToAuthUserResponse(&session.User),
		ExpiresAt:     session.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// GoogleRedirect starts the Google OAuth flow.
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	if !h.oauth.Enabled() {
		c.JSON(http.StatusNotFound, common.NewErrorResponse(common.ErrCodeNotFound, "Google sign-in is not configured", nil))
		return
	}

	state, err := utils.GenerateSecureToken(oauthStateBytes)
	if err != nil {
		handleAPIError(c, err, "Failed to start sign-in")
		return
	}

	c.SetCookie(constants.CookieOAuthState, state, constants.CookieDurationState, constants.CookiePathRoot, "", h.cfg.IsProduction(), true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthURL(state))
}

// GoogleCallback completes the Google OAuth flow and issues a session.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if !h.oauth.Enabled() {
		c.JSON(http.StatusNotFound, common.NewErrorResponse(common.ErrCodeNotFound, "Google sign-in is not configured", nil))
		return
	}

	stateCookie, err := c.Cookie(constants.CookieOAuthState)
	if err != nil || stateCookie == "" || c.Query("state") != stateCookie {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid OAuth state", nil))
		return
	}
	c.SetCookie(constants.CookieOAuthState, "", -1, constants.CookiePathRoot, "", h.cfg.IsProduction(), true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeBadRequest, "Missing authorization code", nil))
		return
	}

	user, err := h.oauth.HandleCallback(c.Request.Context(), code)
	if err != nil {
		handleAPIError(c, err, "Failed to sign in with Google")
		return
	}

	session, err := h.auth.CreateSession(c.Request.Context(), user.ID, c.Request.UserAgent(), utils.GetRealIP(c))
	if err != nil {
		handleAPIError(c, err, "Failed to sign in with Google")
		return
	}

	h.setSessionCookie(c, session.Token)
	c.Redirect(http.StatusTemporaryRedirect, h.cfg.ClientURL)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(constants.CookieSession, token, constants.CookieDurationWeek, constants.CookiePathRoot, "", h.cfg.IsProduction(), true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(constants.CookieSession, "", -1, constants.CookiePathRoot, "", h.cfg.IsProduction(), true)
}

func (h *AuthHandler) sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(constants.CookieSession); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
