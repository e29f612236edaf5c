package middleware

import (
	"net/http"
	"strings"

	"teamloft/internal/api/constants"
	"teamloft/internal/api/dto/common"
	"teamloft/internal/models"
	"teamloft/internal/repository"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the caller's identity from the session cookie or a
// bearer token and attaches the user to the request context.
type AuthMiddleware struct {
	sessions repository.SessionRepository
}

func NewAuthMiddleware(sessions repository.SessionRepository) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireAuth aborts with UNAUTHORIZED unless the request carries a valid
// session.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.sessionToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Authentication required", nil))
			c.Abort()
			return
		}

		session, err := m.sessions.GetActiveByToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid or expired session", nil))
			c.Abort()
			return
		}

		// Best effort, the request proceeds either way.
		_ = m.sessions.Touch(c.Request.Context(), session)

		c.Set(constants.ContextKeySession, session)
		c.Set(constants.ContextKeyUser, &session.User)
		c.Set(constants.ContextKeyUserID, session.User.ID)
		c.Next()
	}
}

// sessionToken extracts the session token from the cookie, falling back to
// the Authorization header.
func (m *AuthMiddleware) sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(constants.CookieSession); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// CurrentUser returns the authenticated user attached by RequireAuth.
func CurrentUser(c *gin.Context) *models.User {
	val, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}
