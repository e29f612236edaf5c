package routes

import (
	"strings"

	"teamloft/internal/api/middleware"
	"teamloft/internal/config"
	"teamloft/internal/logging"

	"github.com/gin-gonic/gin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetLogger()

	// Health check endpoint - no auth required
	router.GET("/health", h.Health.Check)

	v1 := router.Group("/api/v1")

	// Auth routes (login/register/oauth are public)
	SetupAuthRoutes(v1, h.Auth, m)

	// Protected routes (auth required)
	SetupUserRoutes(v1, h.User, m)
	SetupTeamRoutes(v1, h, m)
	SetupInviteRoutes(v1, h.Invite, m)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, logger *logging.Logger) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.ClientURL))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		RPS:   10,
		Burst: 20,
	}))
	router.Use(handleTrailingSlash())
}

// handleTrailingSlash middleware removes the need for strict trailing slash matching
func handleTrailingSlash() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path != "/" && strings.HasSuffix(path, "/") {
			c.Request.URL.Path = strings.TrimSuffix(path, "/")
		}
		c.Next()
	}
}
