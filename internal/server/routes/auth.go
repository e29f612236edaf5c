package routes

import (
	"teamloft/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes configures authentication routes
func SetupAuthRoutes(rg *gin.RouterGroup, auth *handlers.AuthHandler, m *Middleware) {
	group := rg.Group("/auth")
	{
		group.POST("/register", auth.Register)
		group.POST("/login", auth.Login)
		group.GET("/session", auth.GetSession)
		group.GET("/google", auth.GoogleRedirect)
		group.GET("/google/callback", auth.GoogleCallback)

		group.POST("/logout", m.Auth.RequireAuth(), auth.Logout)
	}
}
