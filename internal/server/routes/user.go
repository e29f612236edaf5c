package routes

import (
	"teamloft/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes configures the caller's profile routes
func SetupUserRoutes(rg *gin.RouterGroup, user *handlers.UserHandler, m *Middleware) {
	group := rg.Group("/user")
	group.Use(m.Auth.RequireAuth())
	{
		group.GET("", user.Get)
		group.PUT("", user.Update)
		group.POST("/onboarding", user.FinishOnboarding)
		group.POST("/select-team", user.SelectTeam)
	}
}
