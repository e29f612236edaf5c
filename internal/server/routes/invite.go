package routes

import (
	"teamloft/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupInviteRoutes configures invitation redemption. Accepting only needs a
// session; the team comes from the invite itself.
func SetupInviteRoutes(rg *gin.RouterGroup, invite *handlers.InviteHandler, m *Middleware) {
	group := rg.Group("/invites")
	group.Use(m.Auth.RequireAuth())
	{
		group.POST("/accept", invite.Accept)
	}
}
