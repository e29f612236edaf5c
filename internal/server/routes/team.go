package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupTeamRoutes configures team routes. Listing and creation only need a
// session; everything under /team resolves the team from the request and
// checks the caller's standing in it.
func SetupTeamRoutes(rg *gin.RouterGroup, h *Handlers, m *Middleware) {
	teams := rg.Group("/teams")
	teams.Use(m.Auth.RequireAuth())
	{
		teams.GET("", h.Team.GetAll)
		teams.POST("", h.Team.Create)
	}

	member := rg.Group("/team")
	member.Use(m.Auth.RequireAuth(), m.Team.RequireMember())
	{
		member.GET("", h.Team.Get)
		member.GET("/members", h.Team.Members)
		member.GET("/invites", h.Invite.List)
		member.POST("/leave", h.Team.Leave)
	}

	admin := rg.Group("/team")
	admin.Use(m.Auth.RequireAuth(), m.Team.RequireAdmin())
	{
		admin.PUT("", h.Team.Update)
		admin.DELETE("", h.Team.Delete)
		admin.GET("/billing", h.Billing.Get)
		admin.POST("/invites", h.Invite.InviteMembers)
		admin.POST("/invites/:id/resend", h.Invite.Resend)
		admin.DELETE("/invites/:id", h.Invite.Delete)
		admin.PUT("/members/:userId/role", h.Team.UpdateRole)
	}
}
