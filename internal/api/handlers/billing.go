package handlers

import (
	"teamloft/internal/api/mapper"
	"teamloft/internal/api/middleware"
	"teamloft/internal/repository"
	"teamloft/internal/utils"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	teams repository.TeamRepository
}

func NewBillingHandler(teams repository.TeamRepository) *BillingHandler {
	return &BillingHandler{teams: teams}
}

// Get returns the team's subscription, or null when none has ever been
// created. Admin access is enforced by the route guard.
func (h *BillingHandler) Get(c *gin.Context) {
	team := middleware.CurrentTeam(c)
	sub, err := h.teams.Subscription(c.Request.Context(), team.ID)
	if err != nil {
		handleAPIError(c, err, "Failed to load subscription")
		return
	}
	utils.HandleSuccess(c, mapper.SubscriptionToResponse(sub))
}
