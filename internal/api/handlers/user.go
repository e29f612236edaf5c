package handlers

import (
	userdto "teamloft/internal/api/dto/v1/user"
	"teamloft/internal/api/mapper"
	"teamloft/internal/api/middleware"
	"teamloft/internal/repository"
	"teamloft/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// Get returns the caller's profile.
func (h *UserHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)
	fresh, err := h.users.Get(c.Request.Context(), user.ID)
	if err != nil {
		handleAPIError(c, err, "Failed to load profile")
		return
	}
	utils.HandleSuccess(c, mapper.UserToUserResponse(fresh))
}

// Update applies partial profile changes.
func (h *UserHandler) Update(c *gin.Context) {
	var req userdto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	fresh, err := h.users.Get(c.Request.Context(), user.ID)
	if err != nil {
		handleAPIError(c, err, "Failed to load profile")
		return
	}

	mapper.ApplyUpdateUserRequest(fresh, &req)
	if err := h.users.Update(c.Request.Context(), fresh); err != nil {
		handleAPIError(c, err, "Failed to update profile")
		return
	}

	utils.HandleSuccess(c, mapper.UserToUserResponse(fresh))
}

// FinishOnboarding records the onboarding answers and marks the caller
// onboarded.
func (h *UserHandler) FinishOnboarding(c *gin.Context) {
	var req userdto.FinishOnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	fresh, err := h.users.Get(c.Request.Context(), user.ID)
	if err != nil {
		handleAPIError(c, err, "Failed to load profile")
		return
	}

	fresh.Name = req.Name
	fresh.JobTitle = req.JobTitle
	fresh.Interests = req.Interests
	fresh.HasOnboarded = true
	if err := h.users.Update(c.Request.Context(), fresh); err != nil {
		handleAPIError(c, err, "Failed to finish onboarding")
		return
	}

	utils.HandleSuccess(c, mapper.UserToUserResponse(fresh))
}

// SelectTeam stores the caller's current-team preference. A null teamId
// clears it. The preference is a UI pointer only; team-scoped operations
// always take the team as an explicit request parameter.
func (h *UserHandler) SelectTeam(c *gin.Context) {
	var req userdto.SelectTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	fresh, err := h.users.Get(c.Request.Context(), user.ID)
	if err != nil {
		handleAPIError(c, err, "Failed to load profile")
		return
	}

	fresh.CurrentTeamID = req.TeamID
	if err := h.users.Update(c.Request.Context(), fresh); err != nil {
		handleAPIError(c, err, "Failed to select team")
		return
	}

	utils.HandleMessage(c, "Team selected")
}
