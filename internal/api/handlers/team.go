package handlers

import (
	"strconv"

	teamdto "teamloft/internal/api/dto/v1/team"
	"teamloft/internal/api/mapper"
	"teamloft/internal/api/middleware"
	"teamloft/internal/models"
	"teamloft/internal/service"
	"teamloft/internal/utils"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teams *service.TeamService
}

func NewTeamHandler(teams *service.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// GetAll lists every team the caller belongs to.
func (h *TeamHandler) GetAll(c *gin.Context) {
	user := middleware.CurrentUser(c)
	teams, err := h.teams.ForUser(c.Request.Context(), user.ID)
	if err != nil {
		handleAPIError(c, err, "Failed to list teams")
		return
	}
	utils.HandleSuccess(c, mapper.TeamsToSummaries(teams))
}

// Get returns the resolved team. Membership is already established by the
// route guard.
func (h *TeamHandler) Get(c *gin.Context) {
	team := middleware.CurrentTeam(c)
	utils.HandleSuccess(c, mapper.TeamToTeamResponse(team))
}

// Create makes a new team with the caller as its Admin.
func (h *TeamHandler) Create(c *gin.Context) {
	var req teamdto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	team, err := h.teams.Create(c.Request.Context(), user.ID, req.Name)
	if err != nil {
		handleAPIError(c, err, "Failed to create team")
		return
	}

	utils.HandleCreated(c, mapper.TeamToTeamResponse(team))
}

// Update renames the team or changes its slug.
func (h *TeamHandler) Update(c *gin.Context) {
	var req teamdto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	team := middleware.CurrentTeam(c)
	if err := h.teams.Update(c.Request.Context(), team.ID, req.Name, req.Slug); err != nil {
		handleAPIError(c, err, "Failed to update team")
		return
	}

	utils.HandleMessage(c, "Team updated")
}

// Delete removes the team and everything scoped to it.
func (h *TeamHandler) Delete(c *gin.Context) {
	team := middleware.CurrentTeam(c)
	if err := h.teams.Delete(c.Request.Context(), team.ID); err != nil {
		handleAPIError(c, err, "Failed to delete team")
		return
	}
	utils.HandleNoContent(c)
}

// Leave removes the caller's own membership.
func (h *TeamHandler) Leave(c *gin.Context) {
	team := middleware.CurrentTeam(c)
	user := middleware.CurrentUser(c)
	if err := h.teams.Leave(c.Request.Context(), team.ID, user.ID); err != nil {
		handleAPIError(c, err, "Failed to leave team")
		return
	}
	utils.HandleMessage(c, "You have left the team")
}

// Members lists the team's members with their roles.
func (h *TeamHandler) Members(c *gin.Context) {
	team := middleware.CurrentTeam(c)
	members, err := h.teams.Members(c.Request.Context(), team.ID)
	if err != nil {
		handleAPIError(c, err, "Failed to list members")
		return
	}
	utils.HandleSuccess(c, mapper.MembersToResponses(members))
}

// UpdateRole changes another member's role record.
func (h *TeamHandler) UpdateRole(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		handleAPIError(c, service.BadRequest("userId must be a number"), "")
		return
	}

	var req teamdto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	team := middleware.CurrentTeam(c)
	if err := h.teams.UpdateRole(c.Request.Context(), team.ID, uint(userID), models.RoleName(req.Role)); err != nil {
		handleAPIError(c, err, "Failed to update role")
		return
	}

	utils.HandleMessage(c, "Role updated")
}
