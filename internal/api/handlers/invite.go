package handlers

import (
	"strconv"

	invitedto "teamloft/internal/api/dto/v1/invite"
	"teamloft/internal/api/mapper"
	"teamloft/internal/api/middleware"
	"teamloft/internal/models"
	"teamloft/internal/service"
	"teamloft/internal/utils"

	"github.com/gin-gonic/gin"
)

type InviteHandler struct {
	invites *service.InviteService
}

func NewInviteHandler(invites *service.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

// InviteMembers creates pending invitations and emails each recipient.
func (h *InviteHandler) InviteMembers(c *gin.Context) {
	var req invitedto.InviteMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	batch := make([]service.NewInvite, len(req.Invites))
	for i, inv := range req.Invites {
		batch[i] = service.NewInvite{Email: inv.Email, Role: models.RoleName(inv.Role)}
	}

	team := middleware.CurrentTeam(c)
	user := middleware.CurrentUser(c)
	if err := h.invites.InviteMembers(c.Request.Context(), team, user, batch); err != nil {
		handleAPIError(c, err, "Failed to invite members")
		return
	}

	utils.HandleMessage(c, "Invitations sent")
}

// List returns the team's pending invitations.
func (h *InviteHandler) List(c *gin.Context) {
	team := middleware.CurrentTeam(c)
	invites, err := h.invites.List(c.Request.Context(), team.ID)
	if err != nil {
		handleAPIError(c, err, "Failed to list invites")
		return
	}
	utils.HandleSuccess(c, mapper.InvitesToResponses(invites))
}

// Resend sends the invitation email again with the original code.
func (h *InviteHandler) Resend(c *gin.Context) {
	inviteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		handleAPIError(c, service.BadRequest("id must be a number"), "")
		return
	}

	team := middleware.CurrentTeam(c)
	user := middleware.CurrentUser(c)
	if err := h.invites.Resend(c.Request.Context(), team, user, uint(inviteID)); err != nil {
		handleAPIError(c, err, "Failed to resend invite")
		return
	}

	utils.HandleMessage(c, "Invitation resent")
}

// Delete revokes a pending invitation.
func (h *InviteHandler) Delete(c *gin.Context) {
	inviteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		handleAPIError(c, service.BadRequest("id must be a number"), "")
		return
	}

	team := middleware.CurrentTeam(c)
	if err := h.invites.Delete(c.Request.Context(), team.ID, uint(inviteID)); err != nil {
		handleAPIError(c, err, "Failed to delete invite")
		return
	}

	utils.HandleNoContent(c)
}

// Accept redeems an invitation code and joins the caller to the team.
func (h *InviteHandler) Accept(c *gin.Context) {
	var req invitedto.AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	team, err := h.invites.Accept(c.Request.Context(), user, req.Code, req.Email)
	if err != nil {
		handleAPIError(c, err, "Failed to accept invite")
		return
	}

	utils.HandleSuccess(c, mapper.TeamToSummary(team))
}
