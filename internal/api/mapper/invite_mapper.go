package mapper

import (
	"time"

	"teamloft/internal/api/dto/v1/invite"
	"teamloft/internal/models"
)

// InviteToResponse converts an invitation to its DTO. The code never leaves
// the server except inside the invitation email.
func InviteToResponse(i *models.Invite) *invite.InviteResponse {
	if i == nil {
		return nil
	}
	return &invite.InviteResponse{
		ID:        i.ID,
		Email:     i.Email,
		Role:      string(i.Role),
		CreatedAt: i.CreatedAt.Format(time.RFC3339),
		ExpiresAt: i.ExpiresAt.Format(time.RFC3339),
	}
}

// InvitesToResponses converts a slice of invitations to DTOs
func InvitesToResponses(invites []models.Invite) []invite.InviteResponse {
	result := make([]invite.InviteResponse, len(invites))
	for i := range invites {
		result[i] = *InviteToResponse(&invites[i])
	}
	return result
}
