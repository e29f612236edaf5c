package invite

// NewInvite is one entry of an inviteMembers batch
type NewInvite struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=Admin Member"`
}

// InviteMembersRequest represents the payload for inviting members to a team
type InviteMembersRequest struct {
	Invites []NewInvite `json:"invites" binding:"required,min=1,dive"`
}

// AcceptInviteRequest redeems an invitation by its code and email
type AcceptInviteRequest struct {
	Code  string `json:"code" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// InviteResponse represents a pending invitation
type InviteResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
}
