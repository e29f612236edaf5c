package team

// CreateTeamRequest represents the payload for creating a team
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=1,max=24"`
}

// UpdateTeamRequest represents the payload for renaming a team or changing its slug
type UpdateTeamRequest struct {
	Name string `json:"name" binding:"required,min=1,max=24"`
	Slug string `json:"slug" binding:"required,slug"`
}

// UpdateRoleRequest changes an existing member's role
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=Admin Member"`
}

// RoleResponse is a role record within a team
type RoleResponse struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
}

// SubscriptionResponse is the read-only billing reference carried by a team
type SubscriptionResponse struct {
	Status           string `json:"status"`
	PriceID          string `json:"price_id,omitempty"`
	ProductName      string `json:"product_name,omitempty"`
	CurrentPeriodEnd string `json:"current_period_end,omitempty"`
}

// TeamResponse represents a fully resolved team
type TeamResponse struct {
	ID           uint                  `json:"id"`
	Name         string                `json:"name"`
	Slug         string                `json:"slug"`
	Roles        []RoleResponse        `json:"roles,omitempty"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
	CreatedAt    string                `json:"created_at"`
}

// TeamSummaryResponse identifies a team for listings and redirects
type TeamSummaryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// MemberResponse represents a team member with their role
type MemberResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Image    string `json:"image,omitempty"`
	JobTitle string `json:"jobtitle,omitempty"`
	Role     string `json:"role"`
}
