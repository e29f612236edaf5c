package user

// UpdateUserRequest represents the payload for updating the caller's profile
type UpdateUserRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1,max=50"`
	JobTitle     *string  `json:"jobtitle"`
	Interests    []string `json:"interests"`
	Image        *string  `json:"image" binding:"omitempty,url"`
	HasOnboarded *bool    `json:"has_onboarded"`
}

// FinishOnboardingRequest completes the onboarding flow
type FinishOnboardingRequest struct {
	Name      string   `json:"name" binding:"required,min=1,max=50"`
	JobTitle  string   `json:"jobtitle" binding:"required"`
	Interests []string `json:"interests" binding:"required"`
}

// SelectTeamRequest stores the caller's current-team preference.
// A null teamId clears the selection.
type SelectTeamRequest struct {
	TeamID *uint `json:"teamId"`
}

// UserResponse represents the user data returned in API responses
type UserResponse struct {
	ID            uint     `json:"id"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	Image         string   `json:"image,omitempty"`
	JobTitle      string   `json:"jobtitle,omitempty"`
	Interests     []string `json:"interests,omitempty"`
	HasOnboarded  bool     `json:"has_onboarded"`
	CurrentTeamID *uint    `json:"current_team_id,omitempty"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}
