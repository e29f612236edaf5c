package mapper

import (
	"time"

	"teamloft/internal/api/dto/v1/auth"
	"teamloft/internal/api/dto/v1/user"
	"teamloft/internal/models"
)

// UserToUserResponse converts a domain User model to a UserResponse DTO
func UserToUserResponse(u *models.User) *user.UserResponse {
	if u == nil {
		return nil
	}

	return &user.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Image:         u.Image,
		JobTitle:      u.JobTitle,
		Interests:     u.Interests,
		HasOnboarded:  u.HasOnboarded,
		CurrentTeamID: u.CurrentTeamID,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}

// UserToAuthUserResponse converts a domain User model to an auth UserResponse DTO
func UserToAuthUserResponse(u *models.User) *auth.UserResponse {
	if u == nil {
		return nil
	}

	return &auth.UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Image: u.Image,
	}
}

// ApplyUpdateUserRequest applies changes from UpdateUserRequest to a User model
func ApplyUpdateUserRequest(u *models.User, req *user.UpdateUserRequest) {
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.JobTitle != nil {
		u.JobTitle = *req.JobTitle
	}
	if req.Interests != nil {
		u.Interests = req.Interests
	}
	if req.Image != nil {
		u.Image = *req.Image
	}
	if req.HasOnboarded != nil {
		u.HasOnboarded = *req.HasOnboarded
	}
}
