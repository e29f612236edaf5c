package mapper

import (
	"time"

	"teamloft/internal/api/dto/v1/team"
	"teamloft/internal/models"
	"teamloft/internal/repository"
)

// TeamToTeamResponse converts a resolved team (roles and subscription
// preloaded) to its full DTO
func TeamToTeamResponse(t *models.Team) *team.TeamResponse {
	if t == nil {
		return nil
	}

	roles := make([]team.RoleResponse, 0, len(t.Roles))
	for _, r := range t.Roles {
		roles = append(roles, team.RoleResponse{
			UserID: r.UserID,
			Name:   string(r.Name),
		})
	}

	return &team.TeamResponse{
		ID:           t.ID,
		Name:         t.Name,
		Slug:         t.Slug,
		Roles:        roles,
		Subscription: SubscriptionToResponse(t.Subscription),
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}

// TeamToSummary converts a team to its identity-only DTO
func TeamToSummary(t *models.Team) *team.TeamSummaryResponse {
	if t == nil {
		return nil
	}
	return &team.TeamSummaryResponse{
		ID:   t.ID,
		Name: t.Name,
		Slug: t.Slug,
	}
}

// TeamsToSummaries converts a slice of teams to identity-only DTOs
func TeamsToSummaries(teams []models.Team) []team.TeamSummaryResponse {
	result := make([]team.TeamSummaryResponse, len(teams))
	for i := range teams {
		result[i] = *TeamToSummary(&teams[i])
	}
	return result
}

// MembersToResponses converts repository member rows to DTOs
func MembersToResponses(members []repository.TeamMember) []team.MemberResponse {
	result := make([]team.MemberResponse, len(members))
	for i, m := range members {
		result[i] = team.MemberResponse{
			ID:       m.User.ID,
			Name:     m.User.Name,
			Email:    m.User.Email,
			Image:    m.User.Image,
			JobTitle: m.User.JobTitle,
			Role:     string(m.Role),
		}
	}
	return result
}

// SubscriptionToResponse converts the billing reference to its DTO
func SubscriptionToResponse(s *models.Subscription) *team.SubscriptionResponse {
	if s == nil {
		return nil
	}

	resp := &team.SubscriptionResponse{
		Status:      s.Status,
		PriceID:     s.PriceID,
		ProductName: s.ProductName,
	}
	if !s.CurrentPeriodEnd.IsZero() {
		resp.CurrentPeriodEnd = s.CurrentPeriodEnd.Format(time.RFC3339)
	}
	return resp
}
