package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"teamloft/internal/api/constants"
	"teamloft/internal/api/dto/common"
	"teamloft/internal/models"
	"teamloft/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeamMiddleware is the team-scoped tier of the guard layer. It resolves the
// target team from the request's `teamId` or `slug` query parameter, verifies
// the caller's membership (and, for the admin tier, their Admin role) and
// attaches the resolved team to the request context. Must run after
// RequireAuth.
type TeamMiddleware struct {
	teams repository.TeamRepository
}

func NewTeamMiddleware(teams repository.TeamRepository) *TeamMiddleware {
	return &TeamMiddleware{teams: teams}
}

// RequireMember aborts unless the caller is in the resolved team's user set.
func (m *TeamMiddleware) RequireMember() gin.HandlerFunc {
	return m.guard(false, "You're not in this team")
}

// RequireAdmin aborts unless the caller holds an Admin role on the resolved
// team. A member without the role gets UNAUTHORIZED, not NOT_FOUND: the team
// resolves, the privilege doesn't.
func (m *TeamMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.guard(true, "You must be an admin to do this")
}

func (m *TeamMiddleware) guard(admin bool, denialMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Authentication required", nil))
			c.Abort()
			return
		}

		ref, err := teamRefFromRequest(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeBadRequest, err.Error(), nil))
			c.Abort()
			return
		}

		var team *models.Team
		if admin {
			team, err = m.teams.ResolveForAdmin(c.Request.Context(), user.ID, ref)
		} else {
			team, err = m.teams.ResolveForMember(c.Request.Context(), user.ID, ref)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, denialMessage, nil))
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(common.ErrCodeInternalServer, "Failed to resolve team", nil))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTeam, team)
		c.Next()
	}
}

// teamRefFromRequest reads the team identifier from the query string. Exactly
// one informative identifier is required; teamId takes precedence when both
// are present.
func teamRefFromRequest(c *gin.Context) (repository.TeamRef, error) {
	if raw := c.Query("teamId"); raw != "" {
		id64, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return repository.TeamRef{}, errors.New("teamId must be a number")
		}
		id := uint(id64)
		return repository.TeamRef{ID: &id}, nil
	}

	if slug := c.Query("slug"); slug != "" {
		return repository.TeamRef{Slug: &slug}, nil
	}

	return repository.TeamRef{}, errors.New("You must provide either teamId or slug")
}

// CurrentTeam returns the team attached by the guard layer.
func CurrentTeam(c *gin.Context) *models.Team {
	val, exists := c.Get(constants.ContextKeyTeam)
	if !exists {
		return nil
	}
	team, ok := val.(*models.Team)
	if !ok {
		return nil
	}
	return team
}
