package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"teamloft/internal/api/constants"
	"teamloft/internal/models"
	"teamloft/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openGuardTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamRole{},
		&models.Invite{},
		&models.Subscription{},
	))
	return db
}

// guardFixture is a team with one Admin and one plain Member.
type guardFixture struct {
	db     *gorm.DB
	team   *models.Team
	admin  *models.User
	member *models.User
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()
	db := openGuardTestDB(t)

	admin := &models.User{Email: "admin@example.com", Name: "Admin"}
	member := &models.User{Email: "member@example.com", Name: "Member"}
	require.NoError(t, db.Create(admin).Error)
	require.NoError(t, db.Create(member).Error)

	team := &models.Team{Name: "Guarded", Slug: "guarded"}
	require.NoError(t, db.Create(team).Error)

	for _, u := range []*models.User{admin, member} {
		require.NoError(t, db.Exec("INSERT INTO team_users (team_id, user_id) VALUES (?, ?)", team.ID, u.ID).Error)
	}
	require.NoError(t, db.Create(&models.TeamRole{TeamID: team.ID, UserID: admin.ID, Name: models.RoleAdmin}).Error)
	require.NoError(t, db.Create(&models.TeamRole{TeamID: team.ID, UserID: member.ID, Name: models.RoleMember}).Error)

	return &guardFixture{db: db, team: team, admin: admin, member: member}
}

// serve runs one request through the guard with the given user authenticated.
func (f *guardFixture) serve(t *testing.T, user *models.User, guard gin.HandlerFunc, target string) (*httptest.ResponseRecorder, *models.Team) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var resolved *models.Team
	router := gin.New()
	router.GET("/team",
		func(c *gin.Context) {
			if user != nil {
				c.Set(constants.ContextKeyUser, user)
			}
		},
		guard,
		func(c *gin.Context) {
			resolved = CurrentTeam(c)
			c.Status(http.StatusOK)
		},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w, resolved
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Success bool `json:"success"`
		Error   *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	return envelope.Error.Message
}

func TestRequireMember(t *testing.T) {
	f := newGuardFixture(t)
	m := NewTeamMiddleware(repository.NewTeamRepository(f.db))

	w, resolved := f.serve(t, f.member, m.RequireMember(), "/team?slug=guarded")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resolved)
	require.Equal(t, f.team.ID, resolved.ID)
}

func TestRequireMember_Outsider(t *testing.T) {
	f := newGuardFixture(t)
	m := NewTeamMiddleware(repository.NewTeamRepository(f.db))

	outsider := &models.User{Email: "outsider@example.com"}
	require.NoError(t, f.db.Create(outsider).Error)

	w, _ := f.serve(t, outsider, m.RequireMember(), "/team?slug=guarded")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "You're not in this team", errorMessage(t, w.Body.Bytes()))
}

func TestRequireAdmin_MemberWithoutRole(t *testing.T) {
	f := newGuardFixture(t)
	m := NewTeamMiddleware(repository.NewTeamRepository(f.db))

	// A plain member reaches the team but not the privilege.
	w, _ := f.serve(t, f.member, m.RequireAdmin(), "/team?slug=guarded")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "You must be an admin to do this", errorMessage(t, w.Body.Bytes()))
}

func TestRequireAdmin(t *testing.T) {
	f := newGuardFixture(t)
	m := NewTeamMiddleware(repository.NewTeamRepository(f.db))

	w, resolved := f.serve(t, f.admin, m.RequireAdmin(), "/team?slug=guarded")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, f.team.ID, resolved.ID)
}

func TestGuard_MissingTeamReference(t *testing.T) {
	f := newGuardFixture(t)
	m := NewTeamMiddleware(repository.NewTeamRepository(f.db))

	w, _ := f.serve(t, f.member, m.RequireMember(), "/team")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "You must provide either teamId or slug", errorMessage(t, w.Body.Bytes()))
}

func TestGuard_NonNumericTeamID(t *testing.T) {
	f := newGuardFixture(t)
	m := NewTeamMiddleware(repository.NewTeamRepository(f.db))

	w, _ := f.serve(t, f.member, m.RequireMember(), "/team?teamId=abc")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "teamId must be a number", errorMessage(t, w.Body.Bytes()))
}

func TestGuard_TeamIDTakesPrecedence(t *testing.T) {
	f := newGuardFixture(t)
	m := NewTeamMiddleware(repository.NewTeamRepository(f.db))

	other := &models.Team{Name: "Other", Slug: "other"}
	require.NoError(t, f.db.Create(other).Error)

	// teamId resolves even though the slug points elsewhere.
	w, resolved := f.serve(t, f.member, m.RequireMember(), "/team?teamId="+strconv.FormatUint(uint64(f.team.ID), 10)+"&slug=other")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, f.team.ID, resolved.ID)
}

func TestGuard_Unauthenticated(t *testing.T) {
	f := newGuardFixture(t)
	m := NewTeamMiddleware(repository.NewTeamRepository(f.db))

	w, _ := f.serve(t, nil, m.RequireMember(), "/team?slug=guarded")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Authentication required", errorMessage(t, w.Body.Bytes()))
}
