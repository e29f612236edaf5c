package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"teamloft/internal/api/handlers"
	"teamloft/internal/api/middleware"
	"teamloft/internal/api/validation"
	"teamloft/internal/config"
	"teamloft/internal/db"
	"teamloft/internal/logging"
	"teamloft/internal/mailer"
	"teamloft/internal/repository"
	"teamloft/internal/server/routes"
	"teamloft/internal/service"
	"teamloft/internal/tasks"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	router  *gin.Engine
	cfg     *config.Config
	db      *db.Database
	logger  *logging.Logger
	httpSrv *http.Server
	cleanup *tasks.Cleanup
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, database *db.Database) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Gin's own logger is replaced by our request logger.
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	return &Server{
		router: gin.New(),
		cfg:    cfg,
		db:     database,
		logger: logging.GetLogger(),
	}
}

// Start wires the application together and begins serving requests. It
// blocks until the listener fails.
func (s *Server) Start() error {
	validation.RegisterBindingValidators()

	// Repositories
	userRepo := repository.NewUserRepository(s.db.DB)
	teamRepo := repository.NewTeamRepository(s.db.DB)
	inviteRepo := repository.NewInviteRepository(s.db.DB)
	sessionRepo := repository.NewSessionRepository(s.db.DB)

	// Services
	mail := mailer.NewClient(s.cfg.MailAPIURL, s.cfg.MailAPIKey, s.cfg.MailFrom)
	sessionTTL := time.Duration(s.cfg.SessionTTLHours) * time.Hour
	authService := service.NewAuthService(userRepo, sessionRepo, sessionTTL)
	oauthService := service.NewOAuthService(
		userRepo,
		s.cfg.GoogleClientID,
		s.cfg.GoogleClientSecret,
		s.cfg.APIURL+"/api/v1/auth/google/callback",
	)
	teamService := service.NewTeamService(s.db.DB, teamRepo)
	inviteService := service.NewInviteService(s.db.DB, inviteRepo, mail, s.cfg.ClientURL)

	h := &routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService, oauthService, sessionRepo, s.cfg),
		User:    handlers.NewUserHandler(userRepo),
		Team:    handlers.NewTeamHandler(teamService),
		Invite:  handlers.NewInviteHandler(inviteService),
		Billing: handlers.NewBillingHandler(teamRepo),
		Health:  handlers.NewHealthHandler(s.db.DB),
	}
	m := &routes.Middleware{
		Auth: middleware.NewAuthMiddleware(sessionRepo),
		Team: middleware.NewTeamMiddleware(teamRepo),
	}

	routes.SetupGlobalMiddleware(s.router, s.cfg, s.logger)
	routes.Setup(s.router, h, m)

	s.cleanup = tasks.NewCleanup(s.db.DB, sessionRepo, inviteRepo, s.logger)
	s.cleanup.Start()

	addr := fmt.Sprintf(":%s", s.cfg.Port)
	s.logger.Info("Server listening on %s", addr)

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s.httpSrv.ListenAndServe()
}

// Shutdown stops background tasks and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cleanup != nil {
		s.cleanup.Stop()
	}
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
