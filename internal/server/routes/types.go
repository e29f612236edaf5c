package routes

import (
	"teamloft/internal/api/handlers"
	"teamloft/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Auth    *handlers.AuthHandler
	User    *handlers.UserHandler
	Team    *handlers.TeamHandler
	Invite  *handlers.InviteHandler
	Billing *handlers.BillingHandler
	Health  *handlers.HealthHandler
}

// Middleware contains all the middleware
type Middleware struct {
	Auth *middleware.AuthMiddleware
	Team *middleware.TeamMiddleware
}
