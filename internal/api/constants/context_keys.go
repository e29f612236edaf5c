package constants

// Context keys set by the middleware chain
const (
	ContextKeyUser    = "user"
	ContextKeyUserID  = "userID"
	ContextKeySession = "session"
	ContextKeyTeam    = "team"
)
