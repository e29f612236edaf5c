package constants

// Cookie names used in the application
const (
	CookieSession    = "session"
	CookieOAuthState = "oauth_state"

	CookiePathRoot = "/"

	// Cookie duration in seconds
	CookieDurationWeek  = 604800
	CookieDurationState = 600
)
