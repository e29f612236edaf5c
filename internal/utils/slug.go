package utils

import (
	"strings"
)

// Slugify derives a URL-safe slug from a team name by lowercasing and
// hyphenating it. Characters outside [a-z0-9-] are dropped. Collision
// handling is the caller's concern.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")

	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}

	return strings.Trim(b.String(), "-")
}
