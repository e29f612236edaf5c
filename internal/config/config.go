package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"API_PORT" envDefault:"8080"`
	APIURL      string `env:"API_URL" envDefault:"http://localhost:8080"`
	ClientURL   string `env:"CLIENT_URL" envDefault:"http://localhost:3000"`

	// Logging Configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE" envDefault:"./logs/api.log"`

	// Database Configuration
	DatabaseURL string `env:"DATABASE_URL"`

	// Session Configuration
	SessionTTLHours int `env:"SESSION_TTL_HOURS" envDefault:"168"`

	// Google OAuth Configuration (optional; credentials sign-in always works)
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`

	// Mail Provider Configuration
	MailAPIURL string `env:"MAIL_API_URL" envDefault:"https://api.resend.com/emails"`
	MailAPIKey string `env:"MAIL_API_KEY"`
	MailFrom   string `env:"MAIL_FROM" envDefault:"Teamloft <noreply@teamloft.dev>"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// Try the environment-specific file first, then a plain .env.
	envName := os.Getenv("ENV")
	locations := []string{".env"}
	if envName != "" {
		locations = append([]string{fmt.Sprintf(".env.%s", envName)}, locations...)
	}

	for _, loc := range locations {
		// godotenv never overwrites variables that are already set.
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
