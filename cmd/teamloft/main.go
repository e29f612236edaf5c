package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teamloft/internal/config"
	"teamloft/internal/db"
	"teamloft/internal/logging"
	"teamloft/internal/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "teamloft",
	Short: "Teamloft API server",
	Long: `Teamloft is a multi-tenant team collaboration API. It manages user
accounts, teams, member roles and email invitations.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := mustInit()
		defer logger.Close()

		database, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to connect to database: %v", err)
			os.Exit(1)
		}
		defer database.Close()

		if err := database.Migrate(); err != nil {
			logger.Error("Failed to run migrations: %v", err)
			os.Exit(1)
		}

		srv := server.NewServer(cfg, database)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				logger.Error("Server error: %v", err)
				os.Exit(1)
			}
		case sig := <-quit:
			logger.Info("Received %s, shutting down", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Shutdown error: %v", err)
				os.Exit(1)
			}
		}
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := mustInit()
		defer logger.Close()

		database, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to connect to database: %v", err)
			os.Exit(1)
		}
		defer database.Close()

		if err := database.Migrate(); err != nil {
			logger.Error("Failed to run migrations: %v", err)
			os.Exit(1)
		}
		logger.Info("Migrations applied")
	},
}

// mustInit loads configuration and sets up the global logger. It exits on
// failure since nothing can run without either.
func mustInit() (*config.Config, *logging.Logger) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Configure(&logging.Config{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	})
	logger := logging.GetLogger()
	logger.Info("Starting in %s mode", cfg.Environment)
	return cfg, logger
}

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
