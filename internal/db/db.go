package db

import (
	"fmt"

	"teamloft/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the gorm connection handed to the rest of the application.
type Database struct {
	DB *gorm.DB
}

// Open connects to Postgres using the given DSN. TranslateError is enabled so
// unique constraint violations surface as gorm.ErrDuplicatedKey regardless of
// driver.
func Open(dsn string) (*Database, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Migrate runs the schema auto-migration for all models.
func (d *Database) Migrate() error {
	if err := d.DB.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamRole{},
		&models.Invite{},
		&models.Session{},
		&models.Account{},
		&models.Subscription{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the underlying sql connection.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
