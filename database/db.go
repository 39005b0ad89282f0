package database

import (
	"fmt"
	"log/slog"
	"time"

	"epicode/internal/api/models"
	"epicode/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the Postgres connection and migrates the schema.
func ConnectDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	gormLogLevel := logger.Warn
	if cfg.IsDevelopment() {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("Connected to the database successfully")
	return db, nil
}

// Migrate applies the schema for all persistent models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Tag{},
		&models.Post{},
		&models.PostTag{},
		&models.Comment{},
		&models.Reaction{},
		&models.Upvote{},
		&models.Image{},
	)
}
