package database

import (
	"log/slog"
	"os"

	"media-access/internal/domain/content"
	"media-access/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Open connects to postgres without migrating.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&content.Post{},
	)
}

func InitDB(dsn string) {
	db, err := Open(dsn)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		slog.Error("auto-migrate failed", "error", err)
		os.Exit(1)
	}

	slog.Info("connected and migrated")
}
