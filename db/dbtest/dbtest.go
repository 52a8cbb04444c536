// Package dbtest opens throwaway in-memory databases for engine tests.
package dbtest

import (
	"testing"

	"github.com/pulsefeed/pulse-server/cmd/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns an in-memory sqlite store with the full schema migrated.
// A single connection keeps the in-memory database alive and serializes
// concurrent test traffic the way a connection pool would.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Share{},
		&models.Follow{},
	); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}

	return db
}

// CreateUser inserts a user row for tests.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("creating user %q: %v", username, err)
	}
	return user
}
