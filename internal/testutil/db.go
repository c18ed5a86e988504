// Package testutil provides the shared database harness for package tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"journal-editorial-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB opens an isolated SQLite database for one test and migrates the
// full schema. TranslateError is on, matching production, so unique-index
// violations surface as gorm.ErrDuplicatedKey in tests too.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s", filepath.Join(t.TempDir(), "test.sqlite"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Submission{},
		&models.SubmissionHistory{},
		&models.Review{},
		&models.Issue{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

// SeedUser inserts a user with the given role and returns it.
func SeedUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()

	user := models.User{
		Name:     name,
		Email:    email,
		Password: "not-a-real-hash",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}
