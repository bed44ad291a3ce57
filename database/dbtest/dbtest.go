// Package dbtest opens throwaway sqlite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/rpupo63/appstore-backend/config"
	"github.com/rpupo63/appstore-backend/database"
	"github.com/rpupo63/appstore-backend/models"
	"gorm.io/gorm"
)

// Open returns a migrated sqlite database stored in a temp dir of t.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseSettings{
		Type:       "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "appstore_test.db"),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
