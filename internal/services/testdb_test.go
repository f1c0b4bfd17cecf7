package services

import (
	"path/filepath"
	"testing"

	"qnahub/internal/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global handle at a throwaway sqlite database.
func setupTestDB(t *testing.T) {
	t.Helper()

	g, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(g); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.DB = g
}
