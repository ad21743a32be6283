// Package testing provides testing utilities and helpers shared by package tests.
package testing

import (
	"fmt"
	"os"
	"testing"

	"github.com/aristath/allocator/internal/database"
)

// NewTestDB creates a temporary-file SQLite database with the optimizer schema applied.
// Returns the database instance and an idempotent cleanup function.
func NewTestDB(t *testing.T) (*database.DB, func()) {
	t.Helper()

	// A temporary file per test keeps databases isolated
	tmpFile, err := os.CreateTemp("", "test_optimizer_*.db")
	if err != nil {
		t.Fatalf("Failed to create temporary database file: %v", err)
	}
	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()

	db, err := database.New(database.Config{
		Path:    tmpPath,
		Profile: database.ProfileCache,
		Name:    "optimizer",
	})
	if err != nil {
		_ = os.Remove(tmpPath)
		t.Fatalf("Failed to create test database: %v", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		_ = os.Remove(tmpPath)
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	closed := false
	return db, func() {
		if closed {
			return
		}
		closed = true
		if err := db.Close(); err != nil {
			t.Logf("Warning: Failed to close test database: %v", err)
		}
		for _, suffix := range []string{"", "-wal", "-shm"} {
			path := fmt.Sprintf("%s%s", tmpPath, suffix)
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				t.Logf("Warning: Failed to remove temporary database file %s: %v", path, err)
			}
		}
	}
}
