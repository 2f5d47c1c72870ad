package common

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

// TestDB opens a throwaway SQLite database in the test's temp directory and
// runs all migrations against it. The migrations source changes according to
// the caller file location relative to the migrations directory and should be
// in the format of "file://../../migrations".
func TestDB(t *testing.T, migrationsURL string) *sql.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")

	db, err := NewDB(dsn, 1, 1, 5*time.Minute)
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}

	if err := MigrateDB(db, migrationsURL); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
