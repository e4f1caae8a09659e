package storage

import (
	"io/fs"
	"sort"
	"testing"
)

// OpenTest opens an in-memory database with the full schema applied.
// golang-migrate cannot target :memory:, so the embedded up migrations
// are executed directly, keeping tests on the production schema.
func OpenTest(t *testing.T) *DB {
	t.Helper()

	db, err := Open(DefaultConfig(":memory:"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	names, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		t.Fatalf("failed to list migrations: %v", err)
	}
	sort.Strings(names)
	for _, name := range names {
		script, err := migrationsFS.ReadFile(name)
		if err != nil {
			t.Fatalf("failed to read migration %s: %v", name, err)
		}
		if _, err := db.Conn().Exec(string(script)); err != nil {
			t.Fatalf("failed to apply migration %s: %v", name, err)
		}
	}
	return db
}
