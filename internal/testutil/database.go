// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/billscout/internal/storage"
)

// SetupTestDB creates a migrated in-memory database that is closed when
// the test finishes.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return store
}
