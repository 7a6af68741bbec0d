package testsupport

import (
	"context"
	"testing"

	"apollo/internal/catalog"
	"apollo/internal/config"
	"apollo/internal/logging"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(context.Background(), cfg.Files.DatabaseName, logging.NewNop())
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedTrack inserts a track row directly, bypassing the scanner.
func SeedTrack(t testing.TB, store *catalog.Store, track catalog.Track) {
	t.Helper()

	if _, err := store.UpsertTrack(context.Background(), track); err != nil {
		t.Fatalf("store.UpsertTrack: %v", err)
	}
}
