package testsupport

import (
	"context"
	"testing"

	"popcorn/internal/config"
	"popcorn/internal/userstore"
)

// MustOpenStore opens a userstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *userstore.Store {
	t.Helper()

	store, err := userstore.Open(cfg)
	if err != nil {
		t.Fatalf("userstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewUser creates a user with a derived email address.
func NewUser(t testing.TB, store *userstore.Store, username string) *userstore.User {
	t.Helper()

	user, err := store.CreateUser(context.Background(), username, username+"@example.com")
	if err != nil {
		t.Fatalf("store.CreateUser: %v", err)
	}
	return user
}
