package cache

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	_ "modernc.org/sqlite"
)

// setupTestStore creates a file-backed SQLite database and a Store for
// testing. It uses t.Cleanup to ensure resources are released.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbFile)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(s.Close)

	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	corpus := []string{"first tweet", "second tweet", "third tweet"}
	if err := s.Put(ctx, "mukund", corpus); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Lookup(ctx, "mukund")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !reflect.DeepEqual(got, corpus) {
		t.Errorf("Lookup() = %v, want %v", got, corpus)
	}
}

func TestStoreMiss(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.Lookup(context.Background(), "nobody"); !errors.Is(err, ErrMiss) {
		t.Errorf("Lookup() error = %v, want ErrMiss", err)
	}
}

func TestStoreReplace(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "mukund", []string{"old"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put(ctx, "mukund", []string{"new", "newer"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Lookup(ctx, "mukund")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"new", "newer"}) {
		t.Errorf("Lookup() after replace = %v", got)
	}
}

func TestStoreDelete(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "mukund", []string{"a tweet"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Delete(ctx, "mukund"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Lookup(ctx, "mukund"); !errors.Is(err, ErrMiss) {
		t.Errorf("Lookup() after Delete error = %v, want ErrMiss", err)
	}

	// Deleting an absent user is not an error.
	if err := s.Delete(ctx, "nobody"); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

func TestStoreUsernames(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, username := range []string{"zoe", "adam", "mira"} {
		if err := s.Put(ctx, username, []string{"text"}); err != nil {
			t.Fatalf("Put(%q) error = %v", username, err)
		}
	}

	got, err := s.Usernames(ctx)
	if err != nil {
		t.Fatalf("Usernames() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"adam", "mira", "zoe"}) {
		t.Errorf("Usernames() = %v, want sorted list", got)
	}
}
