// ABOUTME: Tests for credential store backends
// ABOUTME: Covers pair atomicity, absent handling, and clear semantics

package credstore

import (
	"os"
	"path/filepath"
	"testing"
)

// storeUnderTest runs the shared conformance checks against any Store.
// The key invariant: Load never returns a pair with exactly one token.
func storeUnderTest(t *testing.T, s Store) {
	t.Helper()

	// Empty store loads as absent
	if _, ok := s.Load(); ok {
		t.Error("Load() on empty store returned ok = true")
	}

	// Save then load round-trips both tokens
	pair := Pair{AccessToken: "access-1", RefreshToken: "refresh-1"}
	if err := s.Save(pair); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, ok := s.Load()
	if !ok {
		t.Fatal("Load() after Save returned ok = false")
	}
	if got != pair {
		t.Errorf("Load() = %+v, want %+v", got, pair)
	}

	// Overwrite replaces the whole pair
	next := Pair{AccessToken: "access-2", RefreshToken: "refresh-2"}
	if err := s.Save(next); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, ok = s.Load()
	if !ok || got != next {
		t.Errorf("Load() after overwrite = %+v ok=%v, want %+v", got, ok, next)
	}

	// A partial pair is treated as absent, never surfaced
	if err := s.Save(Pair{AccessToken: "orphan"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got, ok := s.Load(); ok {
		t.Errorf("Load() surfaced a partial pair: %+v", got)
	}

	// Clear removes everything; clearing twice is fine
	if err := s.Save(next); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok := s.Load(); ok {
		t.Error("Load() after Clear returned ok = true")
	}
	if err := s.Clear(); err != nil {
		t.Errorf("Clear() on empty store error = %v", err)
	}
}

func TestMemStore(t *testing.T) {
	storeUnderTest(t, NewMemStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	storeUnderTest(t, s)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")
	s, err := NewSQLiteStore(path, "default")
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer s.Close()
	storeUnderTest(t, s)
}

func TestSQLiteStore_ProfilesIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")

	work, err := NewSQLiteStore(path, "work")
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer work.Close()

	personal, err := NewSQLiteStore(path, "personal")
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer personal.Close()

	if err := work.Save(Pair{AccessToken: "wa", RefreshToken: "wr"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, ok := personal.Load(); ok {
		t.Error("personal profile sees work profile's credentials")
	}

	if err := personal.Save(Pair{AccessToken: "pa", RefreshToken: "pr"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := work.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	got, ok := personal.Load()
	if !ok || got.AccessToken != "pa" {
		t.Errorf("personal profile lost credentials after work.Clear(): %+v ok=%v", got, ok)
	}
}

func TestFileStore_CorruptFileLoadsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	if _, ok := s.Load(); ok {
		t.Error("Load() on corrupt file returned ok = true")
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	pair := Pair{AccessToken: "a", RefreshToken: "r"}
	if err := s.Save(pair); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// A second store at the same path sees the pair (page-reload analogue)
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	got, ok := reopened.Load()
	if !ok || got != pair {
		t.Errorf("Load() after reopen = %+v ok=%v, want %+v", got, ok, pair)
	}
}
