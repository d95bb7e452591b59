package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	tables := []string{
		"parcels", "humans", "city_state_zips", "streets", "addresses",
		"parcel_address_links", "human_address_links", "human_parcel_links",
		"sync_runs",
	}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpen_SetsSchemaVersion(t *testing.T) {
	s := createTestStore(t)

	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("query user_version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/test.db")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	s := createTestStore(t)

	wantErr := &NotFoundError{Entity: "parcel", Key: "nope"}
	err := s.WithTx(context.Background(), func(tx *Tx) error {
		if _, err := tx.EnsureHuman(context.Background(), "SMITH JANE", false); err != nil {
			return err
		}
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("WithTx() error = %v, want %v", err, wantErr)
	}

	if n := countRows(t, s, "humans", false); n != 0 {
		t.Errorf("humans rows after rollback = %d, want 0", n)
	}
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	s := createTestStore(t)

	inTx(t, s, func(tx *Tx) error {
		_, err := tx.EnsureHuman(context.Background(), "SMITH JANE", false)
		return err
	})

	if n := countRows(t, s, "humans", false); n != 1 {
		t.Errorf("humans rows after commit = %d, want 1", n)
	}
}
