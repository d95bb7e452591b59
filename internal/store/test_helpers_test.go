package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a file-backed store in a temp dir with a fixed
// clock so retirement timestamps are deterministic.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	clock := &FixedClock{
		Start: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Step:  time.Second,
	}
	s, err := OpenWithClock(path, clock)
	if err != nil {
		t.Fatalf("OpenWithClock() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// inTx runs fn in a transaction and fails the test on error.
func inTx(t *testing.T, s *Store, fn func(tx *Tx) error) {
	t.Helper()
	if err := s.WithTx(context.Background(), fn); err != nil {
		t.Fatalf("WithTx() failed: %v", err)
	}
}

// countRows returns the number of rows in a table, optionally restricted
// to active rows.
func countRows(t *testing.T, s *Store, table string, activeOnly bool) int {
	t.Helper()
	query := "SELECT COUNT(*) FROM " + table
	if activeOnly {
		query += " WHERE deactivated_ts IS NULL"
	}
	var n int
	if err := s.db.QueryRow(query).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

// registerParcel registers a parcel and returns its surrogate key.
func registerParcel(t *testing.T, s *Store, countyID string, municode int) Parcel {
	t.Helper()
	var p Parcel
	inTx(t, s, func(tx *Tx) error {
		var err error
		p, err = tx.EnsureParcel(context.Background(), countyID, municode)
		return err
	})
	return p
}
