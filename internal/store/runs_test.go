package store

import (
	"context"
	"testing"
	"time"
)

func TestRecordSyncRun_RoundTrips(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	started := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	run := SyncRun{
		Token:    NewRunToken(),
		Municode: 830,
		Total:    12,
		Skipped:  []int64{4, 9},
		Started:  started,
		Finished: started.Add(30 * time.Second),
	}

	if _, err := s.RecordSyncRun(ctx, run); err != nil {
		t.Fatalf("RecordSyncRun() failed: %v", err)
	}

	got, err := s.SyncRunByToken(ctx, run.Token)
	if err != nil {
		t.Fatalf("SyncRunByToken() failed: %v", err)
	}
	if got.Municode != run.Municode || got.Total != run.Total {
		t.Errorf("read back %+v, want municode %d total %d", got, run.Municode, run.Total)
	}
	if len(got.Skipped) != 2 || got.Skipped[0] != 4 || got.Skipped[1] != 9 {
		t.Errorf("skipped = %v, want [4 9]", got.Skipped)
	}
	if !got.Started.Equal(run.Started) || !got.Finished.Equal(run.Finished) {
		t.Errorf("timestamps = %v / %v, want %v / %v", got.Started, got.Finished, run.Started, run.Finished)
	}
}

func TestNewRunToken_Unique(t *testing.T) {
	a, b := NewRunToken(), NewRunToken()
	if a == b {
		t.Error("consecutive run tokens must differ")
	}
	if len(a) != 36 {
		t.Errorf("token %q is not a canonical UUID string", a)
	}
}
