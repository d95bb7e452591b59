package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SyncRun is the audit record of one municipality batch sync.
type SyncRun struct {
	ID       int64
	Token    string
	Municode int
	Total    int
	Skipped  []int64
	Started  time.Time
	Finished time.Time
}

// NewRunToken generates a time-sortable UUIDv7 token identifying one batch
// run in logs and in the sync_runs audit table.
func NewRunToken() string {
	return uuid.Must(uuid.NewV7()).String()
}

// RecordSyncRun appends a batch sync audit row. Audit rows are outside the
// reconcile transaction on purpose: a batch that aborts midway still leaves
// its per-parcel history behind, and the run row is written once at the end.
func (s *Store) RecordSyncRun(ctx context.Context, run SyncRun) (int64, error) {
	skipped, err := json.Marshal(run.Skipped)
	if err != nil {
		return 0, fmt.Errorf("record sync run: marshal skipped: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_runs (run_token, municode, total, skipped, started_ts, finished_ts)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		run.Token,
		run.Municode,
		run.Total,
		string(skipped),
		run.Started.UTC().Format(time.RFC3339Nano),
		run.Finished.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("record sync run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record sync run: last insert id: %w", err)
	}
	return id, nil
}

// SyncRunByToken reads back one audit row, primarily for operators and tests.
func (s *Store) SyncRunByToken(ctx context.Context, token string) (SyncRun, error) {
	var (
		run          SyncRun
		skippedJSON  string
		startedText  string
		finishedText string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT run_id, run_token, municode, total, skipped, started_ts, finished_ts
		FROM sync_runs
		WHERE run_token = ?
	`, token).Scan(&run.ID, &run.Token, &run.Municode, &run.Total, &skippedJSON, &startedText, &finishedText)
	if err != nil {
		return SyncRun{}, fmt.Errorf("select sync run: %w", err)
	}

	if err := json.Unmarshal([]byte(skippedJSON), &run.Skipped); err != nil {
		return SyncRun{}, fmt.Errorf("select sync run: unmarshal skipped: %w", err)
	}
	if run.Started, err = time.Parse(time.RFC3339Nano, startedText); err != nil {
		return SyncRun{}, fmt.Errorf("select sync run: parse started_ts: %w", err)
	}
	if run.Finished, err = time.Parse(time.RFC3339Nano, finishedText); err != nil {
		return SyncRun{}, fmt.Errorf("select sync run: parse finished_ts: %w", err)
	}
	return run, nil
}
