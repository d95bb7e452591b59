package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/parcelsync/internal/normalize"
	"github.com/roach88/parcelsync/internal/parse"
	"github.com/roach88/parcelsync/internal/records"
	"github.com/roach88/parcelsync/internal/store"
)

// SyncMunicipality reconciles every registered parcel in a municipality,
// sequentially and in stable key order. A parcel whose pages cannot be
// parsed or normalized is recorded as skipped and the batch continues; any
// other error aborts the batch. An audit row with a fresh run token is
// written when the batch completes.
func (r *Reconciler) SyncMunicipality(ctx context.Context, municode int, delay time.Duration) (records.MunicipalitySync, error) {
	parcels, err := r.store.ParcelsByMunicode(ctx, municode)
	if err != nil {
		return records.MunicipalitySync{}, fmt.Errorf("sync municipality %d: %w", municode, err)
	}

	token := store.NewRunToken()
	started := time.Now()
	r.log.Info("municipality sync started",
		"run", token, "municode", municode, "parcels", len(parcels))

	result := records.MunicipalitySync{Total: len(parcels)}
	for i, parcel := range parcels {
		if i > 0 && delay > 0 {
			if err := sleep(ctx, delay); err != nil {
				return records.MunicipalitySync{}, err
			}
		}

		if _, err := r.SyncParcel(ctx, parcel.CountyID); err != nil {
			if !skippable(err) {
				return records.MunicipalitySync{}, err
			}
			result.Skipped = append(result.Skipped, parcel.Key)
			r.log.Warn("parcel skipped",
				"run", token, "parcel", parcel.CountyID, "error", err)
			continue
		}
	}

	run := store.SyncRun{
		Token:    token,
		Municode: municode,
		Total:    result.Total,
		Skipped:  result.Skipped,
		Started:  started,
		Finished: time.Now(),
	}
	if _, err := r.store.RecordSyncRun(ctx, run); err != nil {
		return records.MunicipalitySync{}, err
	}

	r.log.Info("municipality sync finished",
		"run", token, "municode", municode,
		"total", result.Total, "skipped", len(result.Skipped))
	return result, nil
}

// skippable reports whether a per-parcel failure is a page-shape problem
// that should not abort the batch. Store and network errors are not
// skippable; they indicate the whole run is unhealthy.
func skippable(err error) bool {
	return parse.IsParseError(err) || normalize.IsMalformedAddress(err)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
