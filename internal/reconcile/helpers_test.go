package reconcile

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/parcelsync/internal/parse"
	"github.com/roach88/parcelsync/internal/records"
	"github.com/roach88/parcelsync/internal/store"
)

// fakeSource serves canned county data per parcel id. Parcels with an entry
// in errs fail; parcels in neither map fail with a page-shape error.
type fakeSource struct {
	data  map[string]records.GeneralAndMortgage
	errs  map[string]error
	calls int
}

func (f *fakeSource) ParcelData(_ context.Context, parcelID string) (records.GeneralAndMortgage, error) {
	f.calls++
	if err, ok := f.errs[parcelID]; ok {
		return records.GeneralAndMortgage{}, err
	}
	data, ok := f.data[parcelID]
	if !ok {
		return records.GeneralAndMortgage{}, &parse.Error{Page: "general", Reason: "missing element #lblOwnerName"}
	}
	return data, nil
}

func newTestReconciler(t *testing.T) (*Reconciler, *store.Store, *fakeSource) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	clock := &store.FixedClock{
		Start: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Step:  time.Second,
	}
	st, err := store.OpenWithClock(path, clock)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	source := &fakeSource{
		data: map[string]records.GeneralAndMortgage{},
		errs: map[string]error{},
	}
	return New(st, source, nil), st, source
}

func register(t *testing.T, st *store.Store, countyID string, municode int) store.Parcel {
	t.Helper()
	var p store.Parcel
	err := st.WithTx(context.Background(), func(tx *store.Tx) error {
		var err error
		p, err = tx.EnsureParcel(context.Background(), countyID, municode)
		return err
	})
	require.NoError(t, err)
	return p
}

var allTables = []string{
	"humans", "city_state_zips", "streets", "addresses",
	"parcel_address_links", "human_address_links", "human_parcel_links",
}

// rowCounts snapshots the total row count per table, retired rows included,
// so zero-write assertions catch retire-and-recreate churn too.
func rowCounts(t *testing.T, st *store.Store) map[string]int {
	t.Helper()
	counts := make(map[string]int, len(allTables))
	for _, table := range allTables {
		var n int
		err := st.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
		require.NoError(t, err)
		counts[table] = n
	}
	return counts
}

func activeCount(t *testing.T, st *store.Store, table string) int {
	t.Helper()
	var n int
	err := st.DB().QueryRow(
		"SELECT COUNT(*) FROM " + table + " WHERE deactivated_ts IS NULL",
	).Scan(&n)
	require.NoError(t, err)
	return n
}

func owner(name string, multi bool) *records.Owner {
	return &records.Owner{Name: name, MultiEntity: multi}
}

func mailing(number, street, city, state, zip string) *records.Mailing {
	return &records.Mailing{
		Delivery: records.DeliveryLine{Number: number, Street: street},
		Last:     records.LastLine{City: city, State: state, Zip: zip},
	}
}

func generalOnly(o *records.Owner, m *records.Mailing) records.GeneralAndMortgage {
	return records.GeneralAndMortgage{General: records.OwnerAndMailing{Owner: o, Mailing: m}}
}
