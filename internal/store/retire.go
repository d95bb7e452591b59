package store

import (
	"context"
	"fmt"
)

// The retirement operations soft-delete by surrogate id: they stamp
// deactivated_ts and leave the row in place as history. Retiring an
// already-retired row is a no-op, which keeps retirement idempotent.

// RetireParcelAddressLink retires a parcel-to-address link.
func (t *Tx) RetireParcelAddressLink(ctx context.Context, linkID int64) error {
	return t.retire(ctx, "parcel_address_links", "link_id", linkID)
}

// RetireHumanAddressLink retires a human-to-address link.
func (t *Tx) RetireHumanAddressLink(ctx context.Context, linkID int64) error {
	return t.retire(ctx, "human_address_links", "link_id", linkID)
}

// RetireHumanParcelLink retires a human-to-parcel link.
func (t *Tx) RetireHumanParcelLink(ctx context.Context, linkID int64) error {
	return t.retire(ctx, "human_parcel_links", "link_id", linkID)
}

// RetireAddress retires a mailing address row. Its street and
// city/state/zip rows are never retired here; they may be shared by other
// parcels.
func (t *Tx) RetireAddress(ctx context.Context, addressID int64) error {
	return t.retire(ctx, "addresses", "address_id", addressID)
}

// RetireHuman retires a human row.
func (t *Tx) RetireHuman(ctx context.Context, humanID int64) error {
	return t.retire(ctx, "humans", "human_id", humanID)
}

func (t *Tx) retire(ctx context.Context, table, idColumn string, id int64) error {
	// table and idColumn come from the fixed call sites above, never from input.
	query := fmt.Sprintf(
		"UPDATE %s SET deactivated_ts = ? WHERE %s = ? AND deactivated_ts IS NULL",
		table, idColumn,
	)
	if _, err := t.tx.ExecContext(ctx, query, t.now(), id); err != nil {
		return fmt.Errorf("retire %s %d: %w", table, id, err)
	}
	return nil
}
