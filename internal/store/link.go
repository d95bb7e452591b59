package store

import (
	"context"
	"fmt"

	"github.com/roach88/parcelsync/internal/records"
)

// The linking operations create new role-scoped association rows. The
// partial UNIQUE indexes reject a second active link for the same slot, so
// creating before retiring the predecessor surfaces a *ConflictError
// instead of silently violating the at-most-one-active invariant.

// LinkParcelToAddress creates an active parcel-to-address link under the
// given address role.
func (t *Tx) LinkParcelToAddress(ctx context.Context, parcelKey, addressID int64, role records.Role) (ParcelAddressLink, error) {
	result, err := t.tx.ExecContext(ctx, `
		INSERT INTO parcel_address_links (parcel_key, address_id, role, created_ts)
		VALUES (?, ?, ?, ?)
	`, parcelKey, addressID, role, t.now())
	if err != nil {
		return ParcelAddressLink{}, asConflict(err, "parcel_address_link", fmt.Sprintf("parcel %d %s", parcelKey, role))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return ParcelAddressLink{}, fmt.Errorf("link parcel to address: %w", err)
	}
	return ParcelAddressLink{ID: id, ParcelKey: parcelKey, AddressID: addressID, Role: role}, nil
}

// LinkHumanToParcel creates an active human-to-parcel link under the given
// addressee role.
func (t *Tx) LinkHumanToParcel(ctx context.Context, humanID, parcelKey int64, role records.Role) (HumanParcelLink, error) {
	result, err := t.tx.ExecContext(ctx, `
		INSERT INTO human_parcel_links (human_id, parcel_key, role, created_ts)
		VALUES (?, ?, ?, ?)
	`, humanID, parcelKey, role, t.now())
	if err != nil {
		return HumanParcelLink{}, asConflict(err, "human_parcel_link", fmt.Sprintf("parcel %d %s", parcelKey, role))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return HumanParcelLink{}, fmt.Errorf("link human to parcel: %w", err)
	}
	return HumanParcelLink{ID: id, HumanID: humanID, ParcelKey: parcelKey, Role: role}, nil
}

// LinkHumanToAddress creates an active human-to-address link under the
// given addressee role.
func (t *Tx) LinkHumanToAddress(ctx context.Context, humanID, addressID int64, role records.Role) (HumanAddressLink, error) {
	result, err := t.tx.ExecContext(ctx, `
		INSERT INTO human_address_links (human_id, address_id, role, created_ts)
		VALUES (?, ?, ?, ?)
	`, humanID, addressID, role, t.now())
	if err != nil {
		return HumanAddressLink{}, asConflict(err, "human_address_link", fmt.Sprintf("human %d %s", humanID, role))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return HumanAddressLink{}, fmt.Errorf("link human to address: %w", err)
	}
	return HumanAddressLink{ID: id, HumanID: humanID, AddressID: addressID, Role: role}, nil
}
