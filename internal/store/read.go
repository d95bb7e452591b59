package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/parcelsync/internal/records"
)

// ActiveChain resolves the active record chain for one parcel and one role
// pair: the parcel-to-address link and its address/street/city-state-zip
// rows under the address role, plus the human and its links under the
// addressee role.
//
// Fails with *NotFoundError only when the parcel itself is unknown. An
// absent sub-chain is normal and comes back as nil fields: a parcel that
// has never been synced, or was synced with no mailing address, still
// yields a Chain.
func (t *Tx) ActiveChain(ctx context.Context, countyParcelID string, roles records.RolePair) (*Chain, error) {
	parcel, err := t.ParcelByCountyID(ctx, countyParcelID)
	if err != nil {
		return nil, err
	}
	chain := &Chain{Parcel: parcel}

	// Address side.
	link, err := t.activeParcelAddressLink(ctx, parcel.Key, roles.Address)
	if err != nil {
		return nil, err
	}
	if link != nil {
		chain.ParcelAddress = link

		addr, err := t.addressByID(ctx, link.AddressID)
		if err != nil {
			return nil, err
		}
		chain.Address = addr

		street, err := t.streetByID(ctx, addr.StreetID)
		if err != nil {
			return nil, err
		}
		chain.Street = street

		csz, err := t.cityStateZipByID(ctx, street.CityStateZipID)
		if err != nil {
			return nil, err
		}
		chain.CityStateZip = csz
	}

	// Human side, independent of the address side.
	humanParcel, err := t.activeHumanParcelLink(ctx, parcel.Key, roles.Addressee)
	if err != nil {
		return nil, err
	}
	if humanParcel != nil {
		chain.HumanParcel = humanParcel

		human, err := t.humanByID(ctx, humanParcel.HumanID)
		if err != nil {
			return nil, err
		}
		chain.Human = human
	}

	// The human-to-address cross link hangs off the address when one is
	// present, otherwise off the human.
	switch {
	case chain.Address != nil:
		chain.HumanAddress, err = t.activeHumanAddressLinkByAddress(ctx, chain.Address.ID, roles.Addressee)
	case chain.Human != nil:
		chain.HumanAddress, err = t.activeHumanAddressLinkByHuman(ctx, chain.Human.ID, roles.Addressee)
	}
	if err != nil {
		return nil, err
	}

	return chain, nil
}

func (t *Tx) activeParcelAddressLink(ctx context.Context, parcelKey int64, role records.Role) (*ParcelAddressLink, error) {
	var link ParcelAddressLink
	err := t.tx.QueryRowContext(ctx, `
		SELECT link_id, parcel_key, address_id, role
		FROM parcel_address_links
		WHERE parcel_key = ? AND role = ? AND deactivated_ts IS NULL
	`, parcelKey, role).Scan(&link.ID, &link.ParcelKey, &link.AddressID, &link.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select parcel_address_link: %w", err)
	}
	return &link, nil
}

func (t *Tx) activeHumanParcelLink(ctx context.Context, parcelKey int64, role records.Role) (*HumanParcelLink, error) {
	var link HumanParcelLink
	err := t.tx.QueryRowContext(ctx, `
		SELECT link_id, human_id, parcel_key, role
		FROM human_parcel_links
		WHERE parcel_key = ? AND role = ? AND deactivated_ts IS NULL
	`, parcelKey, role).Scan(&link.ID, &link.HumanID, &link.ParcelKey, &link.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select human_parcel_link: %w", err)
	}
	return &link, nil
}

func (t *Tx) activeHumanAddressLinkByAddress(ctx context.Context, addressID int64, role records.Role) (*HumanAddressLink, error) {
	var link HumanAddressLink
	err := t.tx.QueryRowContext(ctx, `
		SELECT link_id, human_id, address_id, role
		FROM human_address_links
		WHERE address_id = ? AND role = ? AND deactivated_ts IS NULL
	`, addressID, role).Scan(&link.ID, &link.HumanID, &link.AddressID, &link.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select human_address_link: %w", err)
	}
	return &link, nil
}

func (t *Tx) activeHumanAddressLinkByHuman(ctx context.Context, humanID int64, role records.Role) (*HumanAddressLink, error) {
	var link HumanAddressLink
	err := t.tx.QueryRowContext(ctx, `
		SELECT link_id, human_id, address_id, role
		FROM human_address_links
		WHERE human_id = ? AND role = ? AND deactivated_ts IS NULL
	`, humanID, role).Scan(&link.ID, &link.HumanID, &link.AddressID, &link.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select human_address_link: %w", err)
	}
	return &link, nil
}

// The by-id lookups below are only reached through an active link, so a
// miss means the chain is corrupt (a link pointing at a retired row) and
// is surfaced as an error rather than absence.

func (t *Tx) addressByID(ctx context.Context, id int64) (*Address, error) {
	var row Address
	err := t.tx.QueryRowContext(ctx, `
		SELECT address_id, street_id, bldg_no, secondary, attention
		FROM addresses
		WHERE address_id = ? AND deactivated_ts IS NULL
	`, id).Scan(&row.ID, &row.StreetID, &row.Number, &row.Secondary, &row.Attention)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "address", Key: fmt.Sprint(id)}
	}
	if err != nil {
		return nil, fmt.Errorf("select address: %w", err)
	}
	return &row, nil
}

func (t *Tx) streetByID(ctx context.Context, id int64) (*Street, error) {
	var row Street
	err := t.tx.QueryRowContext(ctx, `
		SELECT street_id, cszip_id, name, po_box
		FROM streets
		WHERE street_id = ? AND deactivated_ts IS NULL
	`, id).Scan(&row.ID, &row.CityStateZipID, &row.Name, &row.PoBox)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "street", Key: fmt.Sprint(id)}
	}
	if err != nil {
		return nil, fmt.Errorf("select street: %w", err)
	}
	return &row, nil
}

func (t *Tx) cityStateZipByID(ctx context.Context, id int64) (*CityStateZip, error) {
	var row CityStateZip
	err := t.tx.QueryRowContext(ctx, `
		SELECT cszip_id, city, state_abbr, zip_code
		FROM city_state_zips
		WHERE cszip_id = ? AND deactivated_ts IS NULL
	`, id).Scan(&row.ID, &row.City, &row.State, &row.Zip)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "city_state_zip", Key: fmt.Sprint(id)}
	}
	if err != nil {
		return nil, fmt.Errorf("select city_state_zip: %w", err)
	}
	return &row, nil
}

func (t *Tx) humanByID(ctx context.Context, id int64) (*Human, error) {
	var row Human
	err := t.tx.QueryRowContext(ctx, `
		SELECT human_id, name, multi_entity
		FROM humans
		WHERE human_id = ? AND deactivated_ts IS NULL
	`, id).Scan(&row.ID, &row.Name, &row.MultiEntity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "human", Key: fmt.Sprint(id)}
	}
	if err != nil {
		return nil, fmt.Errorf("select human: %w", err)
	}
	return &row, nil
}
