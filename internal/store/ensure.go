package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// The ensure operations are get-or-create: select the active row matching
// the full semantic attribute tuple, insert when absent, and never mutate
// an existing row. The insert uses ON CONFLICT DO NOTHING so a concurrent
// creator wins cleanly; the loser re-reads once and only then surfaces a
// *ConflictError.

// EnsureCityStateZip returns the active row for the (city, state, zip)
// triple, creating it if absent.
func (t *Tx) EnsureCityStateZip(ctx context.Context, city, state, zip string) (CityStateZip, error) {
	find := func() (CityStateZip, bool, error) {
		var row CityStateZip
		err := t.tx.QueryRowContext(ctx, `
			SELECT cszip_id, city, state_abbr, zip_code
			FROM city_state_zips
			WHERE city = ? AND state_abbr = ? AND zip_code = ? AND deactivated_ts IS NULL
		`, city, state, zip).Scan(&row.ID, &row.City, &row.State, &row.Zip)
		if errors.Is(err, sql.ErrNoRows) {
			return CityStateZip{}, false, nil
		}
		if err != nil {
			return CityStateZip{}, false, fmt.Errorf("select city_state_zip: %w", err)
		}
		return row, true, nil
	}

	if row, ok, err := find(); err != nil || ok {
		return row, err
	}

	result, err := t.tx.ExecContext(ctx, `
		INSERT INTO city_state_zips (city, state_abbr, zip_code, created_ts)
		VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, city, state, zip, t.now())
	if err != nil {
		return CityStateZip{}, fmt.Errorf("insert city_state_zip: %w", err)
	}

	id, lost, err := insertOutcome(result)
	if err != nil {
		return CityStateZip{}, fmt.Errorf("insert city_state_zip: %w", err)
	}
	if lost {
		// Lost the creation race; the winner's row must now be visible.
		row, ok, err := find()
		if err != nil {
			return CityStateZip{}, err
		}
		if !ok {
			return CityStateZip{}, &ConflictError{Entity: "city_state_zip", Key: city + " " + state + " " + zip}
		}
		return row, nil
	}

	return CityStateZip{ID: id, City: city, State: state, Zip: zip}, nil
}

// EnsureStreet returns the active street row scoped to the given
// CityStateZip, creating it if absent.
func (t *Tx) EnsureStreet(ctx context.Context, cszipID int64, name string, poBox bool) (Street, error) {
	find := func() (Street, bool, error) {
		var row Street
		err := t.tx.QueryRowContext(ctx, `
			SELECT street_id, cszip_id, name, po_box
			FROM streets
			WHERE cszip_id = ? AND name = ? AND po_box = ? AND deactivated_ts IS NULL
		`, cszipID, name, poBox).Scan(&row.ID, &row.CityStateZipID, &row.Name, &row.PoBox)
		if errors.Is(err, sql.ErrNoRows) {
			return Street{}, false, nil
		}
		if err != nil {
			return Street{}, false, fmt.Errorf("select street: %w", err)
		}
		return row, true, nil
	}

	if row, ok, err := find(); err != nil || ok {
		return row, err
	}

	result, err := t.tx.ExecContext(ctx, `
		INSERT INTO streets (cszip_id, name, po_box, created_ts)
		VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, cszipID, name, poBox, t.now())
	if err != nil {
		return Street{}, fmt.Errorf("insert street: %w", err)
	}

	id, lost, err := insertOutcome(result)
	if err != nil {
		return Street{}, fmt.Errorf("insert street: %w", err)
	}
	if lost {
		row, ok, err := find()
		if err != nil {
			return Street{}, err
		}
		if !ok {
			return Street{}, &ConflictError{Entity: "street", Key: name}
		}
		return row, nil
	}

	return Street{ID: id, CityStateZipID: cszipID, Name: name, PoBox: poBox}, nil
}

// EnsureAddress returns the active address row scoped to the given street,
// creating it if absent. Secondary and attention are part of the identity
// tuple; absence is the empty string.
func (t *Tx) EnsureAddress(ctx context.Context, streetID int64, number, secondary, attention string) (Address, error) {
	find := func() (Address, bool, error) {
		var row Address
		err := t.tx.QueryRowContext(ctx, `
			SELECT address_id, street_id, bldg_no, secondary, attention
			FROM addresses
			WHERE street_id = ? AND bldg_no = ? AND secondary = ? AND attention = ?
			AND deactivated_ts IS NULL
		`, streetID, number, secondary, attention).Scan(
			&row.ID, &row.StreetID, &row.Number, &row.Secondary, &row.Attention,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return Address{}, false, nil
		}
		if err != nil {
			return Address{}, false, fmt.Errorf("select address: %w", err)
		}
		return row, true, nil
	}

	if row, ok, err := find(); err != nil || ok {
		return row, err
	}

	result, err := t.tx.ExecContext(ctx, `
		INSERT INTO addresses (street_id, bldg_no, secondary, attention, created_ts)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, streetID, number, secondary, attention, t.now())
	if err != nil {
		return Address{}, fmt.Errorf("insert address: %w", err)
	}

	id, lost, err := insertOutcome(result)
	if err != nil {
		return Address{}, fmt.Errorf("insert address: %w", err)
	}
	if lost {
		row, ok, err := find()
		if err != nil {
			return Address{}, err
		}
		if !ok {
			return Address{}, &ConflictError{Entity: "address", Key: number + " street " + fmt.Sprint(streetID)}
		}
		return row, nil
	}

	return Address{ID: id, StreetID: streetID, Number: number, Secondary: secondary, Attention: attention}, nil
}

// EnsureHuman returns the active human row for (name, multiEntity),
// creating it if absent.
func (t *Tx) EnsureHuman(ctx context.Context, name string, multiEntity bool) (Human, error) {
	find := func() (Human, bool, error) {
		var row Human
		err := t.tx.QueryRowContext(ctx, `
			SELECT human_id, name, multi_entity
			FROM humans
			WHERE name = ? AND multi_entity = ? AND deactivated_ts IS NULL
		`, name, multiEntity).Scan(&row.ID, &row.Name, &row.MultiEntity)
		if errors.Is(err, sql.ErrNoRows) {
			return Human{}, false, nil
		}
		if err != nil {
			return Human{}, false, fmt.Errorf("select human: %w", err)
		}
		return row, true, nil
	}

	if row, ok, err := find(); err != nil || ok {
		return row, err
	}

	result, err := t.tx.ExecContext(ctx, `
		INSERT INTO humans (name, multi_entity, created_ts)
		VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING
	`, name, multiEntity, t.now())
	if err != nil {
		return Human{}, fmt.Errorf("insert human: %w", err)
	}

	id, lost, err := insertOutcome(result)
	if err != nil {
		return Human{}, fmt.Errorf("insert human: %w", err)
	}
	if lost {
		row, ok, err := find()
		if err != nil {
			return Human{}, err
		}
		if !ok {
			return Human{}, &ConflictError{Entity: "human", Key: name}
		}
		return row, nil
	}

	return Human{ID: id, Name: name, MultiEntity: multiEntity}, nil
}

// insertOutcome reports the generated id of an ON CONFLICT DO NOTHING
// insert, or lost=true when the conflict clause swallowed the row.
func insertOutcome(result sql.Result) (id int64, lost bool, err error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return 0, true, nil
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("last insert id: %w", err)
	}
	return id, false, nil
}
