package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// EnsureParcel registers a parcel with the store, returning the existing
// active row when the county id is already known. Registration is a
// bootstrap operation; the reconciliation engine itself never creates
// parcels and fails with *NotFoundError on an unknown one.
func (t *Tx) EnsureParcel(ctx context.Context, countyID string, municode int) (Parcel, error) {
	find := func() (Parcel, bool, error) {
		var row Parcel
		err := t.tx.QueryRowContext(ctx, `
			SELECT parcel_key, county_parcel_id, municode
			FROM parcels
			WHERE county_parcel_id = ? AND deactivated_ts IS NULL
		`, countyID).Scan(&row.Key, &row.CountyID, &row.Municode)
		if errors.Is(err, sql.ErrNoRows) {
			return Parcel{}, false, nil
		}
		if err != nil {
			return Parcel{}, false, fmt.Errorf("select parcel: %w", err)
		}
		return row, true, nil
	}

	if row, ok, err := find(); err != nil || ok {
		return row, err
	}

	result, err := t.tx.ExecContext(ctx, `
		INSERT INTO parcels (county_parcel_id, municode, created_ts)
		VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING
	`, countyID, municode, t.now())
	if err != nil {
		return Parcel{}, fmt.Errorf("insert parcel: %w", err)
	}

	id, lost, err := insertOutcome(result)
	if err != nil {
		return Parcel{}, fmt.Errorf("insert parcel: %w", err)
	}
	if lost {
		row, ok, err := find()
		if err != nil {
			return Parcel{}, err
		}
		if !ok {
			return Parcel{}, &ConflictError{Entity: "parcel", Key: countyID}
		}
		return row, nil
	}

	return Parcel{Key: id, CountyID: countyID, Municode: municode}, nil
}

// ParcelByCountyID returns the active parcel for a county parcel id,
// failing with *NotFoundError when it is not registered.
func (t *Tx) ParcelByCountyID(ctx context.Context, countyID string) (Parcel, error) {
	var row Parcel
	err := t.tx.QueryRowContext(ctx, `
		SELECT parcel_key, county_parcel_id, municode
		FROM parcels
		WHERE county_parcel_id = ? AND deactivated_ts IS NULL
	`, countyID).Scan(&row.Key, &row.CountyID, &row.Municode)
	if errors.Is(err, sql.ErrNoRows) {
		return Parcel{}, &NotFoundError{Entity: "parcel", Key: countyID}
	}
	if err != nil {
		return Parcel{}, fmt.Errorf("select parcel: %w", err)
	}
	return row, nil
}

// ParcelsByMunicode returns every active parcel registered under a
// municipality code, ordered by surrogate key for a stable batch order.
func (s *Store) ParcelsByMunicode(ctx context.Context, municode int) ([]Parcel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT parcel_key, county_parcel_id, municode
		FROM parcels
		WHERE municode = ? AND deactivated_ts IS NULL
		ORDER BY parcel_key ASC
	`, municode)
	if err != nil {
		return nil, fmt.Errorf("query parcels by municode: %w", err)
	}
	defer rows.Close()

	var parcels []Parcel
	for rows.Next() {
		var p Parcel
		if err := rows.Scan(&p.Key, &p.CountyID, &p.Municode); err != nil {
			return nil, fmt.Errorf("scan parcel: %w", err)
		}
		parcels = append(parcels, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate parcels: %w", err)
	}

	// Return empty slice instead of nil
	if parcels == nil {
		parcels = []Parcel{}
	}

	return parcels, nil
}
