package store

import (
	"context"
	"testing"

	"github.com/roach88/parcelsync/internal/records"
)

func TestLinkParcelToAddress_SecondActiveLinkConflicts(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	parcel := registerParcel(t, s, "12-34-567", 830)

	var addrA, addrB Address
	inTx(t, s, func(tx *Tx) error {
		csz, err := tx.EnsureCityStateZip(ctx, "SPRINGFIELD", "IL", "62701")
		if err != nil {
			return err
		}
		street, err := tx.EnsureStreet(ctx, csz.ID, "MAIN ST", false)
		if err != nil {
			return err
		}
		if addrA, err = tx.EnsureAddress(ctx, street.ID, "123", "", ""); err != nil {
			return err
		}
		if addrB, err = tx.EnsureAddress(ctx, street.ID, "456", "", ""); err != nil {
			return err
		}
		_, err = tx.LinkParcelToAddress(ctx, parcel.Key, addrA.ID, records.RoleGeneralAddress)
		return err
	})

	err := s.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.LinkParcelToAddress(ctx, parcel.Key, addrB.ID, records.RoleGeneralAddress)
		return err
	})
	if !IsConflict(err) {
		t.Fatalf("second active link under the same role: error = %v, want ConflictError", err)
	}

	// A different role for the same parcel is a separate slot.
	inTx(t, s, func(tx *Tx) error {
		_, err := tx.LinkParcelToAddress(ctx, parcel.Key, addrB.ID, records.RoleMortgageAddress)
		return err
	})
}

func TestLinkParcelToAddress_RetireThenRelink(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	parcel := registerParcel(t, s, "12-34-567", 830)

	inTx(t, s, func(tx *Tx) error {
		csz, err := tx.EnsureCityStateZip(ctx, "SPRINGFIELD", "IL", "62701")
		if err != nil {
			return err
		}
		street, err := tx.EnsureStreet(ctx, csz.ID, "MAIN ST", false)
		if err != nil {
			return err
		}
		addrA, err := tx.EnsureAddress(ctx, street.ID, "123", "", "")
		if err != nil {
			return err
		}
		addrB, err := tx.EnsureAddress(ctx, street.ID, "456", "", "")
		if err != nil {
			return err
		}

		link, err := tx.LinkParcelToAddress(ctx, parcel.Key, addrA.ID, records.RoleGeneralAddress)
		if err != nil {
			return err
		}
		if err := tx.RetireParcelAddressLink(ctx, link.ID); err != nil {
			return err
		}
		_, err = tx.LinkParcelToAddress(ctx, parcel.Key, addrB.ID, records.RoleGeneralAddress)
		return err
	})

	if n := countRows(t, s, "parcel_address_links", false); n != 2 {
		t.Errorf("parcel_address_links rows = %d, want 2", n)
	}
	if n := countRows(t, s, "parcel_address_links", true); n != 1 {
		t.Errorf("active parcel_address_links rows = %d, want 1", n)
	}
}

func TestLinkHumanToParcel_SecondActiveLinkConflicts(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	parcel := registerParcel(t, s, "12-34-567", 830)

	var humanA, humanB Human
	inTx(t, s, func(tx *Tx) error {
		var err error
		if humanA, err = tx.EnsureHuman(ctx, "SMITH JANE", false); err != nil {
			return err
		}
		if humanB, err = tx.EnsureHuman(ctx, "SMITH JOHN", false); err != nil {
			return err
		}
		_, err = tx.LinkHumanToParcel(ctx, humanA.ID, parcel.Key, records.RoleGeneralAddressee)
		return err
	})

	err := s.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.LinkHumanToParcel(ctx, humanB.ID, parcel.Key, records.RoleGeneralAddressee)
		return err
	})
	if !IsConflict(err) {
		t.Fatalf("second active addressee for the same parcel: error = %v, want ConflictError", err)
	}
}

func TestLinkHumanToAddress_SecondActiveLinkConflicts(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	var human Human
	var addrA, addrB Address
	inTx(t, s, func(tx *Tx) error {
		csz, err := tx.EnsureCityStateZip(ctx, "SPRINGFIELD", "IL", "62701")
		if err != nil {
			return err
		}
		street, err := tx.EnsureStreet(ctx, csz.ID, "MAIN ST", false)
		if err != nil {
			return err
		}
		if addrA, err = tx.EnsureAddress(ctx, street.ID, "123", "", ""); err != nil {
			return err
		}
		if addrB, err = tx.EnsureAddress(ctx, street.ID, "456", "", ""); err != nil {
			return err
		}
		if human, err = tx.EnsureHuman(ctx, "SMITH JANE", false); err != nil {
			return err
		}
		_, err = tx.LinkHumanToAddress(ctx, human.ID, addrA.ID, records.RoleGeneralAddressee)
		return err
	})

	err := s.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.LinkHumanToAddress(ctx, human.ID, addrB.ID, records.RoleGeneralAddressee)
		return err
	})
	if !IsConflict(err) {
		t.Fatalf("second active address for the same human and role: error = %v, want ConflictError", err)
	}
}

func TestRetire_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	var human Human
	inTx(t, s, func(tx *Tx) error {
		var err error
		human, err = tx.EnsureHuman(ctx, "SMITH JANE", false)
		return err
	})

	inTx(t, s, func(tx *Tx) error {
		if err := tx.RetireHuman(ctx, human.ID); err != nil {
			return err
		}
		return tx.RetireHuman(ctx, human.ID)
	})

	// The second retire must not overwrite the original timestamp.
	var ts string
	if err := s.db.QueryRow(
		"SELECT deactivated_ts FROM humans WHERE human_id = ?", human.ID,
	).Scan(&ts); err != nil {
		t.Fatalf("read deactivated_ts: %v", err)
	}
	if ts == "" {
		t.Error("deactivated_ts should be set after retire")
	}

	inTx(t, s, func(tx *Tx) error {
		var after string
		if err := tx.tx.QueryRowContext(ctx,
			"SELECT deactivated_ts FROM humans WHERE human_id = ?", human.ID,
		).Scan(&after); err != nil {
			return err
		}
		if after != ts {
			t.Errorf("repeated retire changed deactivated_ts from %q to %q", ts, after)
		}
		return nil
	})
}
