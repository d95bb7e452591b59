package reconcile

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/parcelsync/internal/records"
	"github.com/roach88/parcelsync/internal/store"
)

// Source supplies canonical scraped data for one parcel.
type Source interface {
	ParcelData(ctx context.Context, parcelID string) (records.GeneralAndMortgage, error)
}

// Reconciler drives the sync of county data into the record store.
type Reconciler struct {
	store  *store.Store
	source Source
	log    *slog.Logger
}

// New builds a reconciler. A nil logger disables logging.
func New(st *store.Store, source Source, log *slog.Logger) *Reconciler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reconciler{store: st, source: source, log: log}
}

// SyncParcel fetches the county data for one parcel and reconciles both role
// contexts against the store in a single transaction. The returned value
// reflects the final persisted state; when nothing changed it is value-equal
// to what was already on file.
func (r *Reconciler) SyncParcel(ctx context.Context, parcelID string) (records.GeneralAndMortgage, error) {
	scraped, err := r.source.ParcelData(ctx, parcelID)
	if err != nil {
		return records.GeneralAndMortgage{}, fmt.Errorf("sync parcel %s: %w", parcelID, err)
	}

	var result records.GeneralAndMortgage
	txErr := r.store.WithTx(ctx, func(tx *store.Tx) error {
		general, err := r.reconcileRole(ctx, tx, parcelID, records.GeneralRoles, scraped.General)
		if err != nil {
			return err
		}
		mortgage, err := r.reconcileRole(ctx, tx, parcelID, records.MortgageRoles, scraped.Mortgage)
		if err != nil {
			return err
		}
		result = records.GeneralAndMortgage{General: general, Mortgage: mortgage}
		return nil
	})
	if txErr != nil {
		return records.GeneralAndMortgage{}, txErr
	}
	return result, nil
}

// reconcileRole diffs the scraped data for one role pair against the active
// chain and applies the retire/ensure/link steps for whichever sides differ.
//
// Retirement always precedes creation so a concurrent active-only reader
// never observes two live links for the same (parcel, role) slot; the
// partial unique indexes would reject the second link anyway.
func (r *Reconciler) reconcileRole(ctx context.Context, tx *store.Tx, parcelID string, roles records.RolePair, scraped records.OwnerAndMailing) (records.OwnerAndMailing, error) {
	chain, err := tx.ActiveChain(ctx, parcelID, roles)
	if err != nil {
		return records.OwnerAndMailing{}, err
	}
	current := Project(chain)

	mailingChanged := !records.MailingEqual(scraped.Mailing, current.Mailing)
	ownerChanged := !records.OwnerEqual(scraped.Owner, current.Owner)
	if !mailingChanged && !ownerChanged {
		return current, nil
	}

	// The previous ids identify what is being replaced; the resolved ids
	// identify what the final cross-link must reference. Keeping them as
	// separate values makes the retire-before-create ordering safe to
	// rearrange without aliasing the two meanings.
	var previousAddressID, resolvedAddressID int64
	if chain.HasAddress() {
		previousAddressID = chain.Address.ID
		resolvedAddressID = previousAddressID
	}
	var previousHumanID, resolvedHumanID int64
	if chain.HasHuman() {
		previousHumanID = chain.Human.ID
		resolvedHumanID = previousHumanID
	}

	result := current

	if mailingChanged {
		if chain.ParcelAddress != nil {
			if err := tx.RetireParcelAddressLink(ctx, chain.ParcelAddress.ID); err != nil {
				return records.OwnerAndMailing{}, err
			}
		}
		if chain.HumanAddress != nil {
			if err := tx.RetireHumanAddressLink(ctx, chain.HumanAddress.ID); err != nil {
				return records.OwnerAndMailing{}, err
			}
		}
		if previousAddressID != 0 {
			if err := tx.RetireAddress(ctx, previousAddressID); err != nil {
				return records.OwnerAndMailing{}, err
			}
		}
		resolvedAddressID = 0
		result.Mailing = nil

		if scraped.Mailing != nil {
			m := scraped.Mailing
			csz, err := tx.EnsureCityStateZip(ctx, m.Last.City, m.Last.State, m.Last.Zip)
			if err != nil {
				return records.OwnerAndMailing{}, err
			}
			street, err := tx.EnsureStreet(ctx, csz.ID, m.Delivery.Street, m.Delivery.PoBox)
			if err != nil {
				return records.OwnerAndMailing{}, err
			}
			addr, err := tx.EnsureAddress(ctx, street.ID, m.Delivery.Number, m.Delivery.Secondary, m.Delivery.Attn)
			if err != nil {
				return records.OwnerAndMailing{}, err
			}
			if _, err := tx.LinkParcelToAddress(ctx, chain.Parcel.Key, addr.ID, roles.Address); err != nil {
				return records.OwnerAndMailing{}, err
			}
			resolvedAddressID = addr.ID
			result.Mailing = mailingFromRows(csz, street, addr)
		}

		r.log.Debug("mailing reconciled",
			"parcel", parcelID,
			"role", roles.Address,
			"previous_address_id", previousAddressID,
			"resolved_address_id", resolvedAddressID,
		)
	}

	if ownerChanged {
		if chain.HumanParcel != nil {
			if err := tx.RetireHumanParcelLink(ctx, chain.HumanParcel.ID); err != nil {
				return records.OwnerAndMailing{}, err
			}
		}
		if chain.HumanAddress != nil && !mailingChanged {
			if err := tx.RetireHumanAddressLink(ctx, chain.HumanAddress.ID); err != nil {
				return records.OwnerAndMailing{}, err
			}
		}
		if previousHumanID != 0 {
			if err := tx.RetireHuman(ctx, previousHumanID); err != nil {
				return records.OwnerAndMailing{}, err
			}
		}
		resolvedHumanID = 0
		result.Owner = nil

		if scraped.Owner != nil {
			human, err := tx.EnsureHuman(ctx, scraped.Owner.Name, scraped.Owner.MultiEntity)
			if err != nil {
				return records.OwnerAndMailing{}, err
			}
			if _, err := tx.LinkHumanToParcel(ctx, human.ID, chain.Parcel.Key, roles.Addressee); err != nil {
				return records.OwnerAndMailing{}, err
			}
			resolvedHumanID = human.ID
			result.Owner = &records.Owner{Name: human.Name, MultiEntity: human.MultiEntity}
		}

		r.log.Debug("owner reconciled",
			"parcel", parcelID,
			"role", roles.Addressee,
			"previous_human_id", previousHumanID,
			"resolved_human_id", resolvedHumanID,
		)
	}

	// The cross-link always references the current (human, address) pair, so
	// a change on either side re-creates it. The old link is already retired
	// by whichever branch ran above.
	if resolvedHumanID != 0 && resolvedAddressID != 0 {
		if _, err := tx.LinkHumanToAddress(ctx, resolvedHumanID, resolvedAddressID, roles.Addressee); err != nil {
			return records.OwnerAndMailing{}, err
		}
	}

	return result, nil
}
