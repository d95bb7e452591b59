package reconcile

import (
	"github.com/roach88/parcelsync/internal/records"
	"github.com/roach88/parcelsync/internal/store"
)

// Project collapses an active record chain into the same canonical shape the
// normalizer produces from scraped pages, so the two sides can be compared
// by plain value equality. An absent sub-chain projects to nil.
func Project(chain *store.Chain) records.OwnerAndMailing {
	var out records.OwnerAndMailing

	if chain.HasHuman() {
		out.Owner = &records.Owner{
			Name:        chain.Human.Name,
			MultiEntity: chain.Human.MultiEntity,
		}
	}

	if chain.HasAddress() {
		out.Mailing = &records.Mailing{
			Delivery: records.DeliveryLine{
				PoBox:     chain.Street.PoBox,
				Attn:      chain.Address.Attention,
				Number:    chain.Address.Number,
				Street:    chain.Street.Name,
				Secondary: chain.Address.Secondary,
			},
			Last: records.LastLine{
				City:  chain.CityStateZip.City,
				State: chain.CityStateZip.State,
				Zip:   chain.CityStateZip.Zip,
			},
		}
	}

	return out
}

// mailingFromRows rebuilds the canonical mailing value from freshly ensured
// rows, so the engine returns what was persisted rather than echoing input.
func mailingFromRows(csz store.CityStateZip, street store.Street, addr store.Address) *records.Mailing {
	return &records.Mailing{
		Delivery: records.DeliveryLine{
			PoBox:     street.PoBox,
			Attn:      addr.Attention,
			Number:    addr.Number,
			Street:    street.Name,
			Secondary: addr.Secondary,
		},
		Last: records.LastLine{
			City:  csz.City,
			State: csz.State,
			Zip:   csz.Zip,
		},
	}
}
