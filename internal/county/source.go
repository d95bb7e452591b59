package county

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/parcelsync/internal/normalize"
	"github.com/roach88/parcelsync/internal/parse"
	"github.com/roach88/parcelsync/internal/records"
)

// Source produces canonical parcel data from the county site.
type Source struct {
	client *Client
}

// NewSource wraps a client as a data source.
func NewSource(client *Client) *Source {
	return &Source{client: client}
}

// ParcelData fetches, parses, and normalizes both pages for one parcel.
// The general and tax pages are independent and are fetched concurrently;
// the first error from either side cancels the other fetch.
func (s *Source) ParcelData(ctx context.Context, parcelID string) (records.GeneralAndMortgage, error) {
	var data records.GeneralAndMortgage

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		content, err := s.client.FetchGeneralPage(ctx, parcelID)
		if err != nil {
			return err
		}
		data.General, err = generalData(content)
		return err
	})
	g.Go(func() error {
		content, err := s.client.FetchTaxPage(ctx, parcelID)
		if err != nil {
			return err
		}
		data.Mortgage, err = taxData(content)
		return err
	})

	if err := g.Wait(); err != nil {
		return records.GeneralAndMortgage{}, err
	}
	return data, nil
}

func generalData(content []byte) (records.OwnerAndMailing, error) {
	ownerFrags, mailingFrags, err := parse.GeneralPage(content)
	if err != nil {
		return records.OwnerAndMailing{}, err
	}
	mailing, err := normalize.MailingFromGeneral(mailingFrags)
	if err != nil {
		return records.OwnerAndMailing{}, err
	}
	return records.OwnerAndMailing{Owner: ownerValue(ownerFrags), Mailing: mailing}, nil
}

func taxData(content []byte) (records.OwnerAndMailing, error) {
	ownerFrags, mailingFrags, err := parse.TaxPage(content)
	if err != nil {
		return records.OwnerAndMailing{}, err
	}
	mailing, err := normalize.MailingFromTax(mailingFrags)
	if err != nil {
		return records.OwnerAndMailing{}, err
	}
	return records.OwnerAndMailing{Owner: ownerValue(ownerFrags), Mailing: mailing}, nil
}

// ownerValue normalizes the owner cell, treating an empty cell as no owner
// on file rather than an owner with an empty name.
func ownerValue(fragments []parse.Fragment) *records.Owner {
	owner := normalize.Owner(fragments)
	if owner.Name == "" {
		return nil
	}
	return &owner
}
