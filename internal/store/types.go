package store

import "github.com/roach88/parcelsync/internal/records"

// Parcel is a county tax record registered with the store. Immutable once
// created; the reconciliation engine never creates or retires parcels.
type Parcel struct {
	Key      int64
	CountyID string
	Municode int
}

// Human is a canonical owner/entity row. Identity is (Name, MultiEntity).
type Human struct {
	ID          int64
	Name        string
	MultiEntity bool
}

// CityStateZip is a canonical (city, state, zip) row.
type CityStateZip struct {
	ID    int64
	City  string
	State string
	Zip   string
}

// Street is a canonical street row scoped to one CityStateZip.
type Street struct {
	ID             int64
	CityStateZipID int64
	Name           string
	PoBox          bool
}

// Address is a canonical mailing address row scoped to one Street.
// Secondary and Attention are empty when absent.
type Address struct {
	ID        int64
	StreetID  int64
	Number    string
	Secondary string
	Attention string
}

// ParcelAddressLink associates a parcel with a mailing address under an
// address role.
type ParcelAddressLink struct {
	ID        int64
	ParcelKey int64
	AddressID int64
	Role      records.Role
}

// HumanAddressLink associates a human with a mailing address under an
// addressee role.
type HumanAddressLink struct {
	ID        int64
	HumanID   int64
	AddressID int64
	Role      records.Role
}

// HumanParcelLink associates a human with a parcel under an addressee role.
type HumanParcelLink struct {
	ID        int64
	HumanID   int64
	ParcelKey int64
	Role      records.Role
}

// Chain is the active record chain for one parcel and one role pair.
// The address side (ParcelAddress, Address, Street, CityStateZip) and the
// human side (Human, HumanParcel, HumanAddress) are independently nullable:
// a parcel may have an address on file but no linked human, or vice versa.
type Chain struct {
	Parcel Parcel

	ParcelAddress *ParcelAddressLink
	Address       *Address
	Street        *Street
	CityStateZip  *CityStateZip

	Human        *Human
	HumanParcel  *HumanParcelLink
	HumanAddress *HumanAddressLink
}

// HasAddress reports whether the address sub-chain is present.
func (c *Chain) HasAddress() bool {
	return c != nil && c.Address != nil
}

// HasHuman reports whether the human sub-chain is present.
func (c *Chain) HasHuman() bool {
	return c != nil && c.Human != nil
}
