package records

import "fmt"

// Role tags a link row with the context it was created under. The value is
// persisted, so the constants are fixed and must never be renumbered.
type Role int

const (
	// RoleGeneralAddress tags the parcel-to-address link on the general tax roll.
	RoleGeneralAddress Role = 101
	// RoleGeneralAddressee tags the owner-side links on the general tax roll.
	RoleGeneralAddressee Role = 102
	// RoleMortgageAddress tags the parcel-to-address link in the mortgage/escrow context.
	RoleMortgageAddress Role = 201
	// RoleMortgageAddressee tags the owner-side links in the mortgage/escrow context.
	RoleMortgageAddressee Role = 202
)

// String returns the role name for logs and error messages.
func (r Role) String() string {
	switch r {
	case RoleGeneralAddress:
		return "general-address"
	case RoleGeneralAddressee:
		return "general-addressee"
	case RoleMortgageAddress:
		return "mortgage-address"
	case RoleMortgageAddressee:
		return "mortgage-addressee"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// RolePair carries the two roles one reconcile pass operates under:
// the address role for parcel-to-address links and the addressee role for
// the human-side links. General and mortgage data use different pairs but
// flow through identical logic.
type RolePair struct {
	Address   Role
	Addressee Role
}

// GeneralRoles is the role pair for general tax-roll data.
var GeneralRoles = RolePair{Address: RoleGeneralAddress, Addressee: RoleGeneralAddressee}

// MortgageRoles is the role pair for mortgage/escrow data.
var MortgageRoles = RolePair{Address: RoleMortgageAddress, Addressee: RoleMortgageAddressee}
