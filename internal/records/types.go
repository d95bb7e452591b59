package records

// Owner is the canonical ownership value for one parcel in one role context.
// MultiEntity is true when the county lists more than one name, or when the
// scraped cell was malformed enough that it had to be treated as if it did.
type Owner struct {
	Name        string `json:"name"`
	MultiEntity bool   `json:"multi_entity"`
}

// DeliveryLine is the street-level half of a mailing address.
// Attn and Secondary are optional; absence is the empty string.
type DeliveryLine struct {
	PoBox     bool   `json:"po_box"`
	Attn      string `json:"attn,omitempty"`
	Number    string `json:"number"`
	Street    string `json:"street"`
	Secondary string `json:"secondary,omitempty"`
}

// LastLine is the city/state/zip half of a mailing address.
type LastLine struct {
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

// Mailing is a complete canonical mailing address.
type Mailing struct {
	Delivery DeliveryLine `json:"delivery"`
	Last     LastLine     `json:"last"`
}

// OwnerAndMailing pairs the owner and mailing address for one role context.
// Either side may be nil: a parcel can have an address on file with no
// linked owner, or an owner with no mailing address.
type OwnerAndMailing struct {
	Owner   *Owner   `json:"owner"`
	Mailing *Mailing `json:"mailing"`
}

// GeneralAndMortgage holds the two role contexts for one parcel.
type GeneralAndMortgage struct {
	General  OwnerAndMailing `json:"general"`
	Mortgage OwnerAndMailing `json:"mortgage"`
}

// MunicipalitySync summarizes a batch sync over one municipality.
// Skipped holds the parcel surrogate keys whose pages could not be parsed.
type MunicipalitySync struct {
	Total   int     `json:"total"`
	Skipped []int64 `json:"skipped"`
}

// OwnerEqual reports deep value equality, treating two nils as equal.
func OwnerEqual(a, b *Owner) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// MailingEqual reports deep value equality, treating two nils as equal.
func MailingEqual(a, b *Mailing) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
