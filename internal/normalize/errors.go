package normalize

import (
	"errors"
	"fmt"
)

// MalformedAddressError reports a mailing cell whose text fragment count
// matches no known shape for its source. This indicates a county page-shape
// regression, so the raw fragments are carried for diagnosis. It is fatal
// for the affected parcel and is never retried.
type MalformedAddressError struct {
	// Source identifies the page shape ("general" or "tax").
	Source string

	// Fragments holds the cleaned text fragments that failed to match.
	Fragments []string
}

// Error implements the error interface.
func (e *MalformedAddressError) Error() string {
	return fmt.Sprintf("malformed %s mailing address: %d fragments %q", e.Source, len(e.Fragments), e.Fragments)
}

// IsMalformedAddress reports whether err is (or wraps) a MalformedAddressError.
func IsMalformedAddress(err error) bool {
	var me *MalformedAddressError
	return errors.As(err, &me)
}
