package parse

import (
	"errors"
	"fmt"
)

// Error reports that scraped county markup did not have the expected shape.
// It covers both missing marker elements on a page and address lines that
// match no known layout.
type Error struct {
	// Page identifies the source page ("general" or "tax"), empty for
	// line-level failures detached from a page.
	Page string

	// Reason describes what was expected and not found.
	Reason string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Page != "" {
		return fmt.Sprintf("parse %s page: %s", e.Page, e.Reason)
	}
	return fmt.Sprintf("parse: %s", e.Reason)
}

// IsParseError reports whether err is (or wraps) a page-shape error.
// Batch sync uses this to skip a parcel without aborting the run.
func IsParseError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}

func pageError(page, format string, args ...any) *Error {
	return &Error{Page: page, Reason: fmt.Sprintf(format, args...)}
}

func lineError(format string, args ...any) *Error {
	return &Error{Reason: fmt.Sprintf(format, args...)}
}
