// Package parse extracts raw owner and mailing-address fragments from the
// county assessment pages.
//
// The county site renders owner names and mailing addresses as the child
// nodes of a marker <span>: literal text nodes separated by <br> elements.
// This package surfaces those children as Fragments, preserving the
// text/markup distinction so the normalizer can discard markup noise, and
// parses the individual address lines into their canonical parts.
//
// A page whose expected markup is absent fails with *Error; an individual
// line that does not match a known shape also fails with *Error. Both mean
// the county site changed shape, which batch callers treat as a per-parcel
// skip signal.
package parse
