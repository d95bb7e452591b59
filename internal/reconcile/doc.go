// Package reconcile compares freshly scraped owner and mailing data against
// the active record chains and applies the minimal retire/create/link
// operations needed to make the active chains match. Unchanged data produces
// zero writes; changed data is versioned by retiring the stale rows and
// links, never by updating in place.
package reconcile
