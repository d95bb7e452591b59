// Package county fetches parcel pages from the county records site and
// turns them into canonical owner and mailing values. It performs no
// persistence; the reconcile package pairs its output with the stored
// record chains.
package county
