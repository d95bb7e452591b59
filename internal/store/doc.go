// Package store provides the SQLite-backed, versioned record store for
// parcel ownership and mailing-address data.
//
// The store is append-only in spirit: canonical entities (humans, mailing
// addresses, streets, city/state/zip triples) are created through ensure
// (get-or-create) operations and never updated afterward; links between
// parcels, addresses, and humans are created role-scoped and retired by
// stamping deactivated_ts, never deleted. Active-record queries always
// filter on deactivated_ts IS NULL.
//
// Deduplication of canonical entities is enforced by partial UNIQUE indexes
// over each entity's semantic attribute tuple, restricted to active rows.
// An ensure that loses an insert race re-reads once; a second miss surfaces
// a *ConflictError.
//
// All mutation and chain-read primitives are methods on Tx so that one
// reconcile call executes as a single atomic transaction via Store.WithTx.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
