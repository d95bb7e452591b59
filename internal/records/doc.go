// Package records defines the canonical value objects exchanged between the
// county data source, the normalizer, and the reconciliation engine.
//
// All types are plain comparable structs. An optional leaf field (attention
// line, secondary designator) that is absent is the empty string; an absent
// owner or mailing address as a whole is a nil pointer. Two values are equal
// iff every leaf field is equal, which is what the reconciliation engine
// relies on to decide whether anything changed.
package records
