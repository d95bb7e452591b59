// Package normalize turns raw scraped fragments into canonical Owner and
// Mailing values.
//
// Normalization is what makes reconciliation idempotent: the same underlying
// county text must always produce the same value, so text is NFC-normalized,
// trimmed, and internal whitespace runs are collapsed before comparison.
// Markup fragments are discarded; only literal text nodes count toward the
// fragment shapes each page source is allowed to have.
package normalize
