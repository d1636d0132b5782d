// Package enrich repairs the legacy tax export's geographic and warehouse
// references through a sequence of fix-up stages.
//
// Each stage is an unordered parallel map over the record collection against
// the read-only reference arena. Stage order matters only in that country
// and state run before county and city (which use them to disambiguate
// matches); every stage is idempotent, so re-running a stage on its own
// output changes nothing.
//
// A record is dropped only when a mandatory key cannot be obtained: a record
// with no postal code at all, or one whose state abbreviation matches no
// reference state. Everything else passes through, repaired as far as
// possible.
package enrich
