// Package reconcile diffs the destination platform's tax rates against the
// enriched export and produces the minimal create/update/delete instruction
// set.
//
// The diff runs in two passes. The first walks every existing destination
// rate: orphans are deleted, single matches are compared (with a wildcard
// postal code specialized onto the candidate's specific one), and ambiguous
// country-wide matches are deleted so the narrower records can be recreated.
// The second pass walks every resolvable export record and creates a rate
// for any jurisdiction the first pass has not already placed, matched
// progressively by country, then region code, then postal code.
//
// Both sides of the comparison go through the region resolver; raw country
// or state strings are never compared directly, which guards against case
// and format drift between the two systems.
package reconcile
