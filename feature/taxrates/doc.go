// Package taxrates synchronizes sales-tax rates from a legacy
// order-management export to a destination e-commerce platform.
//
// One run enriches the denormalized export against the geographic reference
// tables, caches the result under a TTL, and diffs it against the platform's
// tax rates into create/update/delete instructions. The subpackages hold the
// moving parts: source (legacy loads), enrich (fix-up pipeline), region
// (jurisdiction resolver), cache (TTL window), reconcile (diff engine).
package taxrates
