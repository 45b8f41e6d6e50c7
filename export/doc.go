// Package export serializes aggregated, cross-referenced entity locations
// to a stable interchange format.
//
// # Container
//
// The [Writer] wraps the entity records in a versioned JSON container:
//
//	{"version": "v0", "run_id": "<uuid>", "data": [...]}
//
// The version tag lets downstream consumers detect schema evolution; the
// run id ties a file back to the batch run that produced it. Writes are
// all-or-nothing per destination: if the destination already exists the
// writer refuses and returns [ErrDestinationExists] — re-runs are
// idempotent by refusal, never by merge. The refusal uses an exclusive
// create, so concurrent workers racing on one destination cannot clobber
// each other.
//
// # Identity resolution
//
// Entities are exported under their externally resolved identities. The
// table loaders in this package read the row-oriented CSV files produced
// by the resolution stage ([LoadResolutions], [LoadReferences],
// [LoadSymbolLocations], [LoadMatches]). Files from external sources are
// not always valid UTF-8; loaders fall back to Latin-1 decoding, and
// metadata fields are stripped of embedded HTML markup.
//
// # Assemblers
//
// [BuildCitationInfos] and [BuildSymbolInfos] turn clustered locations
// plus resolution tables into the [model.EntityUploadInfo] records the
// writer serializes. Entities lacking a resolved identity are excluded
// and reported, not treated as fatal.
package export
