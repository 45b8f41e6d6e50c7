// Package cluster groups an entity's raw bounding boxes into disjoint
// spatial clusters, one per visual occurrence of the entity.
//
// An entity that renders as several glyphs, or wraps across lines, produces
// multiple boxes for a single occurrence; the same symbol used in two
// different equations produces boxes for two separate occurrences. The
// [Aggregator] joins boxes on the same page whose margins touch into one
// cluster and keeps distant boxes apart:
//
//	agg := cluster.NewAggregator()
//	clustered := agg.Cluster(result.Locations)
//	boxes := clustered["symbol-3"][0] // first occurrence of symbol-3
//
// Cluster indices are deterministic for a given input (ordered by first box
// appearance) but carry no identity across runs. Downstream export treats
// each (entity, cluster) pair as one independently addressable instance.
package cluster
