package cluster

import (
	"fmt"

	"github.com/tsawler/hueloc/model"
)

// Clusters maps a cluster index to the bounding boxes judged to be the
// same visual occurrence of one entity.
type Clusters map[int][]model.BoundingBox

// Config controls spatial grouping.
type Config struct {
	// Margin is the normalized distance by which boxes are expanded before
	// testing adjacency. Boxes within twice this distance of each other
	// (in page-relative units) join the same cluster. It bridges the small
	// gaps between glyphs of one occurrence without merging separate
	// occurrences.
	Margin float64
}

// DefaultConfig returns the default grouping margin, 1% of page dimensions.
func DefaultConfig() Config {
	return Config{Margin: 0.01}
}

// Validate checks the configuration for nonsensical values.
func (c Config) Validate() error {
	if c.Margin < 0 || c.Margin > 0.5 {
		return fmt.Errorf("cluster margin must be in [0, 0.5], got %g", c.Margin)
	}
	return nil
}

// Aggregator groups bounding boxes into per-occurrence clusters. It is
// stateless apart from configuration and safe for concurrent use.
type Aggregator struct {
	config Config
}

// NewAggregator creates an aggregator with default configuration.
func NewAggregator() *Aggregator {
	return &Aggregator{config: DefaultConfig()}
}

// NewAggregatorWithConfig creates an aggregator with custom configuration.
func NewAggregatorWithConfig(config Config) *Aggregator {
	return &Aggregator{config: config}
}

// Cluster groups each entity's boxes into spatial clusters. Boxes on
// different pages never share a cluster; boxes on the same page share a
// cluster when their expanded rectangles intersect, directly or through a
// chain of neighbors. Cluster indices follow the order in which each
// cluster's first box appears in the input list, so results are stable for
// a fixed input.
func (a *Aggregator) Cluster(locations map[model.EntityID][]model.BoundingBox) map[model.EntityID]Clusters {
	out := make(map[model.EntityID]Clusters, len(locations))
	for id, boxes := range locations {
		out[id] = a.clusterBoxes(boxes)
	}
	return out
}

// clusterBoxes groups one entity's box list via union-find over pairwise
// adjacency.
func (a *Aggregator) clusterBoxes(boxes []model.BoundingBox) Clusters {
	clusters := make(Clusters)
	if len(boxes) == 0 {
		return clusters
	}

	parent := make([]int, len(boxes))
	for i := range parent {
		parent[i] = i
	}

	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(i, j int) {
		ri, rj := find(i), find(j)
		if ri != rj {
			// Attach the later root to the earlier one so every set's
			// root is its earliest member.
			if ri < rj {
				parent[rj] = ri
			} else {
				parent[ri] = rj
			}
		}
	}

	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			if a.adjacent(boxes[i], boxes[j]) {
				union(i, j)
			}
		}
	}

	// Assign cluster indices in order of first appearance.
	indexOf := make(map[int]int)
	for i := range boxes {
		root := find(i)
		idx, ok := indexOf[root]
		if !ok {
			idx = len(indexOf)
			indexOf[root] = idx
		}
		clusters[idx] = append(clusters[idx], boxes[i])
	}

	return clusters
}

// adjacent reports whether two boxes belong to the same visual occurrence:
// same page, and expanded rectangles intersecting.
func (a *Aggregator) adjacent(b1, b2 model.BoundingBox) bool {
	if b1.Page != b2.Page {
		return false
	}
	return b1.Rect().Expand(a.config.Margin).Intersects(b2.Rect().Expand(a.config.Margin))
}
