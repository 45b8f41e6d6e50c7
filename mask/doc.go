// Package mask extracts the pixel regions of a page raster that match a
// target hue.
//
// Each colorized entity renders in a unique hue, so the regions of a diff
// image whose hue matches the entity's assignment are exactly the places
// that entity appears. The [Extractor] matches pixels by circular hue
// distance, gated on minimum saturation and value so that near-gray and
// near-white background pixels (whose hue reading is arbitrary at
// near-zero saturation) never match.
//
// Matching pixels are grouped into 8-connected regions; each region yields
// one bounding box normalized to page dimensions. Region discovery follows
// raster scan order, so output is deterministic for a fixed image and hue.
//
//	extractor := mask.NewExtractor()
//	boxes := extractor.ExtractRegions(img, pageNumber, hue)
package mask
