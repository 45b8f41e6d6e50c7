// Package raster provides loading and color-space access for rendered page
// images.
//
// Page rasters are produced by an external rendering toolchain and arrive as
// ordinary image files. This package decodes them into an [Image] that
// exposes per-pixel hue/saturation/value readings, which is the color space
// the rest of the pipeline matches in: hue is rotation-invariant to the
// lighting and anti-aliasing effects that make raw RGB comparisons brittle.
//
// # Supported formats
//
// PNG, JPEG, and GIF are decoded via the standard library. TIFF, BMP, and
// WebP are supported through the golang.org/x/image decoders, since
// rasterizers differ in what they emit.
//
// # Hue arithmetic
//
// Hues are normalized scalars in [0, 1) representing a color-wheel position.
// The wheel wraps around, so distance between hues is circular:
//
//	raster.HueDistance(0.99, 0.01) // 0.02, not 0.98
//
// # Diffing
//
// [Diff] implements the pixel-wise comparison between a baseline render and
// a colorized render of the same page: pixels that are identical in both
// cancel to white, leaving only the colorized content visible.
package raster
