// Package locate walks a document's rendered diff images and accumulates
// per-entity bounding boxes across all pages of all output files.
//
// A document compiles to one or more output files; each output file has a
// directory of page rasters named page-1.png, page-2.png, and so on
// (1-indexed on disk, 0-indexed in results). The [Locator] loads every page
// of every output file, runs the artifact detector over each, extracts the
// regions matching each entity's assigned hue, and returns everything as a
// single [model.LocationResult].
//
// # Failure semantics
//
// A missing diff-image directory means the colorized compile failed for
// that output file; the whole document's localization is abandoned (no
// partial result) and the error wraps [ErrMissingDiffDirectory]. A page
// filename that does not follow the page-<n> convention corrupts the page
// number key space and fails loudly rather than being skipped.
//
// # Layout-shift checking
//
// Shift detection is an opt-in data-quality gate: set
// Config.CheckLayoutShift and supply the baseline and colorized raster
// directories in the [Request]. Shifted entities are recorded in the
// result; whether to discard a shifted document is the caller's decision.
package locate
