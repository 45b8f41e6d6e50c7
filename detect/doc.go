// Package detect provides the data-quality checks run over page rasters
// before localization results are trusted.
//
// # Artifact detection
//
// A correctly colorized render contains only bright, saturated hues on a
// white background. True or near-black pixels should never appear; their
// presence means the colorization escaped into an unexpected glyph or black
// text rendered where colorized text was expected. [ArtifactDetector] flags
// pixels that are simultaneously low-saturation and low-value. The value
// threshold sits well above zero on purpose: anti-aliasing blends black
// with white, so a corrupted glyph shows up as a halo of dark gray pixels,
// not solid black.
//
// # Layout-shift detection
//
// Inserting color markup into a document source can perturb line breaks or
// pagination instead of purely recoloring content, which invalidates every
// bounding box computed by same-position diffing. [ShiftDetector] classifies
// each pixel of the baseline and colorized renders as blank or non-blank,
// finds the pixels whose classification flipped, and declares a shift when
// any flipped pixel carries the target hue: new content appeared bearing
// the entity's color somewhere it was not before.
//
// Both detectors return their findings as plain values; escalation policy
// belongs to the caller.
package detect
