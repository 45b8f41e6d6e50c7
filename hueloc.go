// Package hueloc provides a fluent API for recovering the pixel positions
// of hue-encoded entities from rendered document images.
//
// Each entity of interest (a citation, an equation token) is rendered in a
// unique hue by an upstream colorization stage; diffing the baseline and
// colorized renders leaves only the recolored marks on a white field. This
// package scans those diff images for each entity's hue and reports
// normalized per-page bounding boxes.
//
// Basic usage:
//
//	result, warnings, err := hueloc.Document("diffs/doc1").
//	    Hues(map[model.EntityID]float64{"smith2019": 0.25}).
//	    Locate()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", hueloc.FormatWarnings(warnings))
//	}
//
// With options:
//
//	clustered, _, err := hueloc.Document("diffs/doc1").
//	    OutputFiles("main.pdf").
//	    CheckLayoutShift("renders/base", "renders/color").
//	    Hues(hues).
//	    Clustered()
//
// For advanced use cases, the lower-level locate, mask, detect, cluster,
// and export packages are also available.
package hueloc

// Document starts a localization pipeline over the given diff image
// directory and returns a Pipeline for fluent configuration.
//
// Example:
//
//	result, warnings, err := hueloc.Document("diffs/doc1").Hues(hues).Locate()
func Document(diffImagesDir string) *Pipeline {
	return &Pipeline{
		diffDir: diffImagesDir,
		options: defaultPipelineOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	refs := hueloc.Must(export.LoadReferences("references.csv"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustLocate is a helper that wraps a call to a terminal operation like
// Locate() or Clustered() and panics if the error is non-nil. It discards
// warnings and returns just the value.
//
// Example:
//
//	result := hueloc.MustLocate(hueloc.Document(dir).Hues(hues).Locate())
func MustLocate[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
