package hueloc

import (
	"fmt"
	"strings"
)

// WarningCode classifies a non-fatal processing finding.
type WarningCode string

const (
	// WarnBlackPixels indicates near-black pixels were found in a diff
	// image, usually anti-aliasing halos around recolored glyphs. Boxes
	// were still extracted but may be imprecise.
	WarnBlackPixels WarningCode = "black-pixels"

	// WarnLayoutShift indicates an entity's colorization moved page
	// content instead of recoloring it in place. Boxes attributed to that
	// entity are unreliable.
	WarnLayoutShift WarningCode = "layout-shift"
)

// Warning describes a non-fatal issue found during localization. Processing
// succeeded but the results carry a caveat.
type Warning struct {
	Code    WarningCode
	Message string
}

// String returns a human-readable form of the warning.
func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into a single human-readable string,
// suitable for logging.
//
// Example:
//
//	result, warnings, err := hueloc.Document(dir).Hues(hues).Locate()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", hueloc.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
