package model

// EntityID is the opaque string key identifying what a bounding box belongs
// to (a citation key, a symbol token identifier). It says nothing about
// where the entity appears.
type EntityID = string

// Entity type tags used in export records.
const (
	EntityCitation = "citation"
	EntitySymbol   = "symbol"
)

// BoundingBox is one rectangular hull around a connected pixel cluster on
// one rendered page. Page numbers are zero-indexed; the remaining fields are
// normalized to page dimensions, so a full-width box has Width 1.0.
type BoundingBox struct {
	Page   int     `json:"page"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect returns the geometric rectangle of the box, dropping the page tag.
func (b BoundingBox) Rect() BBox {
	return BBox{X: b.Left, Y: b.Top, Width: b.Width, Height: b.Height}
}

// LocationResult holds everything recovered from one document's diff images:
// the bounding boxes found for each entity, plus the document-level
// data-quality flags. Box order within an entity is page order, then region
// discovery order on the page.
type LocationResult struct {
	// Locations maps each entity to the boxes attributed to it. Only
	// entities that were supplied a hue can appear as keys.
	Locations map[EntityID][]BoundingBox

	// ShiftedEntities lists entities whose colorization moved page content
	// rather than recoloring it in place. Empty unless layout-shift
	// checking was enabled.
	ShiftedEntities []EntityID

	// FirstShiftedEntity records the first entity detected as shifted, for
	// diagnostics. Empty when nothing shifted.
	FirstShiftedEntity EntityID

	// BlackPixelsFound reports whether any page of any output file
	// contained artifact (near-black) pixels. Localization results for the
	// document should be treated as suspect when set.
	BlackPixelsFound bool
}

// Shifted reports whether any entity's layout was detected as shifted.
func (r *LocationResult) Shifted() bool {
	return len(r.ShiftedEntities) > 0
}

// BoxCount returns the total number of bounding boxes across all entities.
func (r *LocationResult) BoxCount() int {
	n := 0
	for _, boxes := range r.Locations {
		n += len(boxes)
	}
	return n
}

// EntityUploadInfo is the export unit: one independently addressable visual
// instance of an entity, i.e. one (entity, cluster) pair. Written once,
// never updated in place.
type EntityUploadInfo struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	BoundingBoxes []BoundingBox  `json:"bounding_boxes"`
	Data          map[string]any `json:"data,omitempty"`
}
