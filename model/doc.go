// Package model provides the data types shared across the localization
// pipeline.
//
// This package defines the user-facing data structures produced by hue-based
// entity localization. All detection and extraction operations ultimately
// produce these types, making them the primary API for consuming results.
//
// # Bounding boxes
//
// A [BoundingBox] is an axis-aligned rectangle around one connected pixel
// cluster on one page, normalized to page dimensions:
//
//	box := model.BoundingBox{Page: 0, Left: 0.1, Top: 0.2, Width: 0.05, Height: 0.01}
//
// The [BBox] and [Point] types provide the geometric operations (intersection,
// union, expansion, overlap ratio) used by spatial clustering.
//
// # Results
//
// A [LocationResult] holds everything recovered for one document: the
// per-entity box lists plus the data-quality flags (artifact pixels found,
// layout shift detected). It is constructed once per document and not
// mutated afterwards.
//
// # Export
//
// [EntityUploadInfo] is the terminal export unit, one per (entity, cluster)
// pair, carrying an id, a type tag, the cluster's boxes, and an opaque
// metadata payload.
package model
