package detect

import (
	"fmt"

	"github.com/tsawler/hueloc/raster"
)

// ShiftConfig holds the thresholds for layout-shift detection. Saturation
// and value are fractions of the channel range; Tolerance is a fraction of
// the hue range.
type ShiftConfig struct {
	// BlankMaxSaturation and BlankMinValue classify a pixel as blank
	// (background): very low saturation and very high value.
	BlankMaxSaturation float64
	BlankMinValue      float64

	// Tolerance is the maximum circular hue distance for a changed pixel
	// to be attributed to the target entity.
	Tolerance float64
}

// DefaultShiftConfig returns the tuned shift-detection thresholds
// (saturation 10/255, value 230/255, hue tolerance 2%).
func DefaultShiftConfig() ShiftConfig {
	return ShiftConfig{
		BlankMaxSaturation: 10.0 / 255.0,
		BlankMinValue:      230.0 / 255.0,
		Tolerance:          0.02,
	}
}

// Validate checks the configuration for nonsensical values.
func (c ShiftConfig) Validate() error {
	if c.BlankMaxSaturation <= 0 || c.BlankMaxSaturation > 1 {
		return fmt.Errorf("blank saturation threshold must be in (0, 1], got %g", c.BlankMaxSaturation)
	}
	if c.BlankMinValue <= 0 || c.BlankMinValue > 1 {
		return fmt.Errorf("blank value threshold must be in (0, 1], got %g", c.BlankMinValue)
	}
	if c.Tolerance <= 0 || c.Tolerance > 0.5 {
		return fmt.Errorf("hue tolerance must be in (0, 0.5], got %g", c.Tolerance)
	}
	return nil
}

// ShiftDetector detects whether pixels of a given hue appeared or
// disappeared in a pattern inconsistent with a same-position recolor.
// It is stateless apart from configuration and safe for concurrent use.
type ShiftDetector struct {
	config ShiftConfig
}

// NewShiftDetector creates a detector with default configuration.
func NewShiftDetector() *ShiftDetector {
	return &ShiftDetector{config: DefaultShiftConfig()}
}

// NewShiftDetectorWithConfig creates a detector with custom configuration.
func NewShiftDetectorWithConfig(config ShiftConfig) *ShiftDetector {
	return &ShiftDetector{config: config}
}

// Detect reports whether content bearing the target hue moved between the
// baseline render and the colorized render. A pixel counts toward a shift
// when its blank/non-blank classification flipped between the two images
// and its hue in the colorized render matches the target. Images of
// different dimensions are reported as shifted outright, since repagination
// changes the raster extent.
//
// The check is deliberately conservative: it cannot tell a benign recolor
// with positional consequence apart from a genuine layout bug, so callers
// treat a positive result as a data-quality warning rather than proof.
func (d *ShiftDetector) Detect(before, after *raster.Image, hue float64) bool {
	if before.Width() != after.Width() || before.Height() != after.Height() {
		return true
	}

	width := after.Width()
	height := after.Height()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if d.blank(before, x, y) == d.blank(after, x, y) {
				continue
			}
			h, _, _ := after.HSVAt(x, y)
			if raster.HueDistance(h, hue) <= d.config.Tolerance {
				return true
			}
		}
	}
	return false
}

// blank classifies a pixel as background: low saturation, high value.
func (d *ShiftDetector) blank(img *raster.Image, x, y int) bool {
	_, s, v := img.HSVAt(x, y)
	return s < d.config.BlankMaxSaturation && v > d.config.BlankMinValue
}
