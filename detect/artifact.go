package detect

import (
	"fmt"

	"github.com/tsawler/hueloc/raster"
)

// ArtifactConfig holds the thresholds for near-black pixel detection.
// Both values are fractions of the channel range.
type ArtifactConfig struct {
	// MaxSaturation is the saturation below which a pixel is considered
	// uncolored. Colored content can be dark, but it stays saturated.
	MaxSaturation float64

	// MaxValue is the value below which an uncolored pixel is considered
	// near-black. Set generously above zero to catch anti-aliasing halos.
	MaxValue float64
}

// DefaultArtifactConfig returns the tuned artifact thresholds
// (saturation 20/255, value 150/255). They are empirical; validate against
// the rendering toolchain before changing them.
func DefaultArtifactConfig() ArtifactConfig {
	return ArtifactConfig{
		MaxSaturation: 20.0 / 255.0,
		MaxValue:      150.0 / 255.0,
	}
}

// Validate checks the configuration for nonsensical values.
func (c ArtifactConfig) Validate() error {
	if c.MaxSaturation <= 0 || c.MaxSaturation > 1 {
		return fmt.Errorf("artifact saturation threshold must be in (0, 1], got %g", c.MaxSaturation)
	}
	if c.MaxValue <= 0 || c.MaxValue > 1 {
		return fmt.Errorf("artifact value threshold must be in (0, 1], got %g", c.MaxValue)
	}
	return nil
}

// ArtifactDetector flags rasters containing anomalous near-black pixels.
// It is stateless apart from configuration and safe for concurrent use.
type ArtifactDetector struct {
	config ArtifactConfig
}

// NewArtifactDetector creates a detector with default configuration.
func NewArtifactDetector() *ArtifactDetector {
	return &ArtifactDetector{config: DefaultArtifactConfig()}
}

// NewArtifactDetectorWithConfig creates a detector with custom configuration.
func NewArtifactDetectorWithConfig(config ArtifactConfig) *ArtifactDetector {
	return &ArtifactDetector{config: config}
}

// Detect reports whether the image contains any artifact pixel: one that is
// both low-saturation and low-value. A single such pixel is enough to mark
// the whole page.
func (d *ArtifactDetector) Detect(img *raster.Image) bool {
	width := img.Width()
	height := img.Height()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			_, s, v := img.HSVAt(x, y)
			if s < d.config.MaxSaturation && v < d.config.MaxValue {
				return true
			}
		}
	}
	return false
}
