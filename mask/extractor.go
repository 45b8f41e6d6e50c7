package mask

import (
	"fmt"

	"github.com/tsawler/hueloc/model"
	"github.com/tsawler/hueloc/raster"
)

// Config controls hue matching.
type Config struct {
	// Tolerance is the maximum circular hue distance, as a fraction of the
	// hue range, for a pixel to match the target hue.
	Tolerance float64

	// MinSaturation excludes near-gray pixels. Below this saturation a
	// pixel's hue reading is meaningless and must not match any target.
	MinSaturation float64

	// MinValue excludes near-black pixels, which belong to uncolorized
	// content rather than colorized entities.
	MinValue float64
}

// DefaultConfig returns the tuned matching defaults. The thresholds are
// empirical, calibrated against the rendering toolchain; override them via
// NewExtractorWithConfig if a different rasterizer changes the noise floor.
func DefaultConfig() Config {
	return Config{
		Tolerance:     0.02,
		MinSaturation: 0.2,
		MinValue:      0.39,
	}
}

// Validate checks the configuration for nonsensical values. It is called
// before any per-document work begins.
func (c Config) Validate() error {
	if c.Tolerance <= 0 || c.Tolerance > 0.5 {
		return fmt.Errorf("hue tolerance must be in (0, 0.5], got %g", c.Tolerance)
	}
	if c.MinSaturation < 0 || c.MinSaturation > 1 {
		return fmt.Errorf("minimum saturation must be in [0, 1], got %g", c.MinSaturation)
	}
	if c.MinValue < 0 || c.MinValue > 1 {
		return fmt.Errorf("minimum value must be in [0, 1], got %g", c.MinValue)
	}
	return nil
}

// Extractor finds the bounding boxes of pixel clusters matching a target
// hue. It is stateless apart from configuration and safe for concurrent use.
type Extractor struct {
	config Config
}

// NewExtractor creates an extractor with default configuration.
func NewExtractor() *Extractor {
	return &Extractor{config: DefaultConfig()}
}

// NewExtractorWithConfig creates an extractor with custom configuration.
func NewExtractorWithConfig(config Config) *Extractor {
	return &Extractor{config: config}
}

// ExtractRegions returns one bounding box per connected region of pixels
// matching the target hue, tagged with pageNumber and normalized to page
// dimensions. An image with no matching pixels yields an empty result.
// Boxes are returned in raster scan order of region discovery.
func (e *Extractor) ExtractRegions(img *raster.Image, pageNumber int, hue float64) []model.BoundingBox {
	width := img.Width()
	height := img.Height()
	if width == 0 || height == 0 {
		return nil
	}

	matched := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			h, s, v := img.HSVAt(x, y)
			if s < e.config.MinSaturation || v < e.config.MinValue {
				continue
			}
			if raster.HueDistance(h, hue) <= e.config.Tolerance {
				matched[y*width+x] = true
			}
		}
	}

	var boxes []model.BoundingBox
	visited := make([]bool, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if !matched[idx] || visited[idx] {
				continue
			}

			minX, minY, maxX, maxY := floodRegion(matched, visited, width, height, x, y)
			boxes = append(boxes, model.BoundingBox{
				Page:   pageNumber,
				Left:   float64(minX) / float64(width),
				Top:    float64(minY) / float64(height),
				Width:  float64(maxX-minX+1) / float64(width),
				Height: float64(maxY-minY+1) / float64(height),
			})
		}
	}

	return boxes
}

// floodRegion walks the 8-connected region containing (x, y) and returns
// its pixel extent. It uses an explicit queue rather than recursion so
// large regions cannot blow the stack.
func floodRegion(matched, visited []bool, width, height, x, y int) (minX, minY, maxX, maxY int) {
	minX, minY, maxX, maxY = x, y, x, y

	queue := []int{y*width + x}
	visited[y*width+x] = true

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]

		px := idx % width
		py := idx / width

		if px < minX {
			minX = px
		}
		if px > maxX {
			maxX = px
		}
		if py < minY {
			minY = py
		}
		if py > maxY {
			maxY = py
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := px+dx, py+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				nidx := ny*width + nx
				if matched[nidx] && !visited[nidx] {
					visited[nidx] = true
					queue = append(queue, nidx)
				}
			}
		}
	}

	return minX, minY, maxX, maxY
}
