package raster

import (
	"fmt"
	"image"
	"os"

	// Standard library decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// Extended decoders: rasterizers differ in what they emit.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Load reads and decodes a page raster from disk. The format is detected
// from the file contents, not the extension.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening page raster: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding page raster %s: %w", path, err)
	}

	return FromImage(img), nil
}
