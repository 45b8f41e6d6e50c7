package locate

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/hueloc/model"
	"github.com/tsawler/hueloc/raster"
)

// makePage builds a white page of the given size.
func makePage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func fillRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			img.SetRGBA(xx, yy, c)
		}
	}
}

// writePage encodes a page image under dir with the on-disk 1-indexed name.
func writePage(t *testing.T, dir string, pageNumber int, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, fmt.Sprintf("page-%d.png", pageNumber))
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLocateTwoEntitiesTwoPages(t *testing.T) {
	root := t.TempDir()
	diffDir := filepath.Join(root, "diff")
	fileDir := filepath.Join(diffDir, "main.pdf")

	hueA := 0.2
	hueB := 0.6

	page1 := makePage(100, 100)
	fillRect(page1, 10, 10, 20, 5, raster.HSVToRGB(hueA, 1, 1))
	fillRect(page1, 50, 50, 20, 5, raster.HSVToRGB(hueB, 1, 1))
	writePage(t, fileDir, 1, page1)

	page2 := makePage(100, 100)
	fillRect(page2, 30, 70, 20, 5, raster.HSVToRGB(hueA, 1, 1))
	fillRect(page2, 5, 5, 20, 5, raster.HSVToRGB(hueB, 1, 1))
	writePage(t, fileDir, 2, page2)

	l := NewLocator()
	result, err := l.Locate(Request{
		DocumentID:    "2001.00001",
		OutputFiles:   []string{"main.pdf"},
		DiffImagesDir: diffDir,
		Hues:          map[model.EntityID]float64{"ent-a": hueA, "ent-b": hueB},
	})
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}

	if len(result.Locations) != 2 {
		t.Fatalf("Expected 2 entities, got %d", len(result.Locations))
	}
	for _, id := range []model.EntityID{"ent-a", "ent-b"} {
		boxes := result.Locations[id]
		if len(boxes) != 2 {
			t.Fatalf("Entity %s: expected 2 boxes, got %d", id, len(boxes))
		}
		// Pages are 1-indexed on disk, 0-indexed in results, and boxes
		// arrive in page order.
		if boxes[0].Page != 0 || boxes[1].Page != 1 {
			t.Errorf("Entity %s: expected pages [0 1], got [%d %d]", id, boxes[0].Page, boxes[1].Page)
		}
	}
	if result.BlackPixelsFound {
		t.Error("Expected no artifact pixels")
	}
	if result.Shifted() {
		t.Error("Expected no shifted entities")
	}
}

func TestLocateMissingDiffDirectory(t *testing.T) {
	root := t.TempDir()

	l := NewLocator()
	_, err := l.Locate(Request{
		DocumentID:    "2001.00002",
		OutputFiles:   []string{"main.pdf"},
		DiffImagesDir: filepath.Join(root, "diff"),
		Hues:          map[model.EntityID]float64{"ent-a": 0.2},
	})
	if err == nil {
		t.Fatal("Expected failure for missing diff directory")
	}
	if !errors.Is(err, ErrMissingDiffDirectory) {
		t.Errorf("Expected ErrMissingDiffDirectory, got %v", err)
	}
}

func TestLocateMissingSecondOutputFileAbandonsDocument(t *testing.T) {
	root := t.TempDir()
	diffDir := filepath.Join(root, "diff")
	writePage(t, filepath.Join(diffDir, "main.pdf"), 1, makePage(50, 50))

	l := NewLocator()
	_, err := l.Locate(Request{
		OutputFiles:   []string{"main.pdf", "supplement.pdf"},
		DiffImagesDir: diffDir,
		Hues:          map[model.EntityID]float64{"ent-a": 0.2},
	})
	if !errors.Is(err, ErrMissingDiffDirectory) {
		t.Errorf("Expected whole-document failure, got %v", err)
	}
}

func TestLocateMalformedPageFilename(t *testing.T) {
	root := t.TempDir()
	fileDir := filepath.Join(root, "diff", "main.pdf")
	if err := os.MkdirAll(fileDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(fileDir, "thumbnail.png"), []byte("junk"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLocator()
	_, err := l.Locate(Request{
		OutputFiles:   []string{"main.pdf"},
		DiffImagesDir: filepath.Join(root, "diff"),
		Hues:          map[model.EntityID]float64{"ent-a": 0.2},
	})
	if err == nil {
		t.Fatal("Expected loud failure for malformed page filename")
	}
}

func TestLocateArtifactFlag(t *testing.T) {
	root := t.TempDir()
	diffDir := filepath.Join(root, "diff")

	page := makePage(50, 50)
	fillRect(page, 10, 10, 5, 5, color.RGBA{A: 255}) // black block
	writePage(t, filepath.Join(diffDir, "main.pdf"), 1, page)

	l := NewLocator()
	result, err := l.Locate(Request{
		OutputFiles:   []string{"main.pdf"},
		DiffImagesDir: diffDir,
		Hues:          map[model.EntityID]float64{"ent-a": 0.2},
	})
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if !result.BlackPixelsFound {
		t.Error("Expected BlackPixelsFound to be set")
	}
}

func TestLocateLayoutShiftGate(t *testing.T) {
	root := t.TempDir()
	diffDir := filepath.Join(root, "diff")
	baseDir := filepath.Join(root, "base")
	colorDir := filepath.Join(root, "color")

	hue := 0.3
	colored := raster.HSVToRGB(hue, 1, 1)

	// Baseline has content near the top; the colorized render moved it
	// down. The diff shows the colorized content at its new position.
	basePage := makePage(100, 100)
	fillRect(basePage, 10, 10, 30, 5, color.RGBA{A: 255})
	writePage(t, filepath.Join(baseDir, "main.pdf"), 1, basePage)

	colorPage := makePage(100, 100)
	fillRect(colorPage, 10, 60, 30, 5, colored)
	writePage(t, filepath.Join(colorDir, "main.pdf"), 1, colorPage)

	diffPage := makePage(100, 100)
	fillRect(diffPage, 10, 60, 30, 5, colored)
	writePage(t, filepath.Join(diffDir, "main.pdf"), 1, diffPage)

	config := DefaultConfig()
	config.CheckLayoutShift = true
	l, err := NewLocatorWithConfig(config)
	if err != nil {
		t.Fatal(err)
	}

	result, err := l.Locate(Request{
		OutputFiles:        []string{"main.pdf"},
		DiffImagesDir:      diffDir,
		BaselineImagesDir:  baseDir,
		ColorizedImagesDir: colorDir,
		Hues:               map[model.EntityID]float64{"ent-a": hue},
	})
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}

	if !result.Shifted() {
		t.Fatal("Expected a layout shift to be recorded")
	}
	if result.FirstShiftedEntity != "ent-a" {
		t.Errorf("Expected first shifted entity ent-a, got %q", result.FirstShiftedEntity)
	}
}

func TestLocateShiftRequiresImageDirs(t *testing.T) {
	config := DefaultConfig()
	config.CheckLayoutShift = true
	l, err := NewLocatorWithConfig(config)
	if err != nil {
		t.Fatal(err)
	}

	_, err = l.Locate(Request{
		OutputFiles:   []string{"main.pdf"},
		DiffImagesDir: t.TempDir(),
		Hues:          map[model.EntityID]float64{"ent-a": 0.2},
	})
	if err == nil {
		t.Error("Expected error when shift checking lacks image directories")
	}
}

func TestLocateRejectsBadHue(t *testing.T) {
	l := NewLocator()
	_, err := l.Locate(Request{
		OutputFiles:   []string{"main.pdf"},
		DiffImagesDir: t.TempDir(),
		Hues:          map[model.EntityID]float64{"ent-a": 1.5},
	})
	if err == nil {
		t.Error("Expected error for hue outside [0, 1)")
	}
}

func TestNewLocatorWithConfigRejectsBadThresholds(t *testing.T) {
	config := DefaultConfig()
	config.Mask.Tolerance = -1
	if _, err := NewLocatorWithConfig(config); err == nil {
		t.Error("Expected config validation failure before any document work")
	}
}

func TestParsePageNumber(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"page-1.png", 0, false},
		{"page-12.png", 11, false},
		{"page-3.tiff", 2, false},
		{"page-0.png", 0, true},  // pages are 1-indexed on disk
		{"page-x.png", 0, true},
		{"cover.png", 0, true},
		{"page-.png", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePageNumber(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
