package locate

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/hueloc/detect"
	"github.com/tsawler/hueloc/mask"
	"github.com/tsawler/hueloc/model"
	"github.com/tsawler/hueloc/raster"
)

// ErrMissingDiffDirectory indicates that an expected diff-image directory
// does not exist, which means the colorized document failed to compile.
// The whole document's localization is abandoned when this occurs.
var ErrMissingDiffDirectory = errors.New("diff image directory not found")

// Config controls the locator and its detectors.
type Config struct {
	// Mask configures hue matching and region extraction.
	Mask mask.Config

	// Artifact configures near-black pixel detection.
	Artifact detect.ArtifactConfig

	// Shift configures layout-shift detection.
	Shift detect.ShiftConfig

	// CheckLayoutShift enables the layout-shift gate. When set, requests
	// must supply baseline and colorized raster directories, and shifted
	// entities are recorded in the result.
	CheckLayoutShift bool
}

// DefaultConfig returns the default locator configuration. Layout-shift
// checking is off by default.
func DefaultConfig() Config {
	return Config{
		Mask:     mask.DefaultConfig(),
		Artifact: detect.DefaultArtifactConfig(),
		Shift:    detect.DefaultShiftConfig(),
	}
}

// Validate checks all detector thresholds. It is called before any
// per-document work begins.
func (c Config) Validate() error {
	if err := c.Mask.Validate(); err != nil {
		return fmt.Errorf("mask config: %w", err)
	}
	if err := c.Artifact.Validate(); err != nil {
		return fmt.Errorf("artifact config: %w", err)
	}
	if err := c.Shift.Validate(); err != nil {
		return fmt.Errorf("shift config: %w", err)
	}
	return nil
}

// Request describes one document to locate entities in.
type Request struct {
	// DocumentID identifies the document, for logging and diagnostics.
	DocumentID string

	// OutputFiles are the relative paths of the compiled output files,
	// as reported by the compilation stage. Each has a matching
	// subdirectory of page rasters under the image directories.
	OutputFiles []string

	// DiffImagesDir is the root holding one diff-image subdirectory per
	// output file.
	DiffImagesDir string

	// BaselineImagesDir and ColorizedImagesDir hold the unmodified and
	// colorized page rasters. Only consulted when layout-shift checking
	// is enabled.
	BaselineImagesDir  string
	ColorizedImagesDir string

	// Hues maps each entity to its assigned hue in [0, 1).
	Hues map[model.EntityID]float64
}

// validate checks the request shape before any pages are loaded.
func (r Request) validate(checkShift bool) error {
	if r.DiffImagesDir == "" {
		return errors.New("diff images directory is required")
	}
	if checkShift && (r.BaselineImagesDir == "" || r.ColorizedImagesDir == "") {
		return errors.New("layout-shift checking requires baseline and colorized image directories")
	}
	for id, hue := range r.Hues {
		if hue < 0 || hue >= 1 {
			return fmt.Errorf("entity %s: hue must be in [0, 1), got %g", id, hue)
		}
	}
	return nil
}

// Locator extracts per-entity bounding boxes from a document's diff images.
type Locator struct {
	config    Config
	extractor *mask.Extractor
	artifacts *detect.ArtifactDetector
	shifts    *detect.ShiftDetector
	log       *slog.Logger
}

// NewLocator creates a locator with default configuration.
func NewLocator() *Locator {
	l, _ := NewLocatorWithConfig(DefaultConfig())
	return l
}

// NewLocatorWithConfig creates a locator with custom configuration.
// Invalid thresholds are rejected here, before any document is processed.
func NewLocatorWithConfig(config Config) (*Locator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Locator{
		config:    config,
		extractor: mask.NewExtractorWithConfig(config.Mask),
		artifacts: detect.NewArtifactDetectorWithConfig(config.Artifact),
		shifts:    detect.NewShiftDetectorWithConfig(config.Shift),
	}, nil
}

// SetLogger attaches an optional slog logger for human-readable progress
// and warning output. Findings are always returned in the result
// regardless; the logger is a convenience adapter.
func (l *Locator) SetLogger(log *slog.Logger) {
	l.log = log
}

// Locate runs the full localization pass for one document and returns its
// LocationResult. On failure no partial result is produced.
func (l *Locator) Locate(req Request) (*model.LocationResult, error) {
	if err := req.validate(l.config.CheckLayoutShift); err != nil {
		return nil, err
	}

	result := &model.LocationResult{
		Locations: make(map[model.EntityID][]model.BoundingBox),
	}
	shifted := make(map[model.EntityID]bool)

	// Entities in sorted order keeps box accumulation and shift diagnostics
	// reproducible.
	entityIDs := make([]model.EntityID, 0, len(req.Hues))
	for id := range req.Hues {
		entityIDs = append(entityIDs, id)
	}
	sort.Strings(entityIDs)

	for _, outputFile := range req.OutputFiles {
		diffDir := filepath.Join(req.DiffImagesDir, outputFile)
		if _, err := os.Stat(diffDir); err != nil {
			// The colorized compile is presumed to have failed entirely.
			// Entities present only in this file cannot be verified as
			// absent vs. lost, so the whole document fails.
			l.warn("diff image directory missing, abandoning document",
				"document", req.DocumentID, "path", diffDir)
			return nil, fmt.Errorf("document %s: %s: %w", req.DocumentID, diffDir, ErrMissingDiffDirectory)
		}

		pages, err := loadPages(diffDir)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", req.DocumentID, err)
		}

		pageNumbers := sortedPageNumbers(pages)
		for _, n := range pageNumbers {
			if l.artifacts.Detect(pages[n]) {
				l.warn("black pixels found in image diff",
					"document", req.DocumentID, "file", outputFile, "page", n)
				result.BlackPixelsFound = true
			}
		}

		var basePages, colorPages map[int]*raster.Image
		if l.config.CheckLayoutShift {
			basePages, err = loadPages(filepath.Join(req.BaselineImagesDir, outputFile))
			if err != nil {
				return nil, fmt.Errorf("document %s: baseline rasters: %w", req.DocumentID, err)
			}
			colorPages, err = loadPages(filepath.Join(req.ColorizedImagesDir, outputFile))
			if err != nil {
				return nil, fmt.Errorf("document %s: colorized rasters: %w", req.DocumentID, err)
			}
		}

		for _, id := range entityIDs {
			hue := req.Hues[id]
			for _, n := range pageNumbers {
				boxes := l.extractor.ExtractRegions(pages[n], n, hue)
				result.Locations[id] = append(result.Locations[id], boxes...)

				if l.config.CheckLayoutShift && !shifted[id] {
					before, okB := basePages[n]
					after, okA := colorPages[n]
					if okB && okA && l.shifts.Detect(before, after, hue) {
						l.warn("layout shift detected",
							"document", req.DocumentID, "entity", id, "page", n)
						shifted[id] = true
						result.ShiftedEntities = append(result.ShiftedEntities, id)
						if result.FirstShiftedEntity == "" {
							result.FirstShiftedEntity = id
						}
					}
				}
			}
		}
	}

	return result, nil
}

// warn emits through the optional logger.
func (l *Locator) warn(msg string, args ...any) {
	if l.log != nil {
		l.log.Warn(msg, args...)
	}
}

// loadPages reads every page raster in dir, keyed by zero-indexed page
// number. A missing directory or a filename outside the page-<n>
// convention is an error: silently skipping either would corrupt the page
// number key space.
func loadPages(dir string) (map[int]*raster.Image, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading page directory: %w", err)
	}

	pages := make(map[int]*raster.Image, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			return nil, fmt.Errorf("unexpected subdirectory %s in page directory %s", entry.Name(), dir)
		}

		n, err := parsePageNumber(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("page directory %s: %w", dir, err)
		}
		if _, dup := pages[n]; dup {
			return nil, fmt.Errorf("page directory %s: duplicate page number %d", dir, n+1)
		}

		img, err := raster.Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		pages[n] = img
	}

	return pages, nil
}

// parsePageNumber extracts the zero-indexed page number from a filename
// following the page-<n>.<ext> convention, where <n> is 1-indexed.
func parsePageNumber(name string) (int, error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	digits, ok := strings.CutPrefix(base, "page-")
	if !ok {
		return 0, fmt.Errorf("malformed page filename %q: expected page-<n> prefix", name)
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("malformed page filename %q: bad page number", name)
	}

	return n - 1, nil
}

// sortedPageNumbers returns the page keys in ascending order.
func sortedPageNumbers(pages map[int]*raster.Image) []int {
	numbers := make([]int, 0, len(pages))
	for n := range pages {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}
