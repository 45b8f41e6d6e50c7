package hueloc

import (
	"fmt"
	"log/slog"

	"github.com/tsawler/hueloc/cluster"
	"github.com/tsawler/hueloc/export"
	"github.com/tsawler/hueloc/locate"
	"github.com/tsawler/hueloc/model"
)

// pipelineOptions holds configuration accumulated by the fluent chain.
type pipelineOptions struct {
	documentID  string
	outputFiles []string

	baselineDir  string
	colorizedDir string
	checkShift   bool

	hues map[model.EntityID]float64

	locatorConfig locate.Config
	clusterConfig cluster.Config
}

// defaultPipelineOptions returns the default pipeline configuration.
func defaultPipelineOptions() pipelineOptions {
	return pipelineOptions{
		locatorConfig: locate.DefaultConfig(),
		clusterConfig: cluster.DefaultConfig(),
	}
}

// clone creates a deep copy of pipelineOptions.
func (o pipelineOptions) clone() pipelineOptions {
	newOpts := o

	if o.outputFiles != nil {
		newOpts.outputFiles = make([]string, len(o.outputFiles))
		copy(newOpts.outputFiles, o.outputFiles)
	}
	if o.hues != nil {
		newOpts.hues = make(map[model.EntityID]float64, len(o.hues))
		for id, hue := range o.hues {
			newOpts.hues[id] = hue
		}
	}

	return newOpts
}

// Pipeline provides a fluent interface for locating hue-encoded entities in
// a document's rendered diff images. Each configuration method returns a new
// Pipeline instance, making it safe for concurrent use and allowing method
// chaining.
type Pipeline struct {
	diffDir string
	options pipelineOptions
	log     *slog.Logger

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Pipeline with a deep copy of options.
// This ensures immutability: each chain method returns a new instance.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		diffDir: p.diffDir,
		options: p.options.clone(),
		log:     p.log,
		err:     p.err,
	}
}

// ============================================================================
// Configuration Methods (return new Pipeline instance)
// ============================================================================

// ID sets the document identifier used in diagnostics and log output.
//
// Example:
//
//	result, _, err := hueloc.Document(dir).ID("1905.00075").Hues(hues).Locate()
func (p *Pipeline) ID(documentID string) *Pipeline {
	newPipe := p.clone()
	newPipe.options.documentID = documentID
	return newPipe
}

// OutputFiles names the compiled output files whose page rasters live in
// matching subdirectories of the diff image directory. Multiple calls are
// cumulative. When no output file is named, the diff directory itself is
// read as a single page directory.
//
// Example:
//
//	result, _, err := hueloc.Document(dir).
//	    OutputFiles("main.pdf", "supplement.pdf").
//	    Hues(hues).
//	    Locate()
func (p *Pipeline) OutputFiles(files ...string) *Pipeline {
	newPipe := p.clone()
	newPipe.options.outputFiles = append(newPipe.options.outputFiles, files...)
	return newPipe
}

// Hues assigns each entity its hue in [0, 1). Multiple calls merge; later
// assignments win for a repeated entity.
//
// Example:
//
//	result, _, err := hueloc.Document(dir).
//	    Hues(map[model.EntityID]float64{"smith2019": 0.25}).
//	    Locate()
func (p *Pipeline) Hues(hues map[model.EntityID]float64) *Pipeline {
	newPipe := p.clone()
	if newPipe.options.hues == nil {
		newPipe.options.hues = make(map[model.EntityID]float64, len(hues))
	}
	for id, hue := range hues {
		newPipe.options.hues[id] = hue
	}
	return newPipe
}

// Hue assigns a single entity its hue in [0, 1).
//
// Example:
//
//	result, _, err := hueloc.Document(dir).Hue("smith2019", 0.25).Locate()
func (p *Pipeline) Hue(id model.EntityID, hue float64) *Pipeline {
	return p.Hues(map[model.EntityID]float64{id: hue})
}

// Tolerance sets the hue-matching tolerance. Distances are circular, so
// hues near 0 and near 1 still match each other.
//
// Example:
//
//	result, _, err := hueloc.Document(dir).Hues(hues).Tolerance(0.04).Locate()
func (p *Pipeline) Tolerance(tolerance float64) *Pipeline {
	newPipe := p.clone()
	newPipe.options.locatorConfig.Mask.Tolerance = tolerance
	newPipe.options.locatorConfig.Shift.Tolerance = tolerance
	return newPipe
}

// CheckLayoutShift enables layout-shift detection, comparing the baseline
// page rasters in baselineDir against the colorized rasters in colorizedDir.
// Entities whose colorization moved content are reported as warnings and in
// the result's ShiftedEntities list.
//
// Example:
//
//	result, warnings, err := hueloc.Document(diffDir).
//	    CheckLayoutShift(baseDir, colorDir).
//	    Hues(hues).
//	    Locate()
func (p *Pipeline) CheckLayoutShift(baselineDir, colorizedDir string) *Pipeline {
	newPipe := p.clone()
	newPipe.options.checkShift = true
	newPipe.options.baselineDir = baselineDir
	newPipe.options.colorizedDir = colorizedDir
	return newPipe
}

// ClusterMargin sets the normalized margin used when grouping boxes into
// per-occurrence clusters. Only Clustered uses it.
//
// Example:
//
//	clustered, _, err := hueloc.Document(dir).Hues(hues).ClusterMargin(0.02).Clustered()
func (p *Pipeline) ClusterMargin(margin float64) *Pipeline {
	newPipe := p.clone()
	newPipe.options.clusterConfig.Margin = margin
	return newPipe
}

// WithLocatorConfig replaces the full locator configuration for callers
// needing control beyond the convenience setters.
func (p *Pipeline) WithLocatorConfig(config locate.Config) *Pipeline {
	newPipe := p.clone()
	checkShift := newPipe.options.checkShift
	newPipe.options.locatorConfig = config
	newPipe.options.checkShift = checkShift || config.CheckLayoutShift
	return newPipe
}

// Logger attaches an optional slog logger for progress and warning output.
// Findings are always returned as warnings regardless; the logger is a
// convenience adapter.
func (p *Pipeline) Logger(log *slog.Logger) *Pipeline {
	newPipe := p.clone()
	newPipe.log = log
	return newPipe
}

// ============================================================================
// Terminal Operations (execute the pipeline and return results)
// ============================================================================

// Locate runs the localization pass and returns the per-entity bounding
// boxes along with any warnings.
//
// Returns the location result, any warnings encountered during processing,
// and an error if localization failed. Warnings indicate non-fatal issues
// (artifact pixels, layout shifts) where localization succeeded but results
// may be imperfect.
//
// Example:
//
//	result, warnings, err := hueloc.Document(dir).Hues(hues).Locate()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", hueloc.FormatWarnings(warnings))
//	}
func (p *Pipeline) Locate() (*model.LocationResult, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}

	config := p.options.locatorConfig
	config.CheckLayoutShift = p.options.checkShift

	locator, err := locate.NewLocatorWithConfig(config)
	if err != nil {
		return nil, nil, err
	}
	locator.SetLogger(p.log)

	outputFiles := p.options.outputFiles
	if len(outputFiles) == 0 {
		// The diff directory itself holds the page rasters.
		outputFiles = []string{""}
	}

	result, err := locator.Locate(locate.Request{
		DocumentID:         p.options.documentID,
		OutputFiles:        outputFiles,
		DiffImagesDir:      p.diffDir,
		BaselineImagesDir:  p.options.baselineDir,
		ColorizedImagesDir: p.options.colorizedDir,
		Hues:               p.options.hues,
	})
	if err != nil {
		return nil, nil, err
	}

	return result, collectWarnings(result), nil
}

// Clustered runs localization and groups each entity's boxes into spatial
// clusters, one per visual occurrence. This is a terminal operation.
//
// Example:
//
//	clustered, warnings, err := hueloc.Document(dir).Hues(hues).Clustered()
//	for id, clusters := range clustered {
//	    fmt.Printf("%s appears %d times\n", id, len(clusters))
//	}
func (p *Pipeline) Clustered() (map[model.EntityID]cluster.Clusters, []Warning, error) {
	result, warnings, err := p.Locate()
	if err != nil {
		return nil, warnings, err
	}

	if err := p.options.clusterConfig.Validate(); err != nil {
		return nil, warnings, err
	}
	aggregator := cluster.NewAggregatorWithConfig(p.options.clusterConfig)
	return aggregator.Cluster(result.Locations), warnings, nil
}

// ExportCitations runs localization, clusters the boxes, resolves citation
// keys against the resolutions table, and writes the export container to
// dest. Keys with no resolution are skipped and logged. This is a terminal
// operation.
//
// Example:
//
//	warnings, err := hueloc.Document(dir).
//	    Hues(hues).
//	    ExportCitations(resolutions, "citations.json")
func (p *Pipeline) ExportCitations(resolutions map[string]string, dest string) ([]Warning, error) {
	clustered, warnings, err := p.Clustered()
	if err != nil {
		return warnings, err
	}

	infos, unresolved := export.BuildCitationInfos(clustered, resolutions)
	for _, key := range unresolved {
		p.warn("citation key has no paper resolution, skipping", "key", key)
	}

	if err := export.NewWriter().Write(infos, dest); err != nil {
		return warnings, fmt.Errorf("exporting citations: %w", err)
	}
	return warnings, nil
}

// collectWarnings converts result-level quality flags into warnings.
func collectWarnings(result *model.LocationResult) []Warning {
	var warnings []Warning
	if result.BlackPixelsFound {
		warnings = append(warnings, Warning{
			Code:    WarnBlackPixels,
			Message: "near-black pixels found in diff images; boxes may be imprecise",
		})
	}
	for _, id := range result.ShiftedEntities {
		warnings = append(warnings, Warning{
			Code:    WarnLayoutShift,
			Message: fmt.Sprintf("entity %s moved page content when colorized", id),
		})
	}
	return warnings
}

// warn emits through the optional logger.
func (p *Pipeline) warn(msg string, args ...any) {
	if p.log != nil {
		p.log.Warn(msg, args...)
	}
}
