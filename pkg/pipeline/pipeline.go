// Package pipeline orchestrates the load → build → compute → assemble →
// render flow for one edgelist input, with per-stage caching, and runs
// directory batches over it.
package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netplot/pkg/cache"
	"github.com/matzehuels/netplot/pkg/graph"
	"github.com/matzehuels/netplot/pkg/layout"
	"github.com/matzehuels/netplot/pkg/report"
)

// Target ranges for attribute scaling. Degenerate inputs (all values
// equal) fall back to the midpoint of the range.
const (
	NodeSizeMin = 500.0
	NodeSizeMax = 3500.0

	EdgeWidthMin = 0.5
	EdgeWidthMax = 4.5
)

// ValidFormats are the supported image output formats.
var ValidFormats = map[string]bool{
	"png": true,
	"svg": true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: png, svg)", format)
	}
	return nil
}

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input is the path to the edgelist file.
	Input string `json:"input"`

	// Layout selects the positioning algorithm (spring, circular,
	// kamada_kawai, random). Defaults to spring.
	Layout string `json:"layout,omitempty"`

	// SizeByDegree scales node sizes by node degree.
	SizeByDegree bool `json:"size_by_degree,omitempty"`

	// WidthByWeight scales edge widths by edge weight.
	WidthByWeight bool `json:"width_by_weight,omitempty"`

	// Format is the image output format (png or svg). Defaults to png.
	Format string `json:"format,omitempty"`

	// OutputDir is where artifacts are written. Defaults to "output".
	OutputDir string `json:"output_dir,omitempty"`

	// Seed for the seeded layouts. Zero is reserved to mean "unset"
	// and selects layout.DefaultSeed; pass any other value for a
	// specific seed.
	Seed int64 `json:"seed,omitempty"`

	// Width and Height of the rendered frame in pixels.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Jobs bounds batch parallelism across files. Defaults to 1.
	Jobs int `json:"jobs,omitempty"`

	// Refresh bypasses the cache and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
	algo      layout.Algorithm
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return fmt.Errorf("input is required")
	}
	if o.Layout == "" {
		o.Layout = layout.Spring.String()
	}
	algo, err := layout.Parse(o.Layout)
	if err != nil {
		return err
	}
	o.algo = algo

	if o.Format == "" {
		o.Format = "png"
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.OutputDir == "" {
		o.OutputDir = "output"
	}
	if o.Seed == 0 {
		o.Seed = layout.DefaultSeed
	}
	if o.Jobs <= 0 {
		o.Jobs = 1
	}
	o.validated = true
	return nil
}

// Algorithm returns the parsed layout algorithm. Only meaningful after
// ValidateAndSetDefaults.
func (o *Options) Algorithm() layout.Algorithm {
	return o.algo
}

// ImageKeyOpts returns the cache key options for the rendered image.
func (o *Options) ImageKeyOpts() cache.ImageKeyOpts {
	return cache.ImageKeyOpts{
		Layout:        o.Layout,
		SizeByDegree:  o.SizeByDegree,
		WidthByWeight: o.WidthByWeight,
		Format:        o.Format,
		Seed:          o.Seed,
		Width:         o.Width,
		Height:        o.Height,
	}
}

// TablePath returns the output path of the result table for the given
// input base name.
func (o *Options) TablePath(name string) string {
	return filepath.Join(o.OutputDir, fmt.Sprintf("network_%s.csv", name))
}

// ImagePath returns the output path of the rendered image for the given
// input base name. The name encodes the layout and both scaling flags so
// runs with different settings never overwrite each other.
func (o *Options) ImagePath(name string) string {
	return filepath.Join(o.OutputDir, fmt.Sprintf("%s_%s_size-%t_width-%t.%s",
		name, o.Layout, o.SizeByDegree, o.WidthByWeight, o.Format))
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this run.
	RunID string

	// Name is the cleaned base name of the input file.
	Name string

	// Graph is the built graph.
	Graph *graph.Graph

	// Table is the assembled centrality table.
	Table report.Table

	// TableCSV is the table rendered as CSV bytes.
	TableCSV []byte

	// Image is the rendered image bytes (per Options.Format).
	Image []byte

	// TablePath and ImagePath are set when artifacts were written to disk.
	TablePath string
	ImagePath string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	LoadTime    time.Duration
	ComputeTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ComputeHit bool // Whether centrality scores came from cache
	RenderHit  bool // Whether the image came from cache
}
