// Package pipeline turns scenes into rendered artifacts.
//
// This package is the single place where a scene, a list of output formats
// and the plotter settings meet the cache and the observability hooks. The
// CLI and the HTTP server both go through a [Runner], so they produce
// identical bytes for identical inputs and share cache entries.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, s, pipeline.Options{
//	    Formats:  []string{"png", "svg"},
//	    CellSize: 32,
//	})
//	if err != nil {
//	    return err
//	}
//	png := result.Artifacts["png"]
//
// # Engines
//
// The default engine draws every format with the pkg/plot backends. The
// graphviz engine lays out graph scenes with Graphviz instead (svg and png
// only); grid scenes always use the plot engine.
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/pathviz/pkg/cache"
	"github.com/matzehuels/pathviz/pkg/errors"
	"github.com/matzehuels/pathviz/pkg/plot"
	"github.com/matzehuels/pathviz/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and server
// =============================================================================

const (
	// DefaultCellSize is the default pixels per grid cell.
	DefaultCellSize = 32

	// DefaultTTL is how long rendered artifacts stay cached.
	DefaultTTL = 7 * 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatPNG  = plot.FormatPNG
	FormatSVG  = plot.FormatSVG
	FormatPDF  = plot.FormatPDF
	FormatText = plot.FormatText
	FormatDOT  = plot.FormatDOT
)

// Engines.
const (
	EnginePlot     = "plot"
	EngineGraphviz = "graphviz"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatText: true,
	FormatDOT:  true,
}

// FormatNames lists the valid formats in a stable order.
func FormatNames() []string {
	return []string{FormatPNG, FormatSVG, FormatPDF, FormatText, FormatDOT}
}

// =============================================================================
// Options - Render Configuration
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	Formats  []string      `json:"formats,omitempty"`
	CellSize int           `json:"cell_size,omitempty"`
	Color    bool          `json:"color,omitempty"`
	Engine   string        `json:"engine,omitempty"`
	Refresh  bool          `json:"refresh,omitempty"`
	TTL      time.Duration `json:"-"`

	// Progress, when set, is called before each format is rendered with
	// its 1-based index and the format count.
	Progress func(i, n int, format string) `json:"-"`
}

// ValidateAndSetDefaults normalizes format names and fills defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "text" {
			f = FormatText
		}
		if err := ValidateFormat(f); err != nil {
			return err
		}
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	o.Formats = formats

	if o.CellSize == 0 {
		o.CellSize = DefaultCellSize
	}
	if o.CellSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cell size must be positive, got %d", o.CellSize)
	}
	if o.Engine == "" {
		o.Engine = EnginePlot
	}
	if o.Engine != EnginePlot && o.Engine != EngineGraphviz {
		return errors.New(errors.ErrCodeInvalidInput, "invalid engine: %q (must be %q or %q)", o.Engine, EnginePlot, EngineGraphviz)
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	return nil
}

// ArtifactKeyOpts returns the cache key options for one format of a scene
// of the given kind. Only graph scenes are drawn by the graphviz engine, so
// grid scenes keep their cell size under it.
func (o Options) ArtifactKeyOpts(kind, format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG, FormatSVG, FormatPDF:
		k.CellSize = o.CellSize
	case FormatText:
		k.Color = o.Color
	}
	if o.usesGraphviz(kind, format) {
		k.Format = EngineGraphviz + "-" + format
		k.CellSize = 0
	}
	return k
}

// usesGraphviz reports whether RenderFormat hands this kind and format to
// Graphviz.
func (o Options) usesGraphviz(kind, format string) bool {
	return o.Engine == EngineGraphviz && kind == scene.KindGraph &&
		(format == FormatPNG || format == FormatSVG)
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// SceneHash is the content hash of the scene.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which formats came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RenderTime time.Duration
}

// CacheInfo tracks cache hits per format.
type CacheInfo struct {
	Hits map[string]bool
}

// AllHit reports whether every artifact came from the cache.
func (c CacheInfo) AllHit() bool {
	for _, hit := range c.Hits {
		if !hit {
			return false
		}
	}
	return len(c.Hits) > 0
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list.
func ParseFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
