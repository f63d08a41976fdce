package plot

import (
	"strings"

	"github.com/matzehuels/pathviz/pkg/errors"
)

// Output format names.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatText = "txt"
)

// Plotter turns a Figure into an encoded artifact.
type Plotter interface {
	// Format is the output format name, also used as the file extension.
	Format() string
	// Plot draws f. It is called once per render with a freshly built figure.
	Plot(f *Figure) ([]byte, error)
}

// ValidFormats is the set of formats ByFormat understands.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatText: true,
}

// Options configures the backends returned by ByFormat.
type Options struct {
	CellSize int  // pixels per cell for raster and vector output
	Color    bool // ANSI colour for terminal output
}

// ByFormat returns the plotter for a format name.
func ByFormat(format string, opts Options) (Plotter, error) {
	switch strings.ToLower(format) {
	case FormatPNG:
		return NewRaster(WithCellSize(opts.CellSize)), nil
	case FormatSVG:
		return NewSVG(WithSVGCellSize(opts.CellSize)), nil
	case FormatPDF:
		return NewPDF(NewSVG(WithSVGCellSize(opts.CellSize))), nil
	case FormatText, "text":
		return NewTerminal(opts.Color), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'png', 'svg', 'pdf', or 'txt')", format)
	}
}

// ValidateFormats checks that all requested formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[strings.ToLower(f)] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'png', 'svg', 'pdf', or 'txt')", f)
		}
	}
	return nil
}

// ContentType returns the MIME type for a format name.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
