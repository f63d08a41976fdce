package plot

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/matzehuels/pathviz/pkg/errors"
)

// PDF converts the output of an SVG plotter with rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
type PDF struct {
	svg *SVG
}

// NewPDF wraps an SVG plotter. A nil svg uses the defaults.
func NewPDF(svg *SVG) *PDF {
	if svg == nil {
		svg = NewSVG()
	}
	return &PDF{svg: svg}
}

// Format implements Plotter.
func (p *PDF) Format() string { return FormatPDF }

// Plot implements Plotter.
func (p *PDF) Plot(f *Figure) ([]byte, error) {
	svg, err := p.svg.Plot(f)
	if err != nil {
		return nil, err
	}
	return ToPDF(svg)
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// rsvgLookPath is swapped in tests.
var rsvgLookPath = exec.LookPath

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	bin, err := rsvgLookPath("rsvg-convert")
	if err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command(bin, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}

var _ Plotter = (*PDF)(nil)
