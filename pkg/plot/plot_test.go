package plot

import (
	"bytes"
	"image/png"
	"os/exec"
	"strings"
	"testing"

	"github.com/matzehuels/pathviz/pkg/colour"
	"github.com/matzehuels/pathviz/pkg/errors"
)

func testFigure() *Figure {
	bg := colour.MustParseHex(colour.DefaultBackground)
	f := NewFigure(5, bg)
	f.GridLine = colour.MustParseHex(colour.DefaultGridLine)
	f.LabelColor = colour.Black
	f.EdgeColor = colour.Black
	f.PathColor = colour.Red
	f.Set(0, 0, colour.MustParseHex(colour.DefaultStart))
	f.Set(4, 4, colour.MustParseHex(colour.DefaultEnd))
	f.Set(2, 2, colour.MustParseHex(colour.DefaultBlock))
	return f
}

func TestNewFigure(t *testing.T) {
	bg := colour.MustParseHex("#123456")
	f := NewFigure(3, bg)
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if f.At(x, y) != bg {
				t.Errorf("At(%d, %d) = %v, want %v", x, y, f.At(x, y), bg)
			}
		}
	}

	// Rows must not alias each other.
	f.Set(1, 0, colour.Black)
	if f.At(1, 1) == colour.Black {
		t.Error("Set on row 0 leaked into row 1")
	}
}

func TestFigureValidate(t *testing.T) {
	tests := []struct {
		name string
		fig  *Figure
	}{
		{"nil", nil},
		{"zero side", &Figure{}},
		{"short rows", &Figure{Side: 2, Pixels: make([][]colour.Color, 1)}},
		{"ragged", &Figure{Side: 2, Pixels: [][]colour.Color{make([]colour.Color, 2), make([]colour.Color, 1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fig.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestPathCells(t *testing.T) {
	f := NewFigure(4, colour.White)
	f.Path = []Point{{0, 0}, {1, 1}, {2, 1}}
	cells := f.PathCells()
	for _, c := range [][2]int{{0, 0}, {1, 1}, {2, 1}} {
		if !cells[c] {
			t.Errorf("PathCells() missing %v", c)
		}
	}
	if len(cells) != 3 {
		t.Errorf("PathCells() len = %d, want 3", len(cells))
	}
}

func TestByFormat(t *testing.T) {
	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{"svg", FormatSVG, false},
		{"pdf", FormatPDF, false},
		{"txt", FormatText, false},
		{"text", FormatText, false},
		{"gif", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			p, err := ByFormat(tt.format, Options{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ByFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
				}
				return
			}
			if p.Format() != tt.want {
				t.Errorf("Format() = %q, want %q", p.Format(), tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"png", "svg", "pdf", "txt"}); err != nil {
		t.Errorf("ValidateFormats(valid) error: %v", err)
	}
	if err := ValidateFormats([]string{"png", "bmp"}); err == nil {
		t.Error("ValidateFormats should reject bmp")
	}
}

func TestRasterCellColours(t *testing.T) {
	f := testFigure()
	r := NewRaster(WithCellSize(20))

	data, err := r.Plot(f)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode error: %v", err)
	}

	fr := newFrame(f, 20)
	if got := img.Bounds().Dx(); got != int(fr.width()) {
		t.Errorf("width = %d, want %d", got, int(fr.width()))
	}

	tests := []struct {
		x, y int
		want colour.Color
	}{
		{0, 0, f.At(0, 0)},
		{4, 4, f.At(4, 4)},
		{2, 2, f.At(2, 2)},
		{1, 3, f.At(1, 3)},
	}
	for _, tt := range tests {
		px, py := fr.px(float64(tt.x)), fr.py(float64(tt.y))
		r, g, b, _ := img.At(int(px), int(py)).RGBA()
		want := tt.want.NRGBA()
		if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
			t.Errorf("pixel for cell (%d, %d) = (%d, %d, %d), want %v", tt.x, tt.y, r>>8, g>>8, b>>8, want)
		}
	}
}

func TestRasterRowZeroAtBottom(t *testing.T) {
	fr := newFrame(testFigure(), 10)
	if fr.py(0) <= fr.py(4) {
		t.Errorf("py(0) = %v should be below py(4) = %v", fr.py(0), fr.py(4))
	}
	if fr.px(0) >= fr.px(4) {
		t.Errorf("px(0) = %v should be left of px(4) = %v", fr.px(0), fr.px(4))
	}
}

func TestRasterRejectsInvalidFigure(t *testing.T) {
	if _, err := NewRaster().Plot(&Figure{Side: 3}); err == nil {
		t.Error("Plot() should fail for a figure without pixels")
	}
}

func TestSVG(t *testing.T) {
	f := testFigure()
	f.Title = "a < b"
	f.AddLabel("A", Point{-0.5, -0.5})
	f.AddSegment(Point{0, 0}, Point{4, 4}, true)
	f.AddSegment(Point{0, 0}, Point{2, 2}, false)
	f.Path = []Point{{0, 0}, {1, 1}, {4, 4}}

	data, err := NewSVG().Plot(f)
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	svg := string(data)

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`fill="#fc5c65"`,
		`fill="#45aaf2"`,
		`fill="#a5b1c2"`,
		`stroke-dasharray=`,
		`marker-end="url(#arrow)"`,
		`>A</text>`,
		`a &lt; b`,
		"</svg>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if got := strings.Count(svg, `marker-end=`); got != 1 {
		t.Errorf("arrow markers = %d, want 1", got)
	}
	if got := strings.Count(svg, `<path class="path"`); got != 1 {
		t.Errorf("dashed paths = %d, want 1", got)
	}
}

func TestSVGNoPath(t *testing.T) {
	data, err := NewSVG().Plot(testFigure())
	if err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	if strings.Contains(string(data), `class="path"`) {
		t.Error("SVG should not contain a path without path points")
	}
}

func TestTerminalPlain(t *testing.T) {
	f := NewFigure(2, colour.White)
	f.Set(1, 1, colour.Black)
	f.Path = []Point{{0, 0}}

	out := NewTerminal(false).Render(f)
	lines := strings.Split(out, "\n")

	// Row 1 is printed first: white then black.
	if lines[0] != "1  a b" {
		t.Errorf("row 1 = %q, want %q", lines[0], "1  a b")
	}
	if lines[1] != "0 *a a" {
		t.Errorf("row 0 = %q, want %q", lines[1], "0 *a a")
	}
	if !strings.Contains(out, "a = #ffffff") || !strings.Contains(out, "b = #000000") {
		t.Errorf("legend missing from:\n%s", out)
	}
}

func TestTerminalColour(t *testing.T) {
	f := NewFigure(2, colour.White)
	out := NewTerminal(true).Render(f)
	if !strings.Contains(out, "\x1b[") {
		t.Error("colour output should contain ANSI escapes")
	}
}

func TestPDFWithoutRsvg(t *testing.T) {
	orig := rsvgLookPath
	rsvgLookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	defer func() { rsvgLookPath = orig }()

	_, err := NewPDF(nil).Plot(testFigure())
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Plot() error = %v, want %v", err, errors.ErrCodeUnsupported)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"png": "image/png",
		"svg": "image/svg+xml",
		"pdf": "application/pdf",
		"txt": "text/plain; charset=utf-8",
		"dot": "text/vnd.graphviz; charset=utf-8",
	}
	for format, want := range tests {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestRenderDOTSource(t *testing.T) {
	src := "graph G { a -- b }"
	out, err := RenderDOT(t.Context(), src, FormatDOT)
	if err != nil {
		t.Fatalf("RenderDOT(dot) error: %v", err)
	}
	if string(out) != src {
		t.Errorf("RenderDOT(dot) = %q, want source unchanged", out)
	}
	if _, err := RenderDOT(t.Context(), src, "gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("RenderDOT(gif) error = %v, want %v", err, errors.ErrCodeInvalidFormat)
	}
}
