package plot

import (
	"github.com/matzehuels/pathviz/pkg/colour"
	"github.com/matzehuels/pathviz/pkg/errors"
)

// Point is a position in grid units.
type Point struct {
	X, Y float64
}

// Label is a text annotation anchored at a point.
type Label struct {
	Text string
	At   Point
}

// Segment is a straight line between two points. Directed segments end in an
// arrow head at To.
type Segment struct {
	From, To Point
	Directed bool
}

// Figure is everything a plotter needs to draw one render.
//
// Pixels is indexed [y][x] and must be Side x Side. Path, when non-empty, is
// drawn as a single dashed polyline in order.
type Figure struct {
	Title      string
	Side       int
	Pixels     [][]colour.Color
	GridLine   colour.Color
	Labels     []Label
	LabelColor colour.Color
	Segments   []Segment
	EdgeColor  colour.Color
	Path       []Point
	PathColor  colour.Color
}

// NewFigure allocates a side x side figure with every cell set to bg.
func NewFigure(side int, bg colour.Color) *Figure {
	pixels := make([][]colour.Color, side)
	for y := range pixels {
		row := make([]colour.Color, side)
		for x := range row {
			row[x] = bg
		}
		pixels[y] = row
	}
	return &Figure{Side: side, Pixels: pixels}
}

// Set colours the cell at (x, y). Callers validate bounds first.
func (f *Figure) Set(x, y int, c colour.Color) {
	f.Pixels[y][x] = c
}

// At returns the colour of the cell at (x, y).
func (f *Figure) At(x, y int) colour.Color {
	return f.Pixels[y][x]
}

// AddLabel appends a text label.
func (f *Figure) AddLabel(text string, at Point) {
	f.Labels = append(f.Labels, Label{Text: text, At: at})
}

// AddSegment appends a line or arrow.
func (f *Figure) AddSegment(from, to Point, directed bool) {
	f.Segments = append(f.Segments, Segment{From: from, To: to, Directed: directed})
}

// Validate checks that the pixel buffer matches Side.
func (f *Figure) Validate() error {
	if f == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil figure")
	}
	if err := errors.ValidateSide(f.Side); err != nil {
		return err
	}
	if len(f.Pixels) != f.Side {
		return errors.New(errors.ErrCodeInvalidInput, "figure has %d rows, want %d", len(f.Pixels), f.Side)
	}
	for y, row := range f.Pixels {
		if len(row) != f.Side {
			return errors.New(errors.ErrCodeInvalidInput, "figure row %d has %d cells, want %d", y, len(row), f.Side)
		}
	}
	return nil
}

// PathCells returns the set of integer cells the path visits.
// Backends that cannot draw lines (the terminal) mark these cells instead.
func (f *Figure) PathCells() map[[2]int]bool {
	cells := make(map[[2]int]bool, len(f.Path))
	for _, p := range f.Path {
		cells[[2]int{int(p.X + 0.5), int(p.Y + 0.5)}] = true
	}
	return cells
}
