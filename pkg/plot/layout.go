package plot

import "math"

const (
	defaultCellSize = 32
	minCellSize     = 4
	maxCellSize     = 256
	tickLength      = 4.0
	maxTickLabels   = 25
)

// frame maps grid units to pixels for the image backends.
// The grid area is inset by margins that hold tick labels and the title.
type frame struct {
	side   int
	cell   float64
	left   float64
	top    float64
	right  float64
	bottom float64
}

func newFrame(f *Figure, cellSize int) frame {
	cell := float64(clampCellSize(cellSize))
	fr := frame{
		side:   f.Side,
		cell:   cell,
		left:   math.Max(28, cell),
		top:    12,
		right:  math.Max(12, cell/2),
		bottom: math.Max(28, cell),
	}
	if f.Title != "" {
		fr.top += 24
	}
	return fr
}

func clampCellSize(n int) int {
	if n <= 0 {
		return defaultCellSize
	}
	return max(minCellSize, min(maxCellSize, n))
}

func (fr frame) width() float64  { return fr.left + float64(fr.side)*fr.cell + fr.right }
func (fr frame) height() float64 { return fr.top + float64(fr.side)*fr.cell + fr.bottom }

// px converts an x coordinate in grid units to a pixel column.
func (fr frame) px(x float64) float64 {
	return fr.left + (x+0.5)*fr.cell
}

// py converts a y coordinate in grid units to a pixel row. y points up.
func (fr frame) py(y float64) float64 {
	return fr.top + (float64(fr.side)-0.5-y)*fr.cell
}

func (fr frame) point(p Point) (float64, float64) {
	return fr.px(p.X), fr.py(p.Y)
}

// cellOrigin is the top-left pixel of cell (x, y).
func (fr frame) cellOrigin(x, y int) (float64, float64) {
	return fr.px(float64(x) - 0.5), fr.py(float64(y) + 0.5)
}

// gridLeft, gridTop, gridRight, gridBottom bound the cell area in pixels.
func (fr frame) gridLeft() float64   { return fr.left }
func (fr frame) gridTop() float64    { return fr.top }
func (fr frame) gridRight() float64  { return fr.left + float64(fr.side)*fr.cell }
func (fr frame) gridBottom() float64 { return fr.top + float64(fr.side)*fr.cell }

// tickStep is the stride between labelled major ticks, so large grids do not
// print overlapping numbers. Every integer still gets a tick mark.
func (fr frame) tickStep() int {
	return max(1, int(math.Ceil(float64(fr.side)/maxTickLabels)))
}

func (fr frame) fontSize() float64 {
	return math.Max(8, math.Min(14, fr.cell*0.4))
}

// arrowHead returns the two wing points of an arrow ending at (x2, y2),
// or ok=false for a degenerate segment.
func arrowHead(x1, y1, x2, y2, length, width float64) (ax1, ay1, ax2, ay2 float64, ok bool) {
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return 0, 0, 0, 0, false
	}
	nx, ny := dx/dist, dy/dist
	ax1 = x2 - nx*length + ny*width
	ay1 = y2 - ny*length - nx*width
	ax2 = x2 - nx*length - ny*width
	ay2 = y2 - ny*length + nx*width
	return ax1, ay1, ax2, ay2, true
}
