package grid

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// String formats c as "(x, y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Heuristic estimates the distance between two cells.
type Heuristic func(a, b Cell) float64

// CostFunc is the cost of stepping from a to b given the barrier set.
type CostFunc func(a, b Cell, barriers map[Cell]bool) float64

// Option configures a Grid.
type Option func(*Grid)

// WithHeuristic sets the heuristic. Nil keeps the default (Euclidean).
func WithHeuristic(h Heuristic) Option {
	return func(g *Grid) {
		if h != nil {
			g.heuristic = h
		}
	}
}

// WithCost sets the cost function. Nil keeps the default.
func WithCost(c CostFunc) Option {
	return func(g *Grid) {
		if c != nil {
			g.cost = c
		}
	}
}

// WithBarriers adds barrier cells.
func WithBarriers(cells ...Cell) Option {
	return func(g *Grid) {
		for _, c := range cells {
			if !g.barrierSet[c] {
				g.barrierSet[c] = true
				g.barriers = append(g.barriers, c)
			}
		}
	}
}

// Grid is a read-only square grid with barriers, a heuristic and a cost
// function.
type Grid struct {
	side       int
	heuristic  Heuristic
	cost       CostFunc
	barriers   []Cell
	barrierSet map[Cell]bool
}

// DefaultSide is the grid side used when none is given.
const DefaultSide = 20

// New creates a side x side grid. A non-positive side uses DefaultSide.
// The default heuristic is Euclidean and the default cost is
// BarrierCost(Euclidean).
func New(side int, opts ...Option) *Grid {
	if side <= 0 {
		side = DefaultSide
	}
	g := &Grid{
		side:       side,
		heuristic:  Euclidean,
		cost:       BarrierCost(Euclidean),
		barrierSet: map[Cell]bool{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Side returns the grid side length.
func (g *Grid) Side() int { return g.side }

// Barriers returns the barrier cells in insertion order.
func (g *Grid) Barriers() []Cell { return slices.Clone(g.barriers) }

// IsBarrier reports whether c is a barrier.
func (g *Grid) IsBarrier(c Cell) bool { return g.barrierSet[c] }

// InBounds reports whether c lies on the grid.
func (g *Grid) InBounds(c Cell) bool {
	return 0 <= c.X && c.X < g.side && 0 <= c.Y && c.Y < g.side
}

// H is the heuristic estimate from a to b.
func (g *Grid) H(a, b Cell) float64 { return g.heuristic(a, b) }

// G is the cost of moving from a to b.
func (g *Grid) G(a, b Cell) float64 { return g.cost(a, b, g.barrierSet) }

// neighbourOffsets lists the 8-connected offsets in enumeration order.
var neighbourOffsets = [8]Cell{
	{-1, 1}, {0, 1}, {1, 1},
	{-1, 0}, {1, 0},
	{-1, -1}, {0, -1}, {1, -1},
}

// Neighbours yields the in-bounds 8-connected neighbours of c.
// Barriers are included; the cost function decides whether they can be
// entered.
func (g *Grid) Neighbours(c Cell) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, d := range neighbourOffsets {
			n := Cell{c.X + d.X, c.Y + d.Y}
			if !g.InBounds(n) {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// Stock heuristics.

// Euclidean is the straight-line distance.
func Euclidean(a, b Cell) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

// Manhattan is the 4-connected taxicab distance.
func Manhattan(a, b Cell) float64 {
	return math.Abs(float64(b.X-a.X)) + math.Abs(float64(b.Y-a.Y))
}

// Chebyshev is the 8-connected distance with unit diagonal cost.
func Chebyshev(a, b Cell) float64 {
	return math.Max(math.Abs(float64(b.X-a.X)), math.Abs(float64(b.Y-a.Y)))
}

// Octile is the 8-connected distance with diagonal cost sqrt(2).
func Octile(a, b Cell) float64 {
	dx := math.Abs(float64(b.X - a.X))
	dy := math.Abs(float64(b.Y - a.Y))
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}

var heuristics = map[string]Heuristic{
	"euclidean": Euclidean,
	"manhattan": Manhattan,
	"chebyshev": Chebyshev,
	"octile":    Octile,
}

// HeuristicNames lists the names accepted by HeuristicByName.
func HeuristicNames() []string {
	names := make([]string, 0, len(heuristics))
	for n := range heuristics {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// HeuristicByName returns a stock heuristic. The empty name is Euclidean.
func HeuristicByName(name string) (Heuristic, bool) {
	if name == "" {
		return Euclidean, true
	}
	h, ok := heuristics[name]
	return h, ok
}

// BarrierCost returns a cost function that charges step(a, b) to move, and
// +Inf to move onto a barrier.
func BarrierCost(step Heuristic) CostFunc {
	return func(a, b Cell, barriers map[Cell]bool) float64 {
		if barriers[b] {
			return math.Inf(1)
		}
		return step(a, b)
	}
}
