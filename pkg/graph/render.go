package graph

import (
	"strconv"

	"github.com/matzehuels/pathviz/pkg/colour"
	"github.com/matzehuels/pathviz/pkg/errors"
	"github.com/matzehuels/pathviz/pkg/grid"
	"github.com/matzehuels/pathviz/pkg/plot"
)

// DefaultSide is the grid side used when WithSide is not given.
const DefaultSide = 20

// Overlay offsets in grid units.
const (
	labelOffset   = -0.5
	weightLiftY   = 0.75
	missingPosMsg = "Node objects must contain a position to be displayed"
)

// RenderOption configures Render and ToDOT.
type RenderOption func(*renderOpts)

type renderOpts struct {
	start, end *NodeID
	path       []NodeID
	side       int
	palette    colour.Palette
	title      string
}

func newRenderOpts(opts []RenderOption) renderOpts {
	o := renderOpts{side: DefaultSide, palette: colour.DefaultPalette()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithStart marks id as the start node.
func WithStart(id NodeID) RenderOption {
	return func(o *renderOpts) { o.start = &id }
}

// WithEnd marks id as the end node.
func WithEnd(id NodeID) RenderOption {
	return func(o *renderOpts) { o.end = &id }
}

// WithPath highlights path as a dashed line. Edges between consecutive path
// nodes are not drawn separately.
func WithPath(path []NodeID) RenderOption {
	return func(o *renderOpts) { o.path = path }
}

// WithSide sets the grid side.
func WithSide(side int) RenderOption {
	return func(o *renderOpts) { o.side = side }
}

// WithPalette replaces the default colours.
func WithPalette(p colour.Palette) RenderOption {
	return func(o *renderOpts) { o.palette = p }
}

// WithTitle sets the figure title.
func WithTitle(title string) RenderOption {
	return func(o *renderOpts) { o.title = title }
}

// Render builds the figure for g.
//
// Every node is painted in the node colour and labelled with its ID, then
// start and end are painted over. Each edge gets a weight label above its
// midpoint and, unless it joins two consecutive path nodes, a segment from
// source to target. The segment carries an arrow head when g is directed.
func (g *Graph) Render(opts ...RenderOption) (*plot.Figure, error) {
	o := newRenderOpts(opts)
	if err := errors.ValidateSide(o.side); err != nil {
		return nil, err
	}
	if err := g.checkPositions(o); err != nil {
		return nil, err
	}

	p := o.palette
	fig := plot.NewFigure(o.side, p.Background)
	fig.Title = o.title
	fig.GridLine = p.GridLine
	fig.LabelColor = p.Label
	fig.EdgeColor = p.Edge
	fig.PathColor = p.GraphPath

	for _, id := range g.nodes {
		c := g.positions[id]
		fig.Set(c.X, c.Y, p.Node)
		fig.AddLabel(string(id), plot.Point{X: float64(c.X) + labelOffset, Y: float64(c.Y) + labelOffset})
	}
	if o.start != nil {
		c := g.positions[*o.start]
		fig.Set(c.X, c.Y, p.Start)
	}
	if o.end != nil {
		c := g.positions[*o.end]
		fig.Set(c.X, c.Y, p.End)
	}

	skip := skipSet(o.path)
	for _, e := range g.edges {
		a, b := point(g.positions[e.From]), point(g.positions[e.To])
		mid := plot.Point{
			X: (a.X+b.X)/2 + labelOffset,
			Y: (a.Y+b.Y)/2 + weightLiftY + labelOffset,
		}
		fig.AddLabel(FormatWeight(e.Weight), mid)
		if skip[[2]NodeID{e.From, e.To}] {
			continue
		}
		fig.AddSegment(a, b, g.directed)
	}

	for _, id := range o.path {
		fig.Path = append(fig.Path, point(g.positions[id]))
	}
	return fig, nil
}

// Show renders the figure and hands it to p once.
func (g *Graph) Show(p plot.Plotter, opts ...RenderOption) ([]byte, error) {
	fig, err := g.Render(opts...)
	if err != nil {
		return nil, err
	}
	return p.Plot(fig)
}

// FormatWeight formats w in its shortest form: 7, 2.5, 0.125.
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// checkPositions verifies every node that will be drawn has an on-grid
// position.
func (g *Graph) checkPositions(o renderOpts) error {
	check := func(id NodeID) error {
		c, ok := g.positions[id]
		if !ok {
			return errors.New(errors.ErrCodeMissingPosition, missingPosMsg)
		}
		return errors.ValidateCell("node "+strconv.Quote(string(id)), c.X, c.Y, o.side)
	}

	for _, id := range g.nodes {
		if err := check(id); err != nil {
			return err
		}
	}
	for _, id := range []*NodeID{o.start, o.end} {
		if id == nil {
			continue
		}
		if err := check(*id); err != nil {
			return err
		}
	}
	for _, id := range o.path {
		if err := check(id); err != nil {
			return err
		}
	}
	return nil
}

// skipSet returns consecutive path pairs in both orders.
func skipSet(path []NodeID) map[[2]NodeID]bool {
	skip := make(map[[2]NodeID]bool, 2*len(path))
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		skip[[2]NodeID{a, b}] = true
		skip[[2]NodeID{b, a}] = true
	}
	return skip
}

func point(c grid.Cell) plot.Point {
	return plot.Point{X: float64(c.X), Y: float64(c.Y)}
}
