package grid

import (
	"github.com/matzehuels/pathviz/pkg/colour"
	"github.com/matzehuels/pathviz/pkg/errors"
	"github.com/matzehuels/pathviz/pkg/plot"
)

// RenderOption configures Render.
type RenderOption func(*renderOpts)

type renderOpts struct {
	path          []Cell
	attempts      []Cell
	palette       colour.Palette
	metric        Metric
	heuristicBase bool
	title         string
}

// WithPath draws a dashed line through path in order.
func WithPath(path []Cell) RenderOption {
	return func(o *renderOpts) { o.path = path }
}

// WithAttempts shades the given visited cells by the attempt metric.
func WithAttempts(attempts []Cell) RenderOption {
	return func(o *renderOpts) { o.attempts = attempts }
}

// WithPalette replaces the default colours.
func WithPalette(p colour.Palette) RenderOption {
	return func(o *renderOpts) { o.palette = p }
}

// WithMetric shades attempts with m instead of Progress.
func WithMetric(m Metric) RenderOption {
	return func(o *renderOpts) {
		if m != nil {
			o.metric = m
			o.heuristicBase = false
		}
	}
}

// WithHeuristicMetric shades attempts with HeuristicProgress using the grid's
// own heuristic.
func WithHeuristicMetric() RenderOption {
	return func(o *renderOpts) { o.heuristicBase = true }
}

// WithTitle sets the figure title.
func WithTitle(title string) RenderOption {
	return func(o *renderOpts) { o.title = title }
}

// Render builds the figure for a search from start to end.
//
// Cells are coloured background, then barriers, then attempts, then start,
// then end, each overwriting the previous. Any cell outside the grid is an
// INVALID_CELL error.
func (g *Grid) Render(start, end Cell, opts ...RenderOption) (*plot.Figure, error) {
	o := renderOpts{palette: colour.DefaultPalette(), metric: Progress}
	for _, opt := range opts {
		opt(&o)
	}
	if o.heuristicBase {
		o.metric = HeuristicMetric(g.heuristic)
	}

	if err := errors.ValidateSide(g.side); err != nil {
		return nil, err
	}
	if err := g.validate(start, end, o.path, o.attempts); err != nil {
		return nil, err
	}

	p := o.palette
	fig := plot.NewFigure(g.side, p.Background)
	fig.Title = o.title
	fig.GridLine = p.GridLine
	fig.LabelColor = p.Label
	fig.EdgeColor = p.Edge
	fig.PathColor = p.GridPath

	for _, b := range g.barriers {
		fig.Set(b.X, b.Y, p.Block)
	}
	for _, a := range o.attempts {
		t := colour.Clamp01(o.metric(start, end, a))
		fig.Set(a.X, a.Y, colour.Interpolate(p.AttemptFrom, p.AttemptTo, t))
	}
	fig.Set(start.X, start.Y, p.Start)
	fig.Set(end.X, end.Y, p.End)

	if len(o.path) > 0 {
		fig.Path = make([]plot.Point, len(o.path))
		for i, c := range o.path {
			fig.Path[i] = plot.Point{X: float64(c.X), Y: float64(c.Y)}
		}
	}
	return fig, nil
}

// Show renders the figure and hands it to p once.
func (g *Grid) Show(p plot.Plotter, start, end Cell, opts ...RenderOption) ([]byte, error) {
	fig, err := g.Render(start, end, opts...)
	if err != nil {
		return nil, err
	}
	return p.Plot(fig)
}

func (g *Grid) validate(start, end Cell, path, attempts []Cell) error {
	check := func(what string, cells ...Cell) error {
		for _, c := range cells {
			if err := errors.ValidateCell(what, c.X, c.Y, g.side); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check("start", start); err != nil {
		return err
	}
	if err := check("end", end); err != nil {
		return err
	}
	if err := check("barrier", g.barriers...); err != nil {
		return err
	}
	if err := check("path cell", path...); err != nil {
		return err
	}
	return check("attempt", attempts...)
}
