package scene

import (
	"github.com/matzehuels/pathviz/pkg/errors"
	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/grid"
	"github.com/matzehuels/pathviz/pkg/plot"
)

// Figure renders the complete scene.
func (s *Scene) Figure() (*plot.Figure, error) {
	return s.Frame(s.Steps(), true)
}

// Frame renders the scene with only the first step attempts shaded, and the
// path drawn when withPath is set. Graph scenes ignore step.
func (s *Scene) Frame(step int, withPath bool) (*plot.Figure, error) {
	p, err := s.palette()
	if err != nil {
		return nil, err
	}

	switch s.Kind {
	case KindGrid:
		g, start, end, opts, err := s.gridInputs()
		if err != nil {
			return nil, err
		}
		attempts, _ := toCells("attempts", s.Grid.Attempts)
		step = max(0, min(step, len(attempts)))
		opts = append(opts, grid.WithPalette(p), grid.WithTitle(s.Title), grid.WithAttempts(attempts[:step]))
		if withPath {
			path, _ := toCells("path", s.Grid.Path)
			opts = append(opts, grid.WithPath(path))
		}
		return g.Render(start, end, opts...)

	case KindGraph:
		g, opts, err := s.graphInputs(withPath)
		if err != nil {
			return nil, err
		}
		return g.Render(append(opts, graph.WithPalette(p))...)
	}
	return nil, errors.New(errors.ErrCodeInvalidScene, "invalid scene kind: %q", s.Kind)
}

// DOT renders a graph scene as Graphviz source.
func (s *Scene) DOT() (string, error) {
	if s.Kind != KindGraph {
		return "", errors.New(errors.ErrCodeUnsupported, "dot output is only available for graph scenes")
	}
	p, err := s.palette()
	if err != nil {
		return "", err
	}
	g, opts, err := s.graphInputs(true)
	if err != nil {
		return "", err
	}
	return graph.ToDOT(g, append(opts, graph.WithPalette(p))...)
}

func (s *Scene) gridInputs() (*grid.Grid, grid.Cell, grid.Cell, []grid.RenderOption, error) {
	gs := s.Grid
	start, err := toCell("start", gs.Start)
	if err != nil {
		return nil, start, start, nil, err
	}
	end, err := toCell("end", gs.End)
	if err != nil {
		return nil, start, end, nil, err
	}
	barriers, err := toCells("barriers", gs.Barriers)
	if err != nil {
		return nil, start, end, nil, err
	}
	h, ok := grid.HeuristicByName(gs.Heuristic)
	if !ok {
		return nil, start, end, nil, errors.New(errors.ErrCodeInvalidScene, "unknown heuristic %q", gs.Heuristic)
	}

	g := grid.New(s.Side, grid.WithHeuristic(h), grid.WithCost(grid.BarrierCost(h)), grid.WithBarriers(barriers...))
	var opts []grid.RenderOption
	if gs.Metric == MetricHeuristic {
		opts = append(opts, grid.WithHeuristicMetric())
	}
	return g, start, end, opts, nil
}

func (s *Scene) graphInputs(withPath bool) (*graph.Graph, []graph.RenderOption, error) {
	gs := s.Graph
	doc := graph.Document{Directed: gs.Directed, Nodes: gs.Nodes, Edges: gs.Edges}
	g, err := doc.Graph()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "graph")
	}

	opts := []graph.RenderOption{graph.WithSide(s.Side), graph.WithTitle(s.Title)}
	if gs.Start != "" {
		opts = append(opts, graph.WithStart(graph.NodeID(gs.Start)))
	}
	if gs.End != "" {
		opts = append(opts, graph.WithEnd(graph.NodeID(gs.End)))
	}
	if withPath && len(gs.Path) > 0 {
		path := make([]graph.NodeID, len(gs.Path))
		for i, id := range gs.Path {
			path[i] = graph.NodeID(id)
		}
		opts = append(opts, graph.WithPath(path))
	}
	return g, opts, nil
}
