package pipeline

import (
	"context"

	"github.com/matzehuels/pathviz/pkg/errors"
	"github.com/matzehuels/pathviz/pkg/plot"
	"github.com/matzehuels/pathviz/pkg/scene"
)

// RenderFormat renders s into one format without touching the cache.
func RenderFormat(ctx context.Context, s *scene.Scene, format string, opts Options) ([]byte, error) {
	if format == FormatDOT {
		dot, err := s.DOT()
		if err != nil {
			return nil, err
		}
		return []byte(dot), nil
	}

	if opts.Engine == EngineGraphviz && s.Kind == scene.KindGraph {
		if format != FormatSVG && format != FormatPNG {
			return nil, errors.New(errors.ErrCodeUnsupported, "graphviz engine renders svg and png only, not %s", format)
		}
		dot, err := s.DOT()
		if err != nil {
			return nil, err
		}
		return plot.RenderDOT(ctx, dot, format)
	}

	p, err := plot.ByFormat(format, plot.Options{CellSize: opts.CellSize, Color: opts.Color})
	if err != nil {
		return nil, err
	}
	fig, err := s.Figure()
	if err != nil {
		return nil, err
	}
	return p.Plot(fig)
}
