// Package pkg provides the core libraries for pathviz search visualization.
//
// # Overview
//
// Pathviz draws the state of a pathfinding search: the grid or graph being
// searched, the cells the search tried, and the path it found. The pkg
// directory is organized into four main areas:
//
//  1. [grid], [graph] - Domain models and renderers that build figures
//  2. [colour], [plot] - Colour maths and the plotting backends
//  3. [scene], [pipeline] - Scene files and orchestration (load → render → cache)
//  4. [cache], [config], [observability], [errors] - Infrastructure
//
// # Architecture
//
// The typical data flow through pathviz:
//
//	search algorithm (path, attempts)  or  scene file (TOML/JSON)
//	         ↓
//	    [grid] / [graph] Render (validate, colour cells, labels, segments)
//	         ↓
//	    [plot.Figure]
//	         ↓
//	    [plot.Plotter] (PNG, SVG, PDF, terminal text)  or  [graph.ToDOT]
//
// # Quick Start
//
// Render a search result over a grid:
//
//	import (
//	    "os"
//	    "github.com/matzehuels/pathviz/pkg/grid"
//	    "github.com/matzehuels/pathviz/pkg/plot"
//	)
//
//	g := grid.New(20, grid.WithBarriers(walls...), grid.WithHeuristic(grid.Octile))
//	png, err := g.Show(plot.NewRaster(), grid.Cell{X: 0, Y: 0}, grid.Cell{X: 19, Y: 19},
//	    grid.WithPath(path),
//	    grid.WithAttempts(attempts),
//	)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("search.png", png, 0o644)
//
// Or describe the scene in a file and let the pipeline cache the result:
//
//	s, _ := scene.Load("maze.toml")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, _ := runner.Execute(ctx, s, pipeline.Options{Formats: []string{"svg"}})
//
// # Package Organization
//
// Domain:
//   - [grid]: Square grid, heuristics, progress metric, grid renderer
//   - [graph]: Weighted graph with positions, graph renderer, DOT export
//
// Drawing:
//   - [colour]: Hex parsing, interpolation, palettes
//   - [plot]: Figure model and PNG/SVG/PDF/text/Graphviz backends
//
// Orchestration:
//   - [scene]: TOML/JSON scene documents
//   - [pipeline]: Multi-format rendering with caching and hooks
//
// Infrastructure:
//   - [cache]: File, Redis and null artifact caches
//   - [config]: TOML config file and PATHVIZ_* environment overrides
//   - [observability]: Render/cache/HTTP hooks and Prometheus metrics
//   - [errors]: Coded errors shared by every package
//   - [buildinfo]: Version stamping
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/pathviz/pkg/grid
// [graph]: https://pkg.go.dev/github.com/matzehuels/pathviz/pkg/graph
// [colour]: https://pkg.go.dev/github.com/matzehuels/pathviz/pkg/colour
// [plot]: https://pkg.go.dev/github.com/matzehuels/pathviz/pkg/plot
// [scene]: https://pkg.go.dev/github.com/matzehuels/pathviz/pkg/scene
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pathviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/pathviz/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/pathviz/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/pathviz/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/pathviz/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pathviz/pkg/buildinfo
//
// [graph.ToDOT]: https://pkg.go.dev/github.com/matzehuels/pathviz/pkg/graph#ToDOT
// [plot.Figure]: https://pkg.go.dev/github.com/matzehuels/pathviz/pkg/plot#Figure
// [plot.Plotter]: https://pkg.go.dev/github.com/matzehuels/pathviz/pkg/plot#Plotter
package pkg
