// Package grid models a square pathfinding grid and renders search results
// over it.
//
// # Grid
//
// A [Grid] owns a side length, a set of barrier cells, a heuristic and a
// cost function. It performs no search itself; it gives a search
// collaborator the pieces it needs:
//
//	g := grid.New(20, grid.WithBarriers(walls...), grid.WithHeuristic(grid.Octile))
//	for n := range g.Neighbours(cell) {
//	    cost := g.G(cell, n)
//	    estimate := g.H(n, goal)
//	    // ...
//	}
//
// Neighbours are 8-connected and bounds-checked.
//
// # Rendering
//
// [Grid.Render] builds a [plot.Figure] from a start, an end, and optional
// path and attempt lists. Cells are coloured in a fixed priority order, each
// step overwriting the last: background, barriers, attempts, start, end. The
// start and end cells are therefore always visible.
//
// Attempt cells are shaded between two palette colours by a [Metric]. The
// default is [Progress], the straight-line fraction of the way from start to
// end. [HeuristicProgress] instead uses the grid's heuristic distance to the
// goal relative to the start's. Whatever metric is used, its result is
// clamped to [0, 1] before shading.
package grid
