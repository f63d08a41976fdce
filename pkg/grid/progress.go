package grid

import "github.com/matzehuels/pathviz/pkg/colour"

// Metric maps an attempted cell to a shading fraction. Results outside
// [0, 1] are clamped by the renderer.
type Metric func(start, end, pos Cell) float64

// Progress is the straight-line distance from start to pos divided by the
// distance from start to end, clamped to [0, 1].
//
// When start == end there is no distance to cover and Progress returns 0.
func Progress(start, end, pos Cell) float64 {
	total := Euclidean(start, end)
	if total == 0 {
		return 0
	}
	return colour.Clamp01(Euclidean(start, pos) / total)
}

// HeuristicProgress is h(pos, end) / h(start, end), clamped to [0, 1]: the
// remaining heuristic distance to the goal relative to the start's. It runs
// the opposite way to Progress (1 at the start, 0 at the goal).
//
// When h(start, end) is 0 it returns 0.
func HeuristicProgress(h Heuristic, start, end, pos Cell) float64 {
	total := h(start, end)
	if total == 0 {
		return 0
	}
	return colour.Clamp01(h(pos, end) / total)
}

// HeuristicMetric adapts HeuristicProgress to a Metric for h.
func HeuristicMetric(h Heuristic) Metric {
	return func(start, end, pos Cell) float64 {
		return HeuristicProgress(h, start, end, pos)
	}
}
