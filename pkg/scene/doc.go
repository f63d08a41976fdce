// Package scene loads scene documents: a grid or graph render described in
// TOML or JSON, so the renderers can be driven without writing Go.
//
// A grid scene:
//
//	kind = "grid"
//	side = 5
//	title = "A* on 5x5"
//
//	[grid]
//	start = [0, 0]
//	end = [4, 4]
//	barriers = [[2, 2], [2, 3]]
//	path = [[0, 0], [1, 1], [2, 1], [3, 2], [4, 3], [4, 4]]
//	attempts = [[1, 0], [1, 1], [2, 1]]
//	heuristic = "octile"
//	metric = "progress"
//
// A graph scene:
//
//	kind = "graph"
//
//	[graph]
//	start = "A"
//	end = "B"
//	path = ["A", "B"]
//
//	[[graph.nodes]]
//	id = "A"
//	pos = [0, 0]
//
//	[[graph.nodes]]
//	id = "B"
//	pos = [1, 1]
//
//	[[graph.edges]]
//	from = "A"
//	to = "B"
//	weight = 7
//
// Both kinds accept a [palette] table overriding named colours, for example
// start = "#000000".
package scene
