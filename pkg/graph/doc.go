// Package graph models a weighted graph laid out on a grid and renders it
// for debugging graph searches.
//
// # Graph
//
// A [Graph] keeps node identity ([NodeID]) separate from node position.
// Nodes are added explicitly or by naming them in an edge; positions are set
// with [Graph.SetPosition]. Undirected edges are stored in both adjacency
// lists, so [Graph.Neighbours] sees them from either end, but [Graph.Edges]
// reports each [Graph.AddEdge] call once.
//
//	g := graph.New(false)
//	g.SetPosition("A", grid.Cell{X: 0, Y: 0})
//	g.SetPosition("B", grid.Cell{X: 1, Y: 1})
//	g.AddEdge("A", "B", 7)
//
// # Rendering
//
// [Graph.Render] paints each positioned node, labels it, and emits one
// segment and one weight label per edge. Edges between consecutive nodes of
// the highlighted path are left to the dashed path line instead of getting a
// segment of their own. Every node drawn must have a position; otherwise
// Render fails with a MISSING_POSITION error.
//
// [ToDOT] emits the same picture as Graphviz source with pinned positions,
// for rendering with [plot.RenderDOT].
//
// # Serialization
//
// [Document] is the node-link wire format used by scene files.
// [MarshalGraph], [ReadGraph] and the file variants convert to and from JSON.
package graph
