package graph

import (
	"slices"

	"github.com/matzehuels/pathviz/pkg/grid"
)

// NodeID identifies a node. It is also the label drawn next to the node.
type NodeID string

// Neighbour is one outgoing adjacency entry.
type Neighbour struct {
	To     NodeID
	Weight float64
}

// Edge is one AddEdge call, recorded in insertion order.
type Edge struct {
	From, To NodeID
	Weight   float64
}

// Graph is a weighted graph whose nodes may carry a grid position.
//
// Node identity and position are kept apart: a node exists once it has been
// added or named by an edge, and it may or may not have a position. Only the
// renderer requires positions.
type Graph struct {
	directed  bool
	adj       map[NodeID][]Neighbour
	nodes     []NodeID
	edges     []Edge
	positions map[NodeID]grid.Cell
}

// New creates an empty graph.
func New(directed bool) *Graph {
	return &Graph{
		directed:  directed,
		adj:       map[NodeID][]Neighbour{},
		positions: map[NodeID]grid.Cell{},
	}
}

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool { return g.directed }

// AddNode adds id if it is not already present.
func (g *Graph) AddNode(id NodeID) {
	if _, ok := g.adj[id]; ok {
		return
	}
	g.adj[id] = nil
	g.nodes = append(g.nodes, id)
}

// AddEdge adds a weighted edge from -> to, adding either endpoint if needed.
// In an undirected graph the reverse entry is added too, but Edges still
// reports the edge once.
func (g *Graph) AddEdge(from, to NodeID, weight float64) {
	g.AddNode(from)
	g.AddNode(to)
	g.adj[from] = append(g.adj[from], Neighbour{To: to, Weight: weight})
	if !g.directed {
		g.adj[to] = append(g.adj[to], Neighbour{To: from, Weight: weight})
	}
	g.edges = append(g.edges, Edge{From: from, To: to, Weight: weight})
}

// SetPosition places id at c, adding the node if needed.
func (g *Graph) SetPosition(id NodeID, c grid.Cell) {
	g.AddNode(id)
	g.positions[id] = c
}

// Position returns the position of id, if it has one.
func (g *Graph) Position(id NodeID) (grid.Cell, bool) {
	c, ok := g.positions[id]
	return c, ok
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.adj[id]
	return ok
}

// Nodes returns node IDs in insertion order.
func (g *Graph) Nodes() []NodeID { return slices.Clone(g.nodes) }

// Edges returns edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Neighbours returns the adjacency list of id.
func (g *Graph) Neighbours(id NodeID) []Neighbour { return slices.Clone(g.adj[id]) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of AddEdge calls.
func (g *Graph) EdgeCount() int { return len(g.edges) }
