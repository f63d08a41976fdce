package graph

import (
	"math"

	"github.com/matzehuels/pathviz/pkg/errors"
	"github.com/matzehuels/pathviz/pkg/grid"
)

// Document is the node-link serialization of a Graph, used by scene files
// and the JSON import/export helpers.
//
//	{
//	  "directed": false,
//	  "nodes": [{"id": "A", "pos": [0, 0]}, {"id": "B", "pos": [1, 1]}],
//	  "edges": [{"from": "A", "to": "B", "weight": 7}]
//	}
type Document struct {
	Directed bool      `json:"directed,omitempty" toml:"directed,omitempty"`
	Nodes    []NodeDoc `json:"nodes" toml:"nodes"`
	Edges    []EdgeDoc `json:"edges" toml:"edges"`
}

// NodeDoc is one serialized node. Pos is optional.
type NodeDoc struct {
	ID  string `json:"id" toml:"id"`
	Pos []int  `json:"pos,omitempty" toml:"pos,omitempty"`
}

// EdgeDoc is one serialized edge.
type EdgeDoc struct {
	From   string  `json:"from" toml:"from"`
	To     string  `json:"to" toml:"to"`
	Weight float64 `json:"weight" toml:"weight"`
}

// FromGraph converts g to its serialization format, preserving insertion
// order.
func FromGraph(g *Graph) Document {
	doc := Document{
		Directed: g.directed,
		Nodes:    make([]NodeDoc, len(g.nodes)),
		Edges:    make([]EdgeDoc, len(g.edges)),
	}
	for i, id := range g.nodes {
		doc.Nodes[i] = NodeDoc{ID: string(id)}
		if c, ok := g.positions[id]; ok {
			doc.Nodes[i].Pos = []int{c.X, c.Y}
		}
	}
	for i, e := range g.edges {
		doc.Edges[i] = EdgeDoc{From: string(e.From), To: string(e.To), Weight: e.Weight}
	}
	return doc
}

// Graph builds a Graph from d. Nodes are added in document order, then
// edges. Edge endpoints not listed under nodes are added without a position.
// Weights must be finite.
func (d Document) Graph() (*Graph, error) {
	g := New(d.Directed)
	for i, n := range d.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", i)
		}
		switch len(n.Pos) {
		case 0:
			g.AddNode(NodeID(n.ID))
		case 2:
			g.SetPosition(NodeID(n.ID), grid.Cell{X: n.Pos[0], Y: n.Pos[1]})
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %q: pos must have 2 coordinates, got %d", n.ID, len(n.Pos))
		}
	}
	for i, e := range d.Edges {
		for _, id := range []string{e.From, e.To} {
			if err := errors.ValidateNodeID(id); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %d", i)
			}
		}
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %d (%s-%s): weight must be finite, got %v", i, e.From, e.To, e.Weight)
		}
		g.AddEdge(NodeID(e.From), NodeID(e.To), e.Weight)
	}
	return g, nil
}
