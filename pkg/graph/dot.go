package graph

import (
	"bytes"
	"fmt"
	"strings"
)

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// dotQuote returns s as a DOT double-quoted string. Only '"' and '\' are
// escaped; every other rune is written as is.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// ToDOT converts g to Graphviz DOT source. Node positions are pinned
// ("x,y!") so the neato engine reproduces the grid placement. Start and end
// are filled with their palette colours and path edges are drawn dashed in
// the path colour. Path hops with no matching edge get an unlabelled dashed
// edge so the path reads the same as in Render. It fails under the same
// conditions as Render.
func ToDOT(g *Graph, opts ...RenderOption) (string, error) {
	o := newRenderOpts(opts)
	if err := g.checkPositions(o); err != nil {
		return "", err
	}
	p := o.palette

	kind, arrow := "graph", "--"
	if g.directed {
		kind, arrow = "digraph", "->"
	}
	pathStyle := fmt.Sprintf("style=dashed, color=%s", dotQuote(p.GraphPath.Hex()))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	fmt.Fprintf(&buf, "  bgcolor=%s;\n", dotQuote(p.Background.Hex()))
	if o.title != "" {
		fmt.Fprintf(&buf, "  label=%s;\n  labelloc=t;\n", dotQuote(o.title))
	}
	fmt.Fprintf(&buf, "  node [shape=box, style=filled, fillcolor=%s, width=0.8, height=0.8, fixedsize=true];\n", dotQuote(p.Node.Hex()))
	fmt.Fprintf(&buf, "  edge [color=%s, fontcolor=%s];\n", dotQuote(p.Edge.Hex()), dotQuote(p.Label.Hex()))
	buf.WriteString("\n")

	for _, id := range g.nodes {
		c := g.positions[id]
		attrs := []string{fmt.Sprintf("pos=\"%d,%d!\"", c.X, c.Y)}
		switch {
		case o.end != nil && *o.end == id:
			attrs = append(attrs, "fillcolor="+dotQuote(p.End.Hex()))
		case o.start != nil && *o.start == id:
			attrs = append(attrs, "fillcolor="+dotQuote(p.Start.Hex()))
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", dotQuote(string(id)), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	skip := skipSet(o.path)
	joined := make(map[[2]NodeID]bool, len(g.edges))
	for _, e := range g.edges {
		attrs := []string{"label=" + dotQuote(FormatWeight(e.Weight))}
		if skip[[2]NodeID{e.From, e.To}] {
			attrs = append(attrs, pathStyle)
			joined[[2]NodeID{e.From, e.To}] = true
			joined[[2]NodeID{e.To, e.From}] = true
		}
		fmt.Fprintf(&buf, "  %s %s %s [%s];\n", dotQuote(string(e.From)), arrow, dotQuote(string(e.To)), strings.Join(attrs, ", "))
	}

	for i := 1; i < len(o.path); i++ {
		a, b := o.path[i-1], o.path[i]
		if a == b || joined[[2]NodeID{a, b}] {
			continue
		}
		joined[[2]NodeID{a, b}] = true
		joined[[2]NodeID{b, a}] = true
		fmt.Fprintf(&buf, "  %s %s %s [%s, arrowhead=none];\n", dotQuote(string(a)), arrow, dotQuote(string(b)), pathStyle)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}
