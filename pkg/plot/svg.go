package plot

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
)

// SVGOption configures SVG rendering.
type SVGOption func(*SVG)

// WithSVGCellSize sets the edge length of one grid cell in user units.
func WithSVGCellSize(px int) SVGOption {
	return func(s *SVG) { s.cellSize = px }
}

// SVG writes figures as standalone SVG documents.
type SVG struct {
	cellSize int
}

// NewSVG creates an SVG plotter.
func NewSVG(opts ...SVGOption) *SVG {
	s := &SVG{cellSize: defaultCellSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Format implements Plotter.
func (s *SVG) Format() string { return FormatSVG }

// Plot implements Plotter.
func (s *SVG) Plot(f *Figure) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	fr := newFrame(f, s.cellSize)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="sans-serif" font-size="%.1f">`+"\n",
		fr.width(), fr.height(), fr.width(), fr.height(), fr.fontSize())
	fmt.Fprintf(&buf, `  <defs><marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker></defs>`+"\n",
		f.EdgeColor.Hex())
	buf.WriteString(`  <rect width="100%" height="100%" fill="#ffffff"/>` + "\n")

	if f.Title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="22" text-anchor="middle" font-size="%.1f">%s</text>`+"\n",
			fr.width()/2, fr.fontSize()+2, html.EscapeString(f.Title))
	}

	writeSVGCells(&buf, f, fr)
	writeSVGGrid(&buf, f, fr)
	writeSVGTicks(&buf, fr)
	writeSVGSegments(&buf, f, fr)
	writeSVGPath(&buf, f, fr)
	writeSVGLabels(&buf, f, fr)

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func writeSVGCells(buf *bytes.Buffer, f *Figure, fr frame) {
	buf.WriteString(`  <g class="cells" shape-rendering="crispEdges">` + "\n")
	for y, row := range f.Pixels {
		for x, c := range row {
			ox, oy := fr.cellOrigin(x, y)
			fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
				ox, oy, fr.cell, fr.cell, c.Hex())
		}
	}
	buf.WriteString("  </g>\n")
}

func writeSVGGrid(buf *bytes.Buffer, f *Figure, fr frame) {
	fmt.Fprintf(buf, `  <g class="grid" stroke="%s" stroke-width="1">`+"\n", f.GridLine.Hex())
	for k := 0; k <= fr.side; k++ {
		x := fr.px(float64(k) - 0.5)
		y := fr.py(float64(k) - 0.5)
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x, fr.gridTop(), x, fr.gridBottom())
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", fr.gridLeft(), y, fr.gridRight(), y)
	}
	buf.WriteString("  </g>\n")
}

func writeSVGTicks(buf *bytes.Buffer, fr frame) {
	buf.WriteString(`  <g class="ticks" stroke="#000000" stroke-width="1">` + "\n")
	step := fr.tickStep()
	for i := 0; i < fr.side; i++ {
		x, y := fr.px(float64(i)), fr.py(float64(i))
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x, fr.gridBottom(), x, fr.gridBottom()+tickLength)
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", fr.gridLeft()-tickLength, y, fr.gridLeft(), y)
		if i%step != 0 {
			continue
		}
		s := strconv.Itoa(i)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="hanging" stroke="none">%s</text>`+"\n",
			x, fr.gridBottom()+tickLength+2, s)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="end" dominant-baseline="middle" stroke="none">%s</text>`+"\n",
			fr.gridLeft()-tickLength-2, y, s)
	}
	buf.WriteString("  </g>\n")
}

func writeSVGSegments(buf *bytes.Buffer, f *Figure, fr frame) {
	if len(f.Segments) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <g class="edges" stroke="%s" stroke-width="%.1f">`+"\n", f.EdgeColor.Hex(), max(1, fr.cell/16))
	for _, s := range f.Segments {
		x1, y1 := fr.point(s.From)
		x2, y2 := fr.point(s.To)
		marker := ""
		if s.Directed {
			marker = ` marker-end="url(#arrow)"`
		}
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"%s/>`+"\n", x1, y1, x2, y2, marker)
	}
	buf.WriteString("  </g>\n")
}

func writeSVGPath(buf *bytes.Buffer, f *Figure, fr frame) {
	if len(f.Path) == 0 {
		return
	}
	var d bytes.Buffer
	for i, p := range f.Path {
		x, y := fr.point(p)
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&d, "%s %.1f %.1f ", cmd, x, y)
	}
	fmt.Fprintf(buf, `  <path class="path" d="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-dasharray="%.1f %.1f"/>`+"\n",
		bytes.TrimSpace(d.Bytes()), f.PathColor.Hex(), max(1.5, fr.cell/12), fr.cell/4, fr.cell/6)
}

func writeSVGLabels(buf *bytes.Buffer, f *Figure, fr frame) {
	if len(f.Labels) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <g class="labels" fill="%s">`+"\n", f.LabelColor.Hex())
	for _, l := range f.Labels {
		x, y := fr.point(l.At)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f">%s</text>`+"\n", x, y, html.EscapeString(l.Text))
	}
	buf.WriteString("  </g>\n")
}

var _ Plotter = (*SVG)(nil)
