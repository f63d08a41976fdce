package plot

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/matzehuels/pathviz/pkg/colour"
)

const (
	pathGlyph   = "••"
	symbolRunes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Terminal prints figures as text, two columns per cell. With colour enabled
// each cell is painted with its ANSI true-colour background; without colour
// every distinct cell colour gets a letter and a legend line.
type Terminal struct {
	color    bool
	renderer *lipgloss.Renderer
}

// NewTerminal creates a text plotter.
func NewTerminal(color bool) *Terminal {
	r := lipgloss.NewRenderer(io.Discard)
	if color {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Terminal{color: color, renderer: r}
}

// Format implements Plotter.
func (t *Terminal) Format() string { return FormatText }

// Plot implements Plotter.
func (t *Terminal) Plot(f *Figure) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return []byte(t.Render(f)), nil
}

// Render returns the text form of f. f must be valid.
func (t *Terminal) Render(f *Figure) string {
	var b strings.Builder
	if f.Title != "" {
		b.WriteString(f.Title)
		b.WriteString("\n")
	}

	path := f.PathCells()
	symbols := map[colour.Color]byte{}
	var order []colour.Color
	width := len(strconv.Itoa(f.Side - 1))

	for y := f.Side - 1; y >= 0; y-- {
		fmt.Fprintf(&b, "%*d ", width, y)
		for x := 0; x < f.Side; x++ {
			c := f.At(x, y)
			glyph := "  "
			if path[[2]int{x, y}] {
				glyph = pathGlyph
			}
			if t.color {
				style := t.renderer.NewStyle().Background(lipgloss.Color(c.Hex()))
				if glyph == pathGlyph {
					style = style.Foreground(lipgloss.Color(f.PathColor.Hex()))
				}
				b.WriteString(style.Render(glyph))
				continue
			}
			sym, ok := symbols[c]
			if !ok {
				sym = symbolRunes[len(order)%len(symbolRunes)]
				symbols[c] = sym
				order = append(order, c)
			}
			if glyph == pathGlyph {
				b.WriteString("*" + string(sym))
			} else {
				b.WriteString(" " + string(sym))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", width+1))
	step := max(1, (f.Side+maxTickLabels-1)/maxTickLabels)
	for x := 0; x < f.Side; x++ {
		if x%step == 0 {
			fmt.Fprintf(&b, "%-2s", strconv.Itoa(x%100))
		} else {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for _, c := range order {
		fmt.Fprintf(&b, "%c = %s\n", symbols[c], c.Hex())
	}
	for _, l := range f.Labels {
		fmt.Fprintf(&b, "label %q at (%.2f, %.2f)\n", l.Text, l.At.X, l.At.Y)
	}
	for _, s := range f.Segments {
		arrow := "--"
		if s.Directed {
			arrow = "->"
		}
		fmt.Fprintf(&b, "edge (%.0f, %.0f) %s (%.0f, %.0f)\n", s.From.X, s.From.Y, arrow, s.To.X, s.To.Y)
	}
	return b.String()
}

var _ Plotter = (*Terminal)(nil)
