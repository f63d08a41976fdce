package colour

import (
	"slices"
	"strings"

	"github.com/matzehuels/pathviz/pkg/errors"
)

// Default hex colours used by the renderers.
const (
	DefaultBackground  = "#FFF9F0"
	DefaultNode        = "#95F99E"
	DefaultStart       = "#FC5C65"
	DefaultEnd         = "#45AAF2"
	DefaultBlock       = "#A5B1C2"
	DefaultAttemptFrom = "#FAFF3E"
	DefaultAttemptTo   = "#3FF5F1"
	DefaultGridLine    = "#A5B1C2"
)

// Palette names every colour a grid or graph render uses.
type Palette struct {
	Background  Color
	Node        Color
	Start       Color
	End         Color
	Block       Color
	AttemptFrom Color
	AttemptTo   Color
	GridLine    Color
	GridPath    Color // dashed path over a grid
	GraphPath   Color // dashed path over a graph
	Edge        Color
	Label       Color
}

// DefaultPalette returns the stock renderer colours.
func DefaultPalette() Palette {
	return Palette{
		Background:  MustParseHex(DefaultBackground),
		Node:        MustParseHex(DefaultNode),
		Start:       MustParseHex(DefaultStart),
		End:         MustParseHex(DefaultEnd),
		Block:       MustParseHex(DefaultBlock),
		AttemptFrom: MustParseHex(DefaultAttemptFrom),
		AttemptTo:   MustParseHex(DefaultAttemptTo),
		GridLine:    MustParseHex(DefaultGridLine),
		GridPath:    Black,
		GraphPath:   Red,
		Edge:        Black,
		Label:       Black,
	}
}

// Palette entry names accepted by Override.
const (
	NameBackground  = "background"
	NameNode        = "node"
	NameStart       = "start"
	NameEnd         = "end"
	NameBlock       = "block"
	NameAttemptFrom = "attempt_from"
	NameAttemptTo   = "attempt_to"
	NameGridLine    = "grid_line"
	NameGridPath    = "grid_path"
	NameGraphPath   = "graph_path"
	NameEdge        = "edge"
	NameLabel       = "label"
)

// Names returns the palette entry names in a stable order.
func Names() []string {
	return []string{
		NameBackground, NameNode, NameStart, NameEnd, NameBlock,
		NameAttemptFrom, NameAttemptTo, NameGridLine, NameGridPath,
		NameGraphPath, NameEdge, NameLabel,
	}
}

func (p *Palette) entry(name string) *Color {
	switch name {
	case NameBackground:
		return &p.Background
	case NameNode:
		return &p.Node
	case NameStart:
		return &p.Start
	case NameEnd:
		return &p.End
	case NameBlock:
		return &p.Block
	case NameAttemptFrom:
		return &p.AttemptFrom
	case NameAttemptTo:
		return &p.AttemptTo
	case NameGridLine:
		return &p.GridLine
	case NameGridPath:
		return &p.GridPath
	case NameGraphPath:
		return &p.GraphPath
	case NameEdge:
		return &p.Edge
	case NameLabel:
		return &p.Label
	}
	return nil
}

// Override returns a copy of p with the named entries replaced by the parsed
// hex values. Names are case-insensitive and may use '-' instead of '_'.
// An unknown name or a malformed colour leaves p untouched and returns an error.
func (p Palette) Override(hexes map[string]string) (Palette, error) {
	out := p
	keys := make([]string, 0, len(hexes))
	for k := range hexes {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(k)), "-", "_")
		dst := out.entry(name)
		if dst == nil {
			return p, errors.New(errors.ErrCodeInvalidColour, "unknown palette entry %q (valid: %s)", k, strings.Join(Names(), ", "))
		}
		c, err := ParseHex(hexes[k])
		if err != nil {
			return p, err
		}
		*dst = c
	}
	return out, nil
}

// Hexes returns the palette as a name to hex map, the inverse of Override.
func (p Palette) Hexes() map[string]string {
	out := make(map[string]string, len(Names()))
	for _, n := range Names() {
		out[n] = p.entry(n).Hex()
	}
	return out
}
