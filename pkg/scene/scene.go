package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pathviz/pkg/cache"
	"github.com/matzehuels/pathviz/pkg/colour"
	"github.com/matzehuels/pathviz/pkg/errors"
	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/grid"
)

// Scene kinds.
const (
	KindGrid  = "grid"
	KindGraph = "graph"
)

// Document formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Attempt metrics for grid scenes.
const (
	MetricProgress  = "progress"
	MetricHeuristic = "heuristic"
)

// Scene describes a single render. Exactly one of Grid and Graph is set,
// matching Kind.
type Scene struct {
	Kind    string            `toml:"kind" json:"kind"`
	Title   string            `toml:"title,omitempty" json:"title,omitempty"`
	Side    int               `toml:"side,omitempty" json:"side,omitempty"`
	Palette map[string]string `toml:"palette,omitempty" json:"palette,omitempty"`
	Grid    *GridScene        `toml:"grid,omitempty" json:"grid,omitempty"`
	Graph   *GraphScene       `toml:"graph,omitempty" json:"graph,omitempty"`
}

// GridScene holds the grid inputs. Coordinates are [x, y] pairs.
type GridScene struct {
	Start     []int   `toml:"start" json:"start"`
	End       []int   `toml:"end" json:"end"`
	Barriers  [][]int `toml:"barriers,omitempty" json:"barriers,omitempty"`
	Path      [][]int `toml:"path,omitempty" json:"path,omitempty"`
	Attempts  [][]int `toml:"attempts,omitempty" json:"attempts,omitempty"`
	Heuristic string  `toml:"heuristic,omitempty" json:"heuristic,omitempty"`
	Metric    string  `toml:"metric,omitempty" json:"metric,omitempty"`
}

// GraphScene holds the graph inputs.
type GraphScene struct {
	Directed bool            `toml:"directed,omitempty" json:"directed,omitempty"`
	Nodes    []graph.NodeDoc `toml:"nodes" json:"nodes"`
	Edges    []graph.EdgeDoc `toml:"edges,omitempty" json:"edges,omitempty"`
	Start    string          `toml:"start,omitempty" json:"start,omitempty"`
	End      string          `toml:"end,omitempty" json:"end,omitempty"`
	Path     []string        `toml:"path,omitempty" json:"path,omitempty"`
}

// Formats lists the accepted document formats.
func Formats() []string { return []string{FormatTOML, FormatJSON} }

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer scene format from %q (use .toml or .json)", path)
	}
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data, format)
}

// Decode parses and validates a scene document.
func Decode(data []byte, format string) (*Scene, error) {
	var s Scene
	switch strings.ToLower(format) {
	case FormatTOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml")
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "unknown key %q", keys[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid scene format: %s (must be one of: %s)", format, strings.Join(Formats(), ", "))
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Encode writes s in the given format.
func (s *Scene) Encode(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid scene format: %s", format)
	}
}

// Validate checks the scene structure and renders it once to catch
// out-of-grid cells and missing positions. Side defaults to the grid
// default when unset.
func (s *Scene) Validate() error {
	if s.Side == 0 {
		s.Side = grid.DefaultSide
	}
	if err := errors.ValidateSide(s.Side); err != nil {
		return err
	}
	if _, err := s.palette(); err != nil {
		return err
	}

	switch s.Kind {
	case KindGrid:
		if s.Grid == nil {
			return errors.New(errors.ErrCodeInvalidScene, "grid scene needs a [grid] section")
		}
		if s.Graph != nil {
			return errors.New(errors.ErrCodeInvalidScene, "grid scene must not have a [graph] section")
		}
		if err := s.Grid.validate(); err != nil {
			return err
		}
	case KindGraph:
		if s.Graph == nil {
			return errors.New(errors.ErrCodeInvalidScene, "graph scene needs a [graph] section")
		}
		if s.Grid != nil {
			return errors.New(errors.ErrCodeInvalidScene, "graph scene must not have a [grid] section")
		}
	default:
		return errors.New(errors.ErrCodeInvalidScene, "invalid scene kind: %q (must be %q or %q)", s.Kind, KindGrid, KindGraph)
	}

	_, err := s.Figure()
	return err
}

// Hash returns a content hash of the scene, stable across TOML and JSON
// encodings of the same document. It fails when the scene cannot be
// serialized, such as for non-finite edge weights.
func (s *Scene) Hash() (string, error) {
	h, err := cache.HashJSON(s)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidScene, err, "scene")
	}
	return h, nil
}

// Steps is the number of attempt replay steps: the attempt count for grid
// scenes, 0 for graph scenes.
func (s *Scene) Steps() int {
	if s.Kind == KindGrid && s.Grid != nil {
		return len(s.Grid.Attempts)
	}
	return 0
}

func (s *Scene) palette() (colour.Palette, error) {
	p, err := colour.DefaultPalette().Override(s.Palette)
	if err != nil {
		return p, errors.Wrap(errors.ErrCodeInvalidScene, err, "palette")
	}
	return p, nil
}

func (g *GridScene) validate() error {
	if _, ok := grid.HeuristicByName(g.Heuristic); !ok {
		return errors.New(errors.ErrCodeInvalidScene, "unknown heuristic %q (must be one of: %s)", g.Heuristic, strings.Join(grid.HeuristicNames(), ", "))
	}
	if !slices.Contains([]string{"", MetricProgress, MetricHeuristic}, g.Metric) {
		return errors.New(errors.ErrCodeInvalidScene, "unknown metric %q (must be %q or %q)", g.Metric, MetricProgress, MetricHeuristic)
	}
	if g.Start == nil || g.End == nil {
		return errors.New(errors.ErrCodeInvalidScene, "grid scene needs start and end")
	}
	if _, err := toCell("start", g.Start); err != nil {
		return err
	}
	if _, err := toCell("end", g.End); err != nil {
		return err
	}
	for name, list := range map[string][][]int{"barriers": g.Barriers, "path": g.Path, "attempts": g.Attempts} {
		if _, err := toCells(name, list); err != nil {
			return err
		}
	}
	return nil
}

func toCell(what string, xy []int) (grid.Cell, error) {
	if len(xy) != 2 {
		return grid.Cell{}, errors.New(errors.ErrCodeInvalidScene, "%s must be an [x, y] pair, got %v", what, xy)
	}
	return grid.Cell{X: xy[0], Y: xy[1]}, nil
}

func toCells(what string, list [][]int) ([]grid.Cell, error) {
	cells := make([]grid.Cell, 0, len(list))
	for i, xy := range list {
		c, err := toCell(fmt.Sprintf("%s[%d]", what, i), xy)
		if err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	return cells, nil
}
