package colour

import (
	"testing"

	"github.com/matzehuels/pathviz/pkg/errors"
)

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()

	tests := []struct {
		name string
		got  Color
		want string
	}{
		{"background", p.Background, DefaultBackground},
		{"node", p.Node, DefaultNode},
		{"start", p.Start, DefaultStart},
		{"end", p.End, DefaultEnd},
		{"block", p.Block, DefaultBlock},
		{"attempt from", p.AttemptFrom, DefaultAttemptFrom},
		{"attempt to", p.AttemptTo, DefaultAttemptTo},
	}
	for _, tt := range tests {
		if want := MustParseHex(tt.want); tt.got != want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, want)
		}
	}
	if p.GridPath != Black {
		t.Errorf("GridPath = %v, want black", p.GridPath)
	}
	if p.GraphPath != Red {
		t.Errorf("GraphPath = %v, want red", p.GraphPath)
	}
}

func TestPaletteOverride(t *testing.T) {
	base := DefaultPalette()

	p, err := base.Override(map[string]string{
		"Start":        "#000000",
		"attempt-from": "FFFFFF",
	})
	if err != nil {
		t.Fatalf("Override error: %v", err)
	}
	if p.Start != Black {
		t.Errorf("Start = %v, want black", p.Start)
	}
	if p.AttemptFrom != White {
		t.Errorf("AttemptFrom = %v, want white", p.AttemptFrom)
	}
	if p.End != base.End {
		t.Errorf("End changed to %v", p.End)
	}
	if base.Start == Black {
		t.Error("Override must not modify the receiver")
	}
}

func TestPaletteOverrideErrors(t *testing.T) {
	base := DefaultPalette()

	_, err := base.Override(map[string]string{"sky": "#000000"})
	if !errors.Is(err, errors.ErrCodeInvalidColour) {
		t.Errorf("unknown entry error = %v, want %v", err, errors.ErrCodeInvalidColour)
	}

	p, err := base.Override(map[string]string{"start": "#000000", "end": "#12"})
	if err == nil {
		t.Fatal("malformed colour should fail")
	}
	if p != base {
		t.Error("failed Override should return the receiver unchanged")
	}
}

func TestPaletteHexesRoundTrip(t *testing.T) {
	base := DefaultPalette()
	p, err := Palette{}.Override(base.Hexes())
	if err != nil {
		t.Fatalf("Override(Hexes()) error: %v", err)
	}
	for _, n := range Names() {
		if got, want := p.entry(n).Hex(), base.entry(n).Hex(); got != want {
			t.Errorf("%s = %s, want %s", n, got, want)
		}
	}
}
