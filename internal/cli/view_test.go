package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/pathviz/pkg/plot"
	"github.com/matzehuels/pathviz/pkg/scene"
)

func newTestViewModel(t *testing.T) ViewModel {
	t.Helper()
	s, err := scene.Decode([]byte(testGridScene), scene.FormatTOML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return NewViewModel(s, plot.NewTerminal(false), time.Millisecond)
}

func press(m ViewModel, keys ...string) ViewModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(ViewModel)
	}
	return m
}

func TestViewModelStepping(t *testing.T) {
	m := newTestViewModel(t)
	if m.Steps() != 4 {
		t.Fatalf("Steps() = %d, want 4", m.Steps())
	}

	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"start", nil, 0},
		{"forward", []string{"right", "right"}, 2},
		{"back clamps at zero", []string{"left", "left"}, 0},
		{"forward clamps at end", []string{"l", "l", "l", "l", "l", "l"}, 4},
		{"last", []string{"G"}, 4},
		{"first", []string{"G", "g"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := press(m, tt.keys...).Step; got != tt.want {
				t.Errorf("Step = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestViewModelFramesChange(t *testing.T) {
	m := newTestViewModel(t)
	first := m.View()

	stepped := press(m, "right")
	if stepped.View() == first {
		t.Error("frame unchanged after stepping")
	}

	withPath := press(m, "p")
	if !withPath.ShowPath {
		t.Error("p did not toggle the path")
	}
	if !strings.Contains(withPath.View(), "path on") {
		t.Errorf("status line missing path state:\n%s", withPath.View())
	}
	if press(withPath, "p").ShowPath {
		t.Error("second p did not toggle the path off")
	}
}

func TestViewModelPlayback(t *testing.T) {
	m := press(newTestViewModel(t), " ")
	if !m.Playing {
		t.Fatal("space did not start playback")
	}
	for i := 0; i < 10 && m.Playing; i++ {
		next, _ := m.Update(tickMsg{})
		m = next.(ViewModel)
	}
	if m.Playing || m.Step != m.Steps() {
		t.Errorf("after playback Playing=%v Step=%d, want stopped at %d", m.Playing, m.Step, m.Steps())
	}

	m = press(m, " ")
	if !m.Playing || m.Step != 0 {
		t.Errorf("space at end should restart from 0, got Step=%d Playing=%v", m.Step, m.Playing)
	}
}

func TestViewModelQuit(t *testing.T) {
	_, cmd := newTestViewModel(t).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
