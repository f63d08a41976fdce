package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathviz/pkg/plot"
	"github.com/matzehuels/pathviz/pkg/scene"
)

const defaultPlayInterval = 150 * time.Millisecond

// View styles
var (
	viewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	viewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	viewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the interactive attempt viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		interval time.Duration
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "view [scene]",
		Short: "Step through a search in the terminal",
		Long: `Replay a scene in the terminal one attempt at a time, in the order the
search explored them. Graph scenes have no attempts; the viewer still
toggles the path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			color := c.Config.Render.Color && !noColor
			m := NewViewModel(s, plot.NewTerminal(color), interval)
			loggerFromContext(cmd.Context()).Debug("starting viewer", "kind", s.Kind, "steps", s.Steps())

			p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return err
			}
			if vm, ok := final.(ViewModel); ok && vm.Err != nil {
				return vm.Err
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", defaultPlayInterval, "delay between steps while playing")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "letters and a legend instead of ANSI colours")

	return cmd
}

// =============================================================================
// ViewModel - Attempt replay
// =============================================================================

// tickMsg advances playback by one step.
type tickMsg struct{}

// ViewModel is the bubbletea model for replaying a scene.
type ViewModel struct {
	Scene    *scene.Scene
	Step     int
	ShowPath bool
	Playing  bool
	Err      error

	terminal *plot.Terminal
	interval time.Duration
	frame    string
}

// NewViewModel creates a viewer positioned before the first attempt.
func NewViewModel(s *scene.Scene, t *plot.Terminal, interval time.Duration) ViewModel {
	if interval <= 0 {
		interval = defaultPlayInterval
	}
	m := ViewModel{Scene: s, terminal: t, interval: interval}
	return m.redraw()
}

// Steps is the number of attempts in the scene.
func (m ViewModel) Steps() int { return m.Scene.Steps() }

func (m ViewModel) Init() tea.Cmd {
	return nil
}

func (m ViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n":
			m.Playing = false
			return m.seek(m.Step + 1), nil
		case "left", "h", "b":
			m.Playing = false
			return m.seek(m.Step - 1), nil
		case "home", "g":
			m.Playing = false
			return m.seek(0), nil
		case "end", "G":
			m.Playing = false
			return m.seek(m.Steps()), nil
		case "p":
			m.ShowPath = !m.ShowPath
			return m.redraw(), nil
		case " ":
			if m.Step >= m.Steps() {
				m = m.seek(0)
			}
			m.Playing = !m.Playing
			if m.Playing {
				return m, m.tick()
			}
		}
	case tickMsg:
		if !m.Playing {
			return m, nil
		}
		m = m.seek(m.Step + 1)
		if m.Step >= m.Steps() {
			m.Playing = false
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m ViewModel) View() string {
	var b strings.Builder

	title := m.Scene.Title
	if title == "" {
		title = m.Scene.Kind + " scene"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(viewErrorStyle.Render(m.Err.Error()))
	} else {
		b.WriteString(m.frame)
	}
	b.WriteString("\n")

	path := "off"
	if m.ShowPath {
		path = "on"
	}
	status := fmt.Sprintf("step %s/%d · path %s", StyleNumber.Render(fmt.Sprint(m.Step)), m.Steps(), path)
	if m.Playing {
		status += " · " + StyleHighlight.Render("playing")
	}
	b.WriteString(viewStatusStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("←/→ step  space play  p path  g/G first/last  q quit"))

	return b.String()
}

func (m ViewModel) seek(step int) ViewModel {
	step = max(0, min(step, m.Steps()))
	if step == m.Step && m.frame != "" {
		return m
	}
	m.Step = step
	return m.redraw()
}

func (m ViewModel) redraw() ViewModel {
	fig, err := m.Scene.Frame(m.Step, m.ShowPath)
	if err != nil {
		m.Err = err
		return m
	}
	m.Err = nil
	m.frame = m.terminal.Render(fig)
	return m
}

func (m ViewModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
}
