package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a one-line status on w until stopped or until its
// context is cancelled. The status can change while it runs, so a render
// can report which format it is on.
type Spinner struct {
	w        io.Writer
	label    string
	interval time.Duration

	mu     sync.Mutex
	status string
	width  int // printed width of the last frame

	ctx     context.Context
	cancel  context.CancelFunc
	started atomic.Bool
	once    sync.Once
	stopped chan struct{}
}

// newSpinner creates a spinner writing to w. It stops on its own when ctx
// is cancelled.
func newSpinner(ctx context.Context, w io.Writer, label string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:        w,
		label:    label,
		interval: spinnerInterval,
		status:   label,
		ctx:      sctx,
		cancel:   cancel,
		stopped:  make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// Step reports that item i of n (1-based) is in progress, e.g.
// "Rendering maze.toml: svg (2/3)".
func (s *Spinner) Step(i, n int, item string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = fmt.Sprintf("%s: %s (%d/%d)", s.label, item, i, n)
}

// Status returns the current status line without the frame.
func (s *Spinner) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Stop ends the animation and clears the line. It may be called more than
// once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		if s.started.Load() {
			<-s.stopped
		}
	})
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.status)
	pad := max(0, s.width-len(line))
	fmt.Fprintf(s.w, "\r%s%s", line, strings.Repeat(" ", pad))
	s.width = len(line)
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	}
}
