// Package cli implements the pathviz command-line interface.
//
// This package provides commands for rendering search scenes, stepping
// through a search in the terminal, serving the renderer over HTTP, and
// managing the artifact cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate PNG, SVG, PDF, text or DOT output from a scene file
//   - view: Replay a grid search attempt by attempt in the terminal
//   - serve: Run the HTTP render API
//   - cache: Manage the artifact cache
//   - scene: Validate and convert scene files
//
// # Logging
//
// -v selects debug output; otherwise log_level from the config file (or
// PATHVIZ_LOG_LEVEL) applies. Commands read the logger from their context.
//
// # Example
//
//	import "github.com/matzehuels/pathviz/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes timestamped lines ("14:32:01.45 INFO ...") at level and
// above to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// applyConfigLevel sets l to the configured level name unless l is already
// at debug from -v. Unknown names leave l unchanged; config validation
// rejects them first.
func applyConfigLevel(l *log.Logger, name string) {
	if l.GetLevel() == log.DebugLevel {
		return
	}
	if level, err := log.ParseLevel(name); err == nil {
		l.SetLevel(level)
	}
}

// progress times one command and logs "<msg> (<elapsed>)" when done.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

// withLogger attaches l to ctx for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
