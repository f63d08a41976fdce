package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathviz/internal/server"
	"github.com/matzehuels/pathviz/pkg/observability"
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Serve POST /v1/render, GET /healthz and GET /metrics.

The listen address, body limit, timeout and cache backend come from the
config file and PATHVIZ_* environment variables. The server shuts down
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			metrics := observability.NewMetrics(nil)
			metrics.Install()
			defer observability.Reset()

			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			srv := server.New(server.Config{
				Addr:         cfg.Addr,
				MaxBodyBytes: cfg.MaxBodyBytes,
				Timeout:      cfg.Timeout.Duration,
				CellSize:     c.Config.Render.CellSize,
				Color:        c.Config.Render.Color,
				Runner:       runner,
				Metrics:      metrics,
				Logger:       logger,
			})

			printInfo(out, "Serving on %s", StyleLink.Render(displayAddr(cfg.Addr)))
			printDetail(out, "cache: %s", c.Config.Cache.Backend)
			if err := srv.ListenAndServe(ctx); err != nil {
				return err
			}
			printSuccess(out, "Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// displayAddr turns a listen address into a clickable URL.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
