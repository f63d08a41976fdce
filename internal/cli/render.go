package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathviz/pkg/pipeline"
	"github.com/matzehuels/pathviz/pkg/scene"
)

// stdoutPath selects standard output for -o.
const stdoutPath = "-"

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	output   string // output file path (or base path for multiple outputs)
	formats  string // comma-separated output formats
	cellSize int    // pixels per grid cell
	engine   string // plot or graphviz
	noColor  bool   // disable ANSI colour in txt output
	noCache  bool   // bypass the artifact cache
	refresh  bool   // re-render and overwrite cached artifacts
}

// renderCommand creates the render command for generating figures.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a scene file to png, svg, pdf, txt or dot",
		Long: `Render a grid or graph scene file (.toml or .json).

Output files are named after the scene unless -o is given. With several
formats, -o is used as the base path. Use -o - to write a single format to
standard output.`,
		Example: `  pathviz render maze.toml
  pathviz render maze.toml -f png,svg -o out/maze
  pathviz render roads.json -f txt -o -
  pathviz render roads.json -f svg --engine graphviz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.renderDefaults()
			opts.Formats = parseFormats(flags.formats)
			opts.Engine = flags.engine
			opts.Refresh = flags.refresh
			if cmd.Flags().Changed("cell-size") {
				opts.CellSize = flags.cellSize
			}
			if flags.noColor {
				opts.Color = false
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			if flags.output == stdoutPath && len(opts.Formats) > 1 {
				return fmt.Errorf("-o - needs exactly one format, got %s", joinFormats(opts.Formats))
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], flags, opts)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): png (default), svg, pdf, txt, dot (comma-separated)")
	cmd.Flags().IntVar(&flags.cellSize, "cell-size", pipeline.DefaultCellSize, "pixels per grid cell")
	cmd.Flags().StringVar(&flags.engine, "engine", pipeline.EnginePlot, "graph layout engine: plot, graphviz")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "plain txt output without ANSI colours")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "re-render even when cached")

	cmd.ValidArgsFunction = completeSceneFiles
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletions(pipeline.FormatNames()...))
	_ = cmd.RegisterFlagCompletionFunc("engine", fixedCompletions(pipeline.EnginePlot, pipeline.EngineGraphviz))

	return cmd
}

func (c *CLI) runRender(ctx context.Context, out io.Writer, input string, flags renderFlags, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := scene.Load(input)
	if err != nil {
		return err
	}
	logger.Debug("loaded scene", "kind", s.Kind, "side", s.Side, "steps", s.Steps())

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	quiet := flags.output == stdoutPath
	var spinner *Spinner
	if !quiet {
		spinner = newSpinner(ctx, os.Stderr, "Rendering "+filepath.Base(input))
		opts.Progress = spinner.Step
		spinner.Start()
	}
	result, err := runner.Execute(ctx, s, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if quiet {
		_, err := out.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	base := basePath(flags.output, input)
	var written []string
	for _, format := range opts.Formats {
		path := base + "." + format
		if len(opts.Formats) == 1 && flags.output != "" {
			path = flags.output
		}
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		written = append(written, path)
	}

	printSuccess(out, "Rendered %s", filepath.Base(input))
	printStats(out, s.Kind, s.Side, s.Steps(), result.Stats.RenderTime, result.CacheInfo.AllHit())
	for _, path := range written {
		printFile(out, path)
	}
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(written)))
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.png, .svg, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifact writes data to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
