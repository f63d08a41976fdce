package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathviz/pkg/scene"
)

// sceneCommand groups scene file utilities.
func (c *CLI) sceneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Validate and convert scene files",
	}

	cmd.AddCommand(c.sceneValidateCommand())
	cmd.AddCommand(c.sceneConvertCommand())

	return cmd
}

// sceneValidateCommand checks scene files without writing output.
func (c *CLI) sceneValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scene...]",
		Short: "Check that scene files decode and render",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			logger := loggerFromContext(cmd.Context())
			var failed int
			for _, path := range args {
				s, err := scene.Load(path)
				if err != nil {
					printError(out, "%s: %v", path, err)
					failed++
					continue
				}
				hash, err := s.Hash()
				if err != nil {
					printError(out, "%s: %v", path, err)
					failed++
					continue
				}
				logger.Debug("validated scene", "path", path, "hash", hash)
				printSuccess(out, "%s", path)
				printKeyValue(out, "  kind", s.Kind)
				printKeyValue(out, "  side", strconv.Itoa(s.Side))
				if steps := s.Steps(); steps > 0 {
					printKeyValue(out, "  attempts", strconv.Itoa(steps))
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenes invalid", failed, len(args))
			}
			if len(args) == 1 {
				printNextStep(out, "Render it", "pathviz render "+args[0])
			}
			return nil
		},
	}
}

// sceneConvertCommand rewrites a scene between TOML and JSON.
func (c *CLI) sceneConvertCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert [scene]",
		Short: "Convert a scene between TOML and JSON",
		Long: `Convert a scene file between TOML and JSON. The target format is taken
from the -o extension; without -o the other format is written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s, err := scene.Load(args[0])
			if err != nil {
				return err
			}

			target := scene.FormatJSON
			if in, _ := scene.FormatFromPath(args[0]); in == scene.FormatJSON {
				target = scene.FormatTOML
			}
			if output != "" {
				if target, err = scene.FormatFromPath(output); err != nil {
					return err
				}
			}

			data, err := s.Encode(target)
			if err != nil {
				return err
			}
			if output == "" {
				_, err := out.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess(out, "Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.toml or .json)")

	return cmd
}
