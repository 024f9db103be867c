package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/pipeline"
)

// presetCommand creates the command that draws one catalog building.
func (c *CLI) presetCommand() *cobra.Command {
	var (
		flags   cacheFlags
		formats string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "preset NAME",
		Short: "Draw a single building from the catalog",
		Example: `  skyline preset needle
  skyline preset ziggurat-4 -f svg -o ziggurat.svg`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return building.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreset(cmd.Context(), args[0], parseFormats(formats), output, flags)
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "f", "", "comma-separated output formats; "+describeFormats())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runPreset(ctx context.Context, name string, formats []string, output string, flags cacheFlags) error {
	if err := errors.ValidatePresetName(name); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.RenderPreset(ctx, name, pipeline.Options{
		Formats: formats,
		Logger:  loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}
	return c.writeArtifacts(result, formats, output)
}

// presetsCommand lists the catalog.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the building catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range building.Catalog() {
				fmt.Fprintf(c.Out, "%-22s %s\n", p.Name, p.Description)
			}
			return nil
		},
	}
}
