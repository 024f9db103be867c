package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/scene"
)

// renderFlags holds flags for the render command. A nil seed keeps the
// config file's seed.
type renderFlags struct {
	cacheFlags
	configPath string
	formats    string
	output     string
	seed       *uint64
	width      int
	height     int
	scale      int
	fontSize   float64
	refresh    bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags renderFlags
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a skyline",
		Long: `Draw a skyline and print it, or write it to files.

With a single format and no -o the artifact goes to stdout. With several
formats, -o names the base path and each format gets its own extension.`,
		Example: `  skyline render
  skyline render --seed 7 --width 120 --height 60
  skyline render --config city.toml -f svg,png -o out/city`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				flags.seed = scene.SeedOf(seed)
			}
			return c.runRender(cmd.Context(), flags)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", scene.DefaultSeed, "random seed, overriding the config file")
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "scene config file (.toml, .yaml)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "comma-separated output formats; "+describeFormats())
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().IntVar(&flags.width, "width", 0, "canvas width in columns")
	cmd.Flags().IntVar(&flags.height, "height", 0, "canvas height in rows")
	cmd.Flags().IntVar(&flags.scale, "scale", 0, "PNG pixel scale")
	cmd.Flags().Float64Var(&flags.fontSize, "font-size", 0, "SVG font size in pixels")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached artifacts")
	flags.cacheFlags.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, flags renderFlags) error {
	cfg := scene.Config{}
	if flags.configPath != "" {
		loaded, err := scene.LoadConfig(flags.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if flags.width != 0 {
		cfg.Width = flags.width
	}
	if flags.height != 0 {
		cfg.Height = flags.height
	}

	opts := pipeline.Options{
		Config:   cfg,
		Seed:     flags.seed,
		Formats:  parseFormats(flags.formats),
		Scale:    flags.scale,
		FontSize: flags.fontSize,
		Refresh:  flags.refresh,
		Logger:   loggerFromContext(ctx),
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.cacheFlags)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(opts.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("Rendered skyline")

	if err := c.writeArtifacts(result, opts.Formats, flags.output); err != nil {
		return err
	}
	printStats(result.Seed, result.Stats.Scene.Buildings, result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts sends a lone artifact to c.Out unless an output path is
// given; several artifacts always go to files.
func (c *CLI) writeArtifacts(result *pipeline.Result, formats []string, output string) error {
	if len(formats) == 1 && output == "" {
		_, err := c.Out.Write(result.Artifacts[formats[0]])
		return err
	}

	paths, err := outputPaths(formats, output)
	if err != nil {
		return err
	}
	for _, format := range formats {
		if err := writeFile(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
		printFile(paths[format])
	}
	printSuccess("Wrote %d file(s)", len(formats))
	return nil
}

// outputPaths maps each format to a file. A single format writes to output
// exactly; several formats share output (minus any extension) as base path.
func outputPaths(formats []string, output string) (map[string]string, error) {
	if output == "" {
		output = appName
	}
	if err := errors.ValidateOutputPath(output); err != nil {
		return nil, err
	}

	paths := make(map[string]string, len(formats))
	if len(formats) == 1 {
		paths[formats[0]] = output
		return paths, nil
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	for _, f := range formats {
		paths[f] = base + pipeline.Extensions[f]
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// describeFormats lists the supported formats for help text.
func describeFormats() string {
	return fmt.Sprintf("supported formats: %s", strings.Join(pipeline.FormatNames(), ", "))
}
