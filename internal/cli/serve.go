package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/internal/server"
	"github.com/matzehuels/skyline/pkg/cache"
	"github.com/matzehuels/skyline/pkg/observability"
	"github.com/matzehuels/skyline/pkg/pipeline"
)

type serveFlags struct {
	addr      string
	cacheSize int
	redisURL  string
}

// serveCommand creates the command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve skylines over HTTP",
		Long: `Serve skylines over HTTP.

Endpoints:
  GET /healthz
  GET /presets
  GET /presets/{name}?format=svg
  GET /skyline?seed=7&width=120&height=60&format=png&scale=2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&flags.cacheSize, "cache-size", cache.DefaultMemoryEntries, "in-memory cache entries")
	cmd.Flags().StringVar(&flags.redisURL, "redis", "", "use Redis instead of the in-memory cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, flags serveFlags) error {
	var store cache.Cache
	if flags.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, flags.redisURL)
		if err != nil {
			return err
		}
		store = rc
	} else {
		mc, err := cache.NewMemoryCache(flags.cacheSize)
		if err != nil {
			return err
		}
		store = mc
	}

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetRenderHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	runner := pipeline.NewRunner(store, newKeyer(flags.redisURL), c.Logger)
	defer runner.Close()

	printInfo("Listening on %s", StyleHighlight.Render(flags.addr))
	return server.New(runner, c.Logger).ListenAndServe(ctx, flags.addr)
}
