package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/slacklinehq/slackline/internal/server"
	"github.com/slacklinehq/slackline/pkg/cache"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	config  string
	noCache bool
}

// serveCommand creates the serve command which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduling HTTP API",
		Long: `Serve starts the JSON API under /api/v1 with stateless scheduling
endpoints and project CRUD backed by the configured store. The server shuts
down gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file path")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable schedule response caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	cfg, err := LoadConfig(opts.config)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if opts.addr != "" {
		addr = opts.addr
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	sc, err := c.serveCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer sc.Close()

	srv := server.New(server.Config{Addr: addr}, st, sc, c.Logger)
	return srv.Start(ctx)
}

// serveCache picks the cache backend for the server. Unlike the CLI path,
// a misconfigured redis backend is a hard error here.
func (c *CLI) serveCache(ctx context.Context, cfg *Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == "redis" {
		return cache.NewRedisCache(ctx, cfg.Cache.Redis)
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}
