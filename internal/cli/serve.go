package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/animaut/internal/server"
	"github.com/matzehuels/animaut/pkg/cache"
	"github.com/matzehuels/animaut/pkg/observability"
	"github.com/matzehuels/animaut/pkg/pipeline"
)

// redisKeyPrefix scopes server cache keys in a shared Redis.
const redisKeyPrefix = appName + ":"

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags   pipelineFlags
		addr    string
		redis   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over HTTP",
		Long: `Serve conversions over HTTP.

Endpoints:
  POST /v1/render?format=svg|png|json   DOT body, returns the rendered scene
  POST /v1/layout                       DOT body, returns the laid-out DOT
  GET  /healthz                         liveness and cache reachability

With --redis, layouts and rendered outputs are cached in Redis and shared
between server instances. Otherwise the local file cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.options()
			if err := flags.apply(cmd.Flags(), &opts); err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("redis") {
				redis = c.Config.Server.Redis
			}

			runner, err := c.newServerRunner(ctx, redis, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			observability.NewLogHooks(c.Logger).Register()
			defer observability.Reset()

			printInfo("Listening on %s", addr)
			printKeyValue("cache", cacheName(redis, noCache))
			printKeyValue("policy", opts.Policy)
			printKeyValue("engine", opts.Engine)
			if noCache {
				printWarning("Caching disabled: every request runs Graphviz")
			}
			printNewline()

			return server.New(runner, opts, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&redis, "redis", "", "Redis address or redis:// URL for a shared cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd.Flags(), false)

	return cmd
}

// newServerRunner builds the server's runner: Redis-backed with scoped keys
// when an address is given, the local file cache otherwise.
func (c *CLI) newServerRunner(ctx context.Context, redisAddr string, noCache bool) (*pipeline.Runner, error) {
	if noCache || redisAddr == "" {
		return c.newRunner(noCache)
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
	if err != nil {
		return nil, fmt.Errorf("connect to redis %s: %w", redisAddr, err)
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisKeyPrefix)
	return pipeline.NewRunner(rc, keyer, c.Logger), nil
}

func cacheName(redisAddr string, noCache bool) string {
	switch {
	case noCache:
		return "disabled"
	case redisAddr != "":
		return "redis " + redisAddr
	default:
		return "file"
	}
}
