package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/animaut/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached layouts and rendered outputs",
	}
	cmd.AddCommand(c.cacheClearCommand(), c.cacheStatsCommand(), c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisAddr string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and rendered outputs",
		Long: `Remove all cached layouts and rendered outputs.

By default the local file cache is cleared. With --redis, the keys the
server stored under the animaut: prefix are removed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if redisAddr != "" {
				return c.clearRedis(cmd, redisAddr)
			}
			return c.clearFiles()
		},
	}
	cmd.Flags().StringVar(&redisAddr, "redis", "", "clear the server cache in this Redis instead of the local cache")
	return cmd
}

func (c *CLI) clearFiles() error {
	dir, err := cache.DefaultDir()
	if err != nil {
		return fmt.Errorf("locate cache: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	n, err := fc.Clear()
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	printSuccess("Cleared %d cached entries", n)
	printDetail("Directory: %s", dir)
	return nil
}

func (c *CLI) clearRedis(cmd *cobra.Command, addr string) error {
	ctx := cmd.Context()
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: addr})
	if err != nil {
		return fmt.Errorf("connect to redis %s: %w", addr, err)
	}
	defer rc.Close()

	n, err := rc.Clear(ctx, redisKeyPrefix)
	if err != nil {
		return fmt.Errorf("clear redis cache: %w", err)
	}
	printSuccess("Cleared %d cached entries", n)
	printDetail("Redis: %s (prefix %s)", addr, redisKeyPrefix)
	return nil
}

func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number and size of cached entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cache.DefaultDir()
			if err != nil {
				return fmt.Errorf("locate cache: %w", err)
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			n, size, err := fc.Stats()
			if err != nil {
				return err
			}
			printKeyValue("Entries", fmt.Sprint(n))
			printKeyValue("Size", formatSize(size))
			printKeyValue("Directory", dir)
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cache.DefaultDir()
			if err != nil {
				return fmt.Errorf("locate cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
