package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/efxvdb/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the container cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached container",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.settings().CacheOptions()
			if opts.Backend == cache.BackendNone {
				printInfo("Cache is disabled")
				return nil
			}
			cc, err := cache.Open(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				printWarning("The %s backend cannot be cleared", opts.Backend)
				return nil
			}
			n, err := clearer.Clear(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached containers", n)
			printKeyValue("backend", cacheLocation(opts))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(c.settings().CacheOptions()))
			return nil
		},
	}
}

// cacheLocation describes the backend: a directory, a redis URL or "disabled".
func cacheLocation(opts cache.Options) string {
	switch opts.Backend {
	case cache.BackendNone:
		return "disabled"
	case cache.BackendRedis:
		return fmt.Sprintf("redis://%s/%d (prefix %s)", opts.Redis.Addr, opts.Redis.DB, opts.Redis.Prefix)
	}
	if opts.Dir != "" {
		return opts.Dir
	}
	return cache.DefaultDir()
}
