package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schemaforge/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the graph render cache",
	}
	cmd.AddCommand(c.cacheClearCommand(), c.cachePathCommand())
	return cmd
}

// openCacheDir opens the render cache, or returns nil when it was never
// created.
func openCacheDir() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached graph renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := openCacheDir()
			if err != nil {
				return err
			}
			if fc == nil {
				printInfo("Cache is empty")
				return nil
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("cleared cache", "dir", fc.Dir(), "entries", count)
			printSuccess("Cleared %d cached renders", count)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	var stats bool

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			if !stats {
				return nil
			}

			fc, err := openCacheDir()
			if err != nil || fc == nil {
				return err
			}
			st, err := fc.Stats()
			if err != nil {
				return err
			}
			printKeyValue("Entries", fmt.Sprint(st.Entries))
			printKeyValue("Size", fmt.Sprintf("%.1f KiB", float64(st.Bytes)/1024))
			return nil
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "also print the number and size of cached renders")
	return cmd
}
