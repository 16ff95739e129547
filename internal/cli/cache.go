package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/packdiff/internal/config"
	"github.com/matzehuels/packdiff/pkg/cache"
	"github.com/matzehuels/packdiff/pkg/errors"
	"github.com/matzehuels/packdiff/pkg/observability"
)

// redisKeyPrefix scopes packdiff keys in a shared redis database.
const redisKeyPrefix = appName + ":"

// headerRow is the row index lipgloss tables pass for the header.
const headerRow = -1

// openCache builds the configured backend. Failing to open it is not
// fatal: the run continues without caching.
func openCache(ctx context.Context, cfg config.Cache, logger *log.Logger) (cache.Cache, cache.Keyer) {
	if !cfg.Enabled {
		return cache.NewNullCache(), cache.NewDefaultKeyer()
	}

	switch cfg.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("redis cache unavailable, continuing without cache", "url", redactURL(cfg.RedisURL), "err", err)
			return cache.NewNullCache(), cache.NewDefaultKeyer()
		}
		return rc, cache.NewScopedKeyer(nil, redisKeyPrefix)
	default:
		fc, err := cache.NewFileCache(cfg.Dir, cfg.MaxAge)
		if err != nil {
			logger.Warn("file cache unavailable, continuing without cache", "dir", cfg.Dir, "err", err)
			return cache.NewNullCache(), cache.NewDefaultKeyer()
		}
		return fc, cache.NewDefaultKeyer()
	}
}

// redactURL hides the password of a connection URL.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the lookup cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheStatsCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.fileCacheDir()
			if err != nil {
				return err
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir, 0)
			if err != nil {
				return errors.Wrap(errors.ErrCodeCache, err, "open cache %s", dir)
			}
			count, err := fc.Clear(cache.Namespaces...)
			if err != nil {
				return errors.Wrap(errors.ErrCodeCache, err, "clear cache %s", dir)
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.fileCacheDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// cacheStatsCommand creates the "cache stats" subcommand.
func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how many lookups are cached",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.fileCacheDir()
			if err != nil {
				return err
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir, 0)
			if err != nil {
				return errors.Wrap(errors.ErrCodeCache, err, "open cache %s", dir)
			}
			usage, err := fc.Usage(cache.Namespaces...)
			if err != nil {
				return errors.Wrap(errors.ErrCodeCache, err, "read cache %s", dir)
			}

			rows := make([][]string, 0, len(usage)+1)
			var entries int
			var bytes int64
			for _, u := range usage {
				rows = append(rows, []string{u.Namespace, strconv.Itoa(u.Entries), formatBytes(u.Bytes)})
				entries += u.Entries
				bytes += u.Bytes
			}
			rows = append(rows, []string{"total", strconv.Itoa(entries), formatBytes(bytes)})

			printKeyValue("Directory", dir)
			fmt.Fprintln(out, renderTable([]string{"Namespace", "Entries", "Size"}, rows))
			return nil
		},
	}
}

// fileCacheDir returns the absolute file cache directory from the config.
func (c *CLI) fileCacheDir() (string, error) {
	if c.cfg.Cache.Backend == config.BackendRedis {
		return "", errors.New(errors.ErrCodeInvalidInput, "cache commands only manage the file backend")
	}
	dir, err := filepath.Abs(c.cfg.Cache.Dir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", c.cfg.Cache.Dir)
	}
	return dir, nil
}

// printCacheStats prints the hit/miss counts recorded during a run.
func printCacheStats(stats *observability.CacheStats) {
	snap := stats.Snapshot()
	if len(snap) == 0 {
		return
	}
	rows := make([][]string, 0, len(snap)+1)
	for _, ns := range snap {
		rows = append(rows, []string{ns.Namespace, strconv.FormatInt(ns.Hits, 10), strconv.FormatInt(ns.Misses, 10)})
	}
	hits, misses := stats.Totals()
	rows = append(rows, []string{"total", strconv.FormatInt(hits, 10), strconv.FormatInt(misses, 10)})

	printNewline()
	printInfo("Cache statistics")
	fmt.Fprintln(out, renderTable([]string{"Namespace", "Hits", "Misses"}, rows))
}

// renderTable renders a bordered table with a styled header and a dimmed
// final summary row.
func renderTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	last := len(rows) - 1

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return headerStyle
			case row == last:
				return cellStyle.Foreground(colorGray)
			case col > 0:
				return cellStyle.Foreground(colorCyan)
			}
			return cellStyle
		}).
		Render()
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
