package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/packdiff/internal/config"
	"github.com/matzehuels/packdiff/pkg/cache"
	"github.com/matzehuels/packdiff/pkg/diff"
	"github.com/matzehuels/packdiff/pkg/enrich"
	"github.com/matzehuels/packdiff/pkg/errors"
	"github.com/matzehuels/packdiff/pkg/integrations/curseforge"
	"github.com/matzehuels/packdiff/pkg/modpack"
	"github.com/matzehuels/packdiff/pkg/observability"
	"github.com/matzehuels/packdiff/pkg/report"
)

// diffOptions holds the flags of the diff command.
type diffOptions struct {
	output        string
	enrich        bool
	noEnrichFiles bool
	delay         time.Duration
	workers       int
}

// diffCommand creates the diff command.
func (c *CLI) diffCommand() *cobra.Command {
	var opts diffOptions

	cmd := &cobra.Command{
		Use:   "diff <old.zip> <new.zip>",
		Short: "Compare the manifests of two modpack exports",
		Long: `Compare the manifest.json of two modpack export archives and print a
Markdown report of added, removed, and updated mods.

With --enrich, mod and file names are looked up on CurseForge. Lookups are
cached (see "packdiff cache") so repeated runs only fetch what is new.`,
		Example: `  packdiff diff pack-1.0.zip pack-1.1.zip
  packdiff diff old.zip new.zip --enrich -o CHANGELOG.md
  packdiff diff old.zip new.zip --enrich --no-enrich-files --workers 5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyDiffFlags(cmd, &opts)
			return c.runDiff(cmd.Context(), args[0], args[1], opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.enrich, "enrich", false, "look up mod and file names on CurseForge")
	cmd.Flags().BoolVar(&opts.noEnrichFiles, "no-enrich-files", false, "skip file name lookups (faster)")
	cmd.Flags().DurationVar(&opts.delay, "delay", enrich.DefaultDelay, "pause after each lookup")
	cmd.Flags().IntVar(&opts.workers, "workers", enrich.DefaultConcurrency, "maximum concurrent lookups")

	return cmd
}

// applyDiffFlags layers explicitly set flags over the loaded config.
func (c *CLI) applyDiffFlags(cmd *cobra.Command, opts *diffOptions) {
	flags := cmd.Flags()
	if flags.Changed("enrich") {
		c.cfg.Enrich.Enabled = opts.enrich
	}
	if flags.Changed("no-enrich-files") {
		c.cfg.Enrich.Files = !opts.noEnrichFiles
	}
	if flags.Changed("delay") {
		c.cfg.Enrich.Delay = opts.delay
	}
	if flags.Changed("workers") {
		c.cfg.Enrich.Workers = opts.workers
	}
}

func (c *CLI) runDiff(ctx context.Context, oldPath, newPath, output string) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}
	logger := loggerFromContext(ctx)

	old, err := modpack.Open(oldPath)
	if err != nil {
		return err
	}
	next, err := modpack.Open(newPath)
	if err != nil {
		return err
	}
	logger.Debug("loaded manifests", "old", len(old.Files), "new", len(next.Files))

	result := diff.Diff(old, next)
	logger.Debug("diffed", "added", len(result.Additions), "removed", len(result.Removals), "updated", len(result.Updates))

	var info *enrich.Result
	if c.cfg.Enrich.Enabled {
		info, err = c.enrich(ctx, old, next)
		if err != nil {
			return err
		}
	}

	md := report.Markdown(result, old, next, info)
	if output == "" {
		_, err := fmt.Fprint(os.Stdout, md)
		return err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(output, []byte(md), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
	}
	printSuccess("Comparison saved to %s", output)
	return nil
}

// enrich looks up names for both manifests and prints cache statistics.
func (c *CLI) enrich(ctx context.Context, old, next *modpack.Manifest) (*enrich.Result, error) {
	logger := loggerFromContext(ctx)
	cfg := c.cfg

	backend, keyer := openCache(ctx, cfg.Cache, logger)
	defer backend.Close()
	if cfg.Cache.Enabled {
		printInfo("Using %s cache: %s", cfg.Cache.Backend, cacheLocation(cfg.Cache))
	} else {
		printWarning("Cache disabled, every lookup goes to CurseForge")
	}

	stats := observability.NewCacheStats()
	entries := cache.NewEntries(backend, keyer, stats, logger)
	client := curseforge.NewClient(curseforge.Options{
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: cfg.HTTP.UserAgent,
		Logger:    logger,
	})
	e := enrich.New(entries, client, enrich.Options{
		Concurrency: cfg.Enrich.Workers,
		Delay:       cfg.Enrich.Delay,
		Logger:      logger,
	})

	var spinner *Spinner
	if logger.GetLevel() > LogDebug && isTerminal(os.Stderr) {
		spinner = newSpinnerWithContext(ctx, "Looking up mods on CurseForge...")
		spinner.Start()
	}
	prog := newProgress(logger)
	res := e.Run(ctx, old, next, enrich.RunOptions{Files: cfg.Enrich.Files})
	if err := ctx.Err(); err != nil {
		if spinner != nil {
			spinner.StopWithError("Lookup cancelled")
		}
		return nil, err
	}
	msg := fmt.Sprintf("Resolved %d projects and %d files", len(res.OldProjects)+countNew(res), len(res.Files))
	if spinner != nil {
		spinner.StopWithSuccess(msg)
	} else {
		prog.done(msg)
	}

	if cfg.Cache.Enabled {
		printCacheStats(stats)
	}
	return res, nil
}

// countNew counts projects only present in the new-manifest lookups.
func countNew(res *enrich.Result) int {
	n := 0
	for id := range res.NewProjects {
		if _, ok := res.OldProjects[id]; !ok {
			n++
		}
	}
	return n
}

// cacheLocation describes where cfg stores entries.
func cacheLocation(cfg config.Cache) string {
	if cfg.Backend == config.BackendRedis {
		return redactURL(cfg.RedisURL)
	}
	return cfg.Dir
}
