package cli

import (
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/packdiff/internal/config"
)

// preRun runs before every command: it applies -v, loads the config file,
// layers the persistent flags on top and attaches the logger to the
// command context.
func (c *CLI) preRun(cmd *cobra.Command, args []string) error {
	if c.flags.verbose {
		c.SetLogLevel(log.DebugLevel)
	}

	cfg, path, err := config.Load(c.flags.configPath)
	if err != nil {
		return err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}

	flags := cmd.Flags()
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir = c.flags.cacheDir
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !c.flags.noCache
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

func isattyFd(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
