package enrich

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packdiff/pkg/observability"
)

const (
	DefaultConcurrency = 3                      // Default worker pool width
	DefaultDelay       = 500 * time.Millisecond // Default pause after each fetch
)

// Options configures a bulk resolution.
type Options struct {
	Kind        string                    // Label for logs and hooks (e.g. "mods")
	Concurrency int                       // Maximum in-flight fetches (default: 3)
	Delay       time.Duration             // Pause after each fetch before its slot frees; 0 disables
	Logger      *log.Logger               // Receives per-key failures (default: log.Default())
	Hooks       observability.EnrichHooks // Start/complete events (default: observability.Enrich())
}

// DefaultOptions returns Options with the default concurrency and delay.
func DefaultOptions() Options {
	return Options{Concurrency: DefaultConcurrency, Delay: DefaultDelay}
}

// WithDefaults returns a copy of Options with unset fields replaced by
// defaults. Delay is left as is: zero means no pacing.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Kind == "" {
		opts.Kind = "items"
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Hooks == nil {
		opts.Hooks = observability.Enrich()
	}
	return opts
}
