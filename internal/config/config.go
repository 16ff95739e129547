// Package config loads packdiff settings from a TOML file.
//
// Precedence is flags, then file, then [Default]. A file only needs to set
// the keys it wants to change.
//
//	[enrich]
//	enabled = true
//	files   = true
//	delay   = "500ms"
//	workers = 3
//
//	[cache]
//	enabled   = true
//	dir       = ".cursecache"
//	backend   = "file"          # or "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[http]
//	user_agent = "..."
//	timeout    = "10s"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/packdiff/pkg/enrich"
	"github.com/matzehuels/packdiff/pkg/errors"
	"github.com/matzehuels/packdiff/pkg/integrations"
)

// FileName is the project-local config file looked up when no path is given.
const FileName = "packdiff.toml"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Enrich controls catalog lookups.
type Enrich struct {
	Enabled bool          `toml:"enabled"`
	Files   bool          `toml:"files"`
	Delay   time.Duration `toml:"delay"`
	Workers int           `toml:"workers"`
}

// Cache controls where lookup results are kept between runs.
type Cache struct {
	Enabled  bool          `toml:"enabled"`
	Dir      string        `toml:"dir"`
	Backend  string        `toml:"backend"`
	RedisURL string        `toml:"redis_url"`
	MaxAge   time.Duration `toml:"max_age"` // 0 keeps file entries forever
}

// HTTP controls outbound page requests.
type HTTP struct {
	UserAgent string        `toml:"user_agent"`
	Timeout   time.Duration `toml:"timeout"`
}

// Config is the full set of packdiff settings.
type Config struct {
	Enrich Enrich `toml:"enrich"`
	Cache  Cache  `toml:"cache"`
	HTTP   HTTP   `toml:"http"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Enrich: Enrich{
			Enabled: false,
			Files:   true,
			Delay:   enrich.DefaultDelay,
			Workers: enrich.DefaultConcurrency,
		},
		Cache: Cache{
			Enabled: true,
			Dir:     ".cursecache",
			Backend: BackendFile,
		},
		HTTP: HTTP{
			UserAgent: integrations.DefaultUserAgent,
			Timeout:   integrations.DefaultTimeout,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "packdiff", "config.toml"), nil
}

// Load reads path over the defaults and validates the result. It returns
// the file that was read, or "" when none was found.
//
// An explicit path must exist. With an empty path, ./packdiff.toml and then
// DefaultPath are tried, and neither is required.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return nil, "", err
	}

	if resolved != "" {
		md, err := toml.DecodeFile(resolved, &cfg)
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", resolved)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, "", errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", resolved, strings.Join(keys, ", "))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolved, nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
			}
			return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "stat %s", path)
		}
		if info.IsDir() {
			return "", errors.New(errors.ErrCodeInvalidConfig, "config path is a directory: %s", path)
		}
		return path, nil
	}

	candidates := []string{FileName}
	if p, err := DefaultPath(); err == nil {
		candidates = append(candidates, p)
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", nil
}
