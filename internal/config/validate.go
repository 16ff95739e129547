package config

import (
	"strings"

	"github.com/matzehuels/packdiff/pkg/errors"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Enrich.Workers < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "enrich.workers must be at least 1, got %d", c.Enrich.Workers)
	}
	if c.Enrich.Delay < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "enrich.delay must not be negative")
	}
	if c.HTTP.Timeout <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "http.timeout must be positive")
	}
	if c.Cache.MaxAge < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.max_age must not be negative")
	}

	switch c.Cache.Backend {
	case BackendFile:
		if c.Cache.Enabled && strings.TrimSpace(c.Cache.Dir) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.dir must be set for the file backend")
		}
	case BackendRedis:
		if c.Cache.Enabled && strings.TrimSpace(c.Cache.RedisURL) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url must be set for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be %q or %q, got %q", BackendFile, BackendRedis, c.Cache.Backend)
	}
	return nil
}
