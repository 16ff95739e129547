package cache

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileCache implements a file-based cache for CLI usage.
// Each key maps to a human-readable file: key "mods/42" is stored at
// {dir}/mods/42.json with the data written verbatim.
type FileCache struct {
	dir    string
	maxAge time.Duration
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist. maxAge > 0 makes
// entries older than maxAge (by modification time) read as misses.
func NewFileCache(dir string, maxAge time.Duration) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, maxAge: maxAge}, nil
}

// Dir returns the cache root.
func (c *FileCache) Dir() string { return c.dir }

// Get retrieves a value from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := c.path(key)
	if err != nil {
		return nil, false, err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if c.maxAge > 0 && time.Since(info.ModTime()) > c.maxAge {
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in the cache. The entry is written to a temporary file
// and renamed into place so readers never observe a partial write.
// ttl is ignored; expiry is governed by the cache's maxAge.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// Usage summarizes the entries stored under one namespace directory.
type Usage struct {
	Namespace string
	Entries   int
	Bytes     int64
}

// Usage reports entry counts and sizes for each of the given namespaces
// that holds at least one entry, sorted by namespace. Temporary files from
// in-flight writes and files the cache did not write are skipped.
func (c *FileCache) Usage(namespaces ...Namespace) ([]Usage, error) {
	var out []Usage
	for _, ns := range namespaces {
		u := Usage{Namespace: string(ns)}
		err := c.eachFile(ns, func(path string, d fs.DirEntry) error {
			if !isEntry(d.Name()) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			u.Entries++
			u.Bytes += info.Size()
			return nil
		})
		if err != nil {
			return nil, err
		}
		if u.Entries > 0 {
			out = append(out, u)
		}
	}
	slices.SortFunc(out, func(a, b Usage) int { return strings.Compare(a.Namespace, b.Namespace) })
	return out, nil
}

// Clear removes the entries and leftover temporary files of the given
// namespaces. A namespace directory is removed once it is empty; anything
// else under the cache root is left alone. It returns the number of
// entries removed.
func (c *FileCache) Clear(namespaces ...Namespace) (int, error) {
	count := 0
	for _, ns := range namespaces {
		err := c.eachFile(ns, func(path string, d fs.DirEntry) error {
			switch name := d.Name(); {
			case isEntry(name):
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					return err
				}
				count++
			case isTemp(name):
				_ = os.Remove(path)
			}
			return nil
		})
		if err != nil {
			return count, err
		}
		_ = os.Remove(filepath.Join(c.dir, string(ns)))
	}
	return count, nil
}

// eachFile calls fn for every regular file directly inside the namespace
// directory. A missing directory is not an error.
func (c *FileCache) eachFile(ns Namespace, fn func(path string, d fs.DirEntry) error) error {
	dir, err := c.nsDir(ns)
	if err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, d := range entries {
		if !d.Type().IsRegular() {
			continue
		}
		if err := fn(filepath.Join(dir, d.Name()), d); err != nil {
			return err
		}
	}
	return nil
}

func (c *FileCache) nsDir(ns Namespace) (string, error) {
	name := string(ns)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid cache namespace %q", name)
	}
	return filepath.Join(c.dir, name), nil
}

func isEntry(name string) bool {
	return strings.HasSuffix(name, ".json") && !strings.HasPrefix(name, ".")
}

// isTemp matches the temporary files Set writes before renaming.
func isTemp(name string) bool {
	return strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".tmp")
}

// path converts a cache key to a file path under dir.
func (c *FileCache) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid cache key %q", key)
	}
	return filepath.Join(c.dir, clean+".json"), nil
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
