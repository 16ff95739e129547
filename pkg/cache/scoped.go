package cache

import (
	"strconv"

	"github.com/matzehuels/packdiff/pkg/modpack"
)

// Namespace separates project-level from file-level entries.
type Namespace string

const (
	// ProjectNamespace holds ProjectInfo records keyed by projectID.
	ProjectNamespace Namespace = "mods"
	// FileNamespace holds FileInfo records keyed by projectID_fileID.
	FileNamespace Namespace = "files"
)

// Namespaces lists every namespace packdiff writes.
var Namespaces = []Namespace{ProjectNamespace, FileNamespace}

// ProjectID formats a project lookup key.
func ProjectID(pid int) string { return strconv.Itoa(pid) }

// FileID formats a file lookup key.
func FileID(k modpack.FileKey) string { return k.String() }

// Keyer maps a namespaced lookup key to a backend key.
type Keyer interface {
	Key(ns Namespace, id string) string
}

// DefaultKeyer produces "namespace/id", which FileCache turns into
// {dir}/namespace/id.json.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// Key implements Keyer.
func (DefaultKeyer) Key(ns Namespace, id string) string {
	return string(ns) + "/" + id
}

// ScopedKeyer wraps a Keyer with a prefix, for backends shared with other
// data such as a Redis instance.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "packdiff:")
//	keyer.Key(ProjectNamespace, "238222") // "packdiff:mods/238222"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// Key implements Keyer.
func (k *ScopedKeyer) Key(ns Namespace, id string) string {
	return k.prefix + k.inner.Key(ns, id)
}
