package conf

import (
	"github.com/redhatinsights/confmerge/internal/keypath"
	"github.com/redhatinsights/confmerge/internal/merge"
)

// Configuration owns one settings tree and gives key-path access to it.
//
// Set, Remove and Clear modify the tree in place. Merge never modifies its
// receiver or argument and returns a new Configuration.
type Configuration struct {
	settings map[string]any
}

// New returns a Configuration owning settings. A nil map starts an empty
// configuration.
func New(settings map[string]any) *Configuration {
	if settings == nil {
		settings = make(map[string]any)
	}
	return &Configuration{settings: settings}
}

// Set stores value at path, replacing any non-map value found along the way.
func (c *Configuration) Set(path string, value any) {
	keypath.Set(c.settings, path, value)
}

// Has reports whether path resolves.
func (c *Configuration) Has(path string) bool {
	return keypath.Has(c.settings, path)
}

// Get returns the value at path, or def when path does not resolve.
func (c *Configuration) Get(path string, def any) any {
	return keypath.Get(c.settings, path, def)
}

// Lookup returns the value at path and whether it was found.
func (c *Configuration) Lookup(path string) (any, bool) {
	return keypath.Lookup(c.settings, path)
}

// Remove deletes the value at path if present.
func (c *Configuration) Remove(path string) {
	keypath.Remove(c.settings, path)
}

// Clear replaces the settings with an empty tree.
func (c *Configuration) Clear() {
	c.settings = make(map[string]any)
}

// All returns the live settings tree. Changes to the returned map are
// visible through c.
func (c *Configuration) All() map[string]any {
	return c.settings
}

// Clone returns a Configuration holding a deep copy of the settings.
func (c *Configuration) Clone() *Configuration {
	return &Configuration{settings: merge.CloneMap(c.settings)}
}

// MergeOption configures Configuration.Merge.
type MergeOption func(*mergeOptions)

type mergeOptions struct {
	keyPath    string
	hasKeyPath bool
	strategy   merge.Strategy
}

// AtKeyPath merges the other configuration into the subtree at path instead
// of the root.
func AtKeyPath(path string) MergeOption {
	return func(o *mergeOptions) {
		o.keyPath = path
		o.hasKeyPath = true
	}
}

// WithStrategy selects how colliding slices are combined. The default is
// merge.MergeIndexed.
func WithStrategy(strategy merge.Strategy) MergeOption {
	return func(o *mergeOptions) {
		o.strategy = strategy
	}
}

// Merge returns a new Configuration holding other merged into c. Values of
// other win on conflicts.
//
// With AtKeyPath the merge happens against the subtree at that path (an
// empty tree when the path is absent or not a map) and the result is written
// back at the path, leaving the rest of c's settings intact in the copy.
func (c *Configuration) Merge(other *Configuration, opts ...MergeOption) *Configuration {
	var o mergeOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !o.hasKeyPath {
		return New(merge.Objects(c.settings, other.All(), o.strategy))
	}

	base, _ := c.Get(o.keyPath, nil).(map[string]any)
	merged := merge.Objects(base, other.All(), o.strategy)

	result := c.Clone()
	result.Set(o.keyPath, merged)
	return result
}
