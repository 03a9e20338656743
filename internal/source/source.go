// Package source provides the configuration sources consumed by
// conf.Builder.
//
// A Source produces one settings tree per call to Load. File-backed sources
// compose File, which reads the raw bytes, with a parser for the file's
// format. Use ForPath to pick the parser from a file extension and DropIns
// to load every supported file of a drop-in directory in lexicographic
// order.
package source

import (
	"context"

	"github.com/redhatinsights/confmerge/internal/merge"
)

// Source produces a settings tree.
type Source interface {
	// Load returns the settings held by the source. A nil map is treated as
	// an empty tree.
	Load(ctx context.Context) (map[string]any, error)
}

// Func adapts an ordinary function to the Source interface.
type Func func(ctx context.Context) (map[string]any, error)

// Load calls f(ctx).
func (f Func) Load(ctx context.Context) (map[string]any, error) {
	return f(ctx)
}

// Static returns a Source that yields a deep copy of settings on every load.
func Static(settings map[string]any) Source {
	return Func(func(ctx context.Context) (map[string]any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return merge.CloneMap(settings), nil
	})
}
