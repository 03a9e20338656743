package conf

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/redhatinsights/confmerge/internal/merge"
	"github.com/redhatinsights/confmerge/internal/source"
)

// registration is a source and the key path its settings are merged at.
type registration struct {
	source     source.Source
	keyPath    string
	hasKeyPath bool
}

// Builder aggregates configuration sources into one Configuration.
// See the Build method.
type Builder struct {
	registrations []registration
}

// NewBuilder returns a Builder with no sources.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddSource registers src to be merged at the root of the configuration.
func (b *Builder) AddSource(src source.Source) *Builder {
	b.registrations = append(b.registrations, registration{source: src})
	return b
}

// AddSourceAt registers src to be merged into the subtree at keyPath.
func (b *Builder) AddSourceAt(src source.Source, keyPath string) *Builder {
	b.registrations = append(b.registrations, registration{
		source:     src,
		keyPath:    keyPath,
		hasKeyPath: true,
	})
	return b
}

// Len returns the number of registered sources.
func (b *Builder) Len() int {
	return len(b.registrations)
}

// Build loads every registered source concurrently and merges the results
// in registration order, starting from an empty configuration. Completion
// order of the loads does not affect the result.
//
// The first load error cancels ctx for the remaining loads and is returned
// as-is; no partial configuration is returned.
func (b *Builder) Build(ctx context.Context, strategy merge.Strategy) (*Configuration, error) {
	loaded := make([]map[string]any, len(b.registrations))

	g, ctx := errgroup.WithContext(ctx)
	for i, reg := range b.registrations {
		i, reg := i, reg
		g.Go(func() error {
			settings, err := reg.source.Load(ctx)
			if err != nil {
				return err
			}
			loaded[i] = settings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resolved := New(nil)
	for i, reg := range b.registrations {
		opts := []MergeOption{WithStrategy(strategy)}
		if reg.hasKeyPath {
			opts = append(opts, AtKeyPath(reg.keyPath))
		}
		resolved = resolved.Merge(New(loaded[i]), opts...)

		slog.Debug("merged configuration source",
			"index", i,
			"source", sourceName(reg.source),
			"key-path", reg.keyPath,
			"strategy", strategy.String(),
		)
	}

	return resolved, nil
}

// sourceName describes src for log messages.
func sourceName(src source.Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return "<anonymous>"
}
