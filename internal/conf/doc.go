package conf

// Package conf implements layered configuration built from several sources.
//
// # Usage
//
// Register sources on a Builder and build the merged Configuration:
//
//	import (
//	    "github.com/redhatinsights/confmerge/internal/conf"
//	    "github.com/redhatinsights/confmerge/internal/merge"
//	    "github.com/redhatinsights/confmerge/internal/source"
//	)
//
//	config, err := conf.NewBuilder().
//	    AddSource(source.TOML("/etc/rhc/config.toml", source.Optional())).
//	    AddSourceAt(source.JSON("/etc/rhc/features.json"), "features").
//	    Build(ctx, merge.MergeIndexed)
//	if err != nil {
//	    return err
//	}
//	level := config.GetString("log-level", "INFO")
//
// # Load Order
//
// All sources are loaded concurrently. Their settings are then merged one
// after another in the order the sources were added, so a later source
// overrides an earlier one regardless of which finished loading first.
// A source added with AddSourceAt is merged into the subtree at its key
// path instead of the root.
//
// # Key Paths
//
// Values are addressed with dot-separated key paths such as
// "server.tls.cert-file". Set creates intermediate maps as needed and
// replaces any non-map value in the way. Get, Has and Remove treat a path
// through a missing key or a non-map value as absent and never fail.
//
// # Merging
//
// Maps are merged recursively and the incoming value wins on conflicts.
// Two colliding lists are combined according to the merge strategy:
// merge.MergeIndexed keeps the de-duplicated union in first-seen order,
// merge.ReplaceIndexed keeps only the incoming list.
//
// # Typed Access
//
// Value[T] converts the value at a key path to T and reports ErrNotFound or
// a *TypeError. The GetString, GetInt and similar methods return a default
// instead of an error. Decode fills a struct from a subtree.
