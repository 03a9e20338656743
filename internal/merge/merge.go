// Package merge combines nested settings maps.
//
// Objects performs a deep merge where the second map wins on conflicts.
// Maps are merged recursively and slices are combined according to a
// Strategy. Neither input is modified and the result never shares mutable
// values with them.
package merge

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Strategy selects how two colliding slices are combined.
type Strategy int

const (
	// MergeIndexed replaces colliding slices with the order-preserving union
	// of both, dropping duplicate elements.
	MergeIndexed Strategy = iota
	// ReplaceIndexed replaces colliding slices with the incoming one.
	ReplaceIndexed
)

// ErrUnknownStrategy is returned by ParseStrategy for unrecognised names.
var ErrUnknownStrategy = errors.New("unknown merge strategy")

func (s Strategy) String() string {
	switch s {
	case MergeIndexed:
		return "MERGE_INDEXED"
	case ReplaceIndexed:
		return "REPLACE_INDEXED"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy accepts "MERGE_INDEXED" and "REPLACE_INDEXED" as well as the
// short forms "merge" and "replace", case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "MERGE_INDEXED", "MERGE":
		return MergeIndexed, nil
	case "REPLACE_INDEXED", "REPLACE":
		return ReplaceIndexed, nil
	default:
		return MergeIndexed, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Objects returns a new map holding a deep merge of b into a.
//
// For each key of b: a key missing from a is taken from b; two maps are
// merged recursively; two slices are unioned when strategy is MergeIndexed;
// anything else is replaced by b's value. Keys present only in a are kept.
// Slices of maps are not merged element-wise.
func Objects(a, b map[string]any, strategy Strategy) map[string]any {
	result := make(map[string]any, len(a)+len(b))
	for key, value := range a {
		result[key] = Clone(value)
	}

	for key, bValue := range b {
		aValue, exists := a[key]
		if !exists {
			result[key] = Clone(bValue)
			continue
		}

		aMap, aIsMap := aValue.(map[string]any)
		bMap, bIsMap := bValue.(map[string]any)
		if aIsMap && bIsMap {
			result[key] = Objects(aMap, bMap, strategy)
			continue
		}

		if strategy == MergeIndexed {
			aSlice, aIsSlice := aValue.([]any)
			bSlice, bIsSlice := bValue.([]any)
			if aIsSlice && bIsSlice {
				result[key] = Union(aSlice, bSlice)
				continue
			}
		}

		result[key] = Clone(bValue)
	}

	return result
}

// Union returns the elements of a followed by those of b, keeping only the
// first occurrence of deep-equal elements.
func Union(a, b []any) []any {
	result := make([]any, 0, len(a)+len(b))

	for _, list := range [][]any{a, b} {
		for _, item := range list {
			if !contains(result, item) {
				result = append(result, Clone(item))
			}
		}
	}

	return result
}

func contains(list []any, item any) bool {
	for _, existing := range list {
		if reflect.DeepEqual(existing, item) {
			return true
		}
	}
	return false
}
