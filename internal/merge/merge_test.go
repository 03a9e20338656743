package merge

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestObjects(t *testing.T) {
	tests := []struct {
		name     string
		a        map[string]any
		b        map[string]any
		strategy Strategy
		expected map[string]any
	}{
		{
			name:     "disjoint keys",
			a:        map[string]any{"key": "value"},
			b:        map[string]any{"otherKey": "other value"},
			expected: map[string]any{"key": "value", "otherKey": "other value"},
		},
		{
			name:     "nil inputs",
			expected: map[string]any{},
		},
		{
			name:     "b wins on scalar conflict",
			a:        map[string]any{"a": 1.0},
			b:        map[string]any{"a": 2.0},
			expected: map[string]any{"a": 2.0},
		},
		{
			name: "nested maps merge recursively",
			a: map[string]any{
				"server": map[string]any{"host": "localhost", "tls": map[string]any{"enabled": false}},
			},
			b: map[string]any{
				"server": map[string]any{"port": 8080.0, "tls": map[string]any{"enabled": true}},
			},
			expected: map[string]any{
				"server": map[string]any{
					"host": "localhost",
					"port": 8080.0,
					"tls":  map[string]any{"enabled": true},
				},
			},
		},
		{
			name:     "slices union under MergeIndexed",
			a:        map[string]any{"list": []any{"one", "two", "three"}},
			b:        map[string]any{"list": []any{"two", "three", "four"}},
			strategy: MergeIndexed,
			expected: map[string]any{"list": []any{"one", "two", "three", "four"}},
		},
		{
			name:     "slices replaced under ReplaceIndexed",
			a:        map[string]any{"list": []any{"one", "two", "three"}},
			b:        map[string]any{"list": []any{"two", "three", "four"}},
			strategy: ReplaceIndexed,
			expected: map[string]any{"list": []any{"two", "three", "four"}},
		},
		{
			name: "slices of maps are opaque",
			a: map[string]any{"items": []any{
				map[string]any{"name": "a", "size": 1.0},
			}},
			b: map[string]any{"items": []any{
				map[string]any{"name": "a", "size": 1.0},
				map[string]any{"name": "a", "size": 2.0},
			}},
			expected: map[string]any{"items": []any{
				map[string]any{"name": "a", "size": 1.0},
				map[string]any{"name": "a", "size": 2.0},
			}},
		},
		{
			name:     "map replaced by scalar",
			a:        map[string]any{"value": map[string]any{"a": 1.0}},
			b:        map[string]any{"value": "string"},
			expected: map[string]any{"value": "string"},
		},
		{
			name:     "scalar replaced by map",
			a:        map[string]any{"value": "string"},
			b:        map[string]any{"value": map[string]any{"a": 1.0}},
			expected: map[string]any{"value": map[string]any{"a": 1.0}},
		},
		{
			name:     "slice replaced by scalar under MergeIndexed",
			a:        map[string]any{"value": []any{"a"}},
			b:        map[string]any{"value": "a"},
			expected: map[string]any{"value": "a"},
		},
		{
			name:     "explicit nil in b wins",
			a:        map[string]any{"value": "set"},
			b:        map[string]any{"value": nil},
			expected: map[string]any{"value": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Objects(tt.a, tt.b, tt.strategy)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Objects() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestObjectsDoesNotModifyInputs(t *testing.T) {
	a := map[string]any{
		"nested": map[string]any{"a": 1.0},
		"list":   []any{"x"},
		"keep":   map[string]any{"deep": map[string]any{"v": true}},
	}
	b := map[string]any{
		"nested": map[string]any{"b": 2.0},
		"list":   []any{"y"},
		"fresh":  map[string]any{"v": "b"},
	}
	aBefore := CloneMap(a)
	bBefore := CloneMap(b)

	result := Objects(a, b, MergeIndexed)

	// Mutating the result must not reach either input.
	result["nested"].(map[string]any)["c"] = 3.0
	result["keep"].(map[string]any)["deep"].(map[string]any)["v"] = false
	result["fresh"].(map[string]any)["v"] = "changed"
	result["list"].([]any)[0] = "mutated"

	if diff := cmp.Diff(aBefore, a); diff != "" {
		t.Errorf("a was modified (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(bBefore, b); diff != "" {
		t.Errorf("b was modified (-before +after):\n%s", diff)
	}
}

func TestUnion(t *testing.T) {
	tests := []struct {
		name     string
		a        []any
		b        []any
		expected []any
	}{
		{
			name:     "both empty",
			expected: []any{},
		},
		{
			name:     "duplicates within a are dropped",
			a:        []any{"a", "a", "b"},
			b:        []any{"b", "c"},
			expected: []any{"a", "b", "c"},
		},
		{
			name:     "mixed scalar types compare by value and type",
			a:        []any{1.0, "1", true},
			b:        []any{1.0, int64(1), nil, nil},
			expected: []any{1.0, "1", true, int64(1), nil},
		},
		{
			name:     "nested slices are compared deeply",
			a:        []any{[]any{"a", "b"}},
			b:        []any{[]any{"a", "b"}, []any{"b", "a"}},
			expected: []any{[]any{"a", "b"}, []any{"b", "a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, Union(tt.a, tt.b)); diff != "" {
				t.Errorf("Union() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input    string
		expected Strategy
		wantErr  bool
	}{
		{input: "MERGE_INDEXED", expected: MergeIndexed},
		{input: "merge", expected: MergeIndexed},
		{input: "REPLACE_INDEXED", expected: ReplaceIndexed},
		{input: " Replace ", expected: ReplaceIndexed},
		{input: "append", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownStrategy) {
					t.Fatalf("expected ErrUnknownStrategy, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseStrategy(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStrategyString(t *testing.T) {
	if got := MergeIndexed.String(); got != "MERGE_INDEXED" {
		t.Errorf("MergeIndexed.String() = %q", got)
	}
	if got := ReplaceIndexed.String(); got != "REPLACE_INDEXED" {
		t.Errorf("ReplaceIndexed.String() = %q", got)
	}
	if got := Strategy(7).String(); got != "Strategy(7)" {
		t.Errorf("Strategy(7).String() = %q", got)
	}
}

func TestClone(t *testing.T) {
	original := map[string]any{
		"a": []any{map[string]any{"b": "c"}},
		"d": map[string]any{"e": nil},
	}
	copied := CloneMap(original)
	if diff := cmp.Diff(original, copied); diff != "" {
		t.Fatalf("CloneMap() mismatch (-want +got):\n%s", diff)
	}

	copied["a"].([]any)[0].(map[string]any)["b"] = "changed"
	if original["a"].([]any)[0].(map[string]any)["b"] != "c" {
		t.Error("CloneMap() shares nested values with the original")
	}
	if got := CloneMap(nil); got == nil || len(got) != 0 {
		t.Errorf("CloneMap(nil) = %v, want empty map", got)
	}
}
