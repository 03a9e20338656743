package source

import (
	"fmt"
	"reflect"
)

// normalizeMap rewrites parser output into plain settings trees: nested maps
// become map[string]any and every slice becomes []any. The TOML decoder
// produces []map[string]any for arrays of tables and the YAML decoder
// produces map[any]any for mappings with non-string keys.
func normalizeMap(m map[string]any) map[string]any {
	for key, value := range m {
		m[key] = normalize(value)
	}
	return m
}

func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeMap(v)
	case map[any]any:
		result := make(map[string]any, len(v))
		for key, item := range v {
			result[fmt.Sprint(key)] = normalize(item)
		}
		return result
	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}
		return v
	case []map[string]any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = normalizeMap(item)
		}
		return result
	case []byte:
		return v
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice {
		result := make([]any, rv.Len())
		for i := range result {
			result[i] = normalize(rv.Index(i).Interface())
		}
		return result
	}

	return value
}
