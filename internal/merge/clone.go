package merge

// Clone returns a deep copy of a settings value. Maps and slices are copied
// recursively; scalars are returned as-is.
func Clone(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return CloneMap(v)
	case []any:
		return cloneSlice(v)
	default:
		return value
	}
}

// CloneMap returns a deep copy of m. A nil map yields an empty one.
func CloneMap(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for key, value := range m {
		result[key] = Clone(value)
	}
	return result
}

func cloneSlice(s []any) []any {
	if s == nil {
		return nil
	}
	result := make([]any, len(s))
	for i, value := range s {
		result[i] = Clone(value)
	}
	return result
}
