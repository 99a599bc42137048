package tree

// Clone returns a deep copy of a decoded JSON tree. Mappings and sequences
// are copied; scalars are shared. Use it before merging into a document that
// other readers may hold, such as one returned from a cache.
func Clone(node any) any {
	switch value := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for key, child := range value {
			out[key] = Clone(child)
		}

		return out
	case []any:
		out := make([]any, len(value))
		for i, child := range value {
			out[i] = Clone(child)
		}

		return out
	default:
		return node
	}
}
