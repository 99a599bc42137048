package tree

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultField is the key Merge writes fetched values under unless told otherwise.
const DefaultField = "data"

// ErrPathConflict is reported for a container path that cannot be written
// without replacing existing non-object data.
var ErrPathConflict = errors.New("container path conflicts with document structure")

// Merge writes each value into root at its container path under field, keeping
// every key already present in that container. Missing object levels are
// created. A location whose path runs into a leaf, an out-of-range array index,
// or ends on a non-object is skipped and reported in the returned error; the
// other locations are still written.
//
// Merge modifies root in place and returns it. A nil root becomes a new object.
func Merge(root any, values map[string]any, field string) (any, error) {
	if field == "" {
		field = DefaultField
	}

	if len(values) == 0 {
		return root, nil
	}

	if root == nil {
		root = make(map[string]any)
	}

	paths := make([]string, 0, len(values))
	for containerPath := range values {
		paths = append(paths, containerPath)
	}

	sort.Strings(paths)

	var errs []error

	for _, containerPath := range paths {
		container, err := descend(root, containerPath)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		container[field] = values[containerPath]
	}

	return root, errors.Join(errs...)
}

// descend walks root along containerPath, creating missing object levels, and
// returns the object found at the end.
func descend(root any, containerPath string) (map[string]any, error) {
	current := root

	var segments []string
	if containerPath != "" {
		segments = strings.Split(containerPath, Separator)
	}

	for i, segment := range segments {
		next, err := step(current, segment)
		if err != nil {
			return nil, fmt.Errorf("%w: %q at %q: %w",
				ErrPathConflict, containerPath, strings.Join(segments[:i+1], Separator), err)
		}

		current = next
	}

	container, ok := current.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q holds %s, not an object", ErrPathConflict, containerPath, kind(current))
	}

	return container, nil
}

func step(node any, segment string) (any, error) {
	switch typed := node.(type) {
	case map[string]any:
		child, ok := typed[segment]
		if !ok {
			created := make(map[string]any)
			typed[segment] = created

			return created, nil
		}

		if !isContainer(child) {
			return nil, fmt.Errorf("found %s", kind(child))
		}

		return child, nil
	case []any:
		index, ok := parseIndex(segment, len(typed))
		if !ok {
			return nil, fmt.Errorf("index out of range for array of %d", len(typed))
		}

		if !isContainer(typed[index]) {
			return nil, fmt.Errorf("found %s", kind(typed[index]))
		}

		return typed[index], nil
	default:
		return nil, fmt.Errorf("found %s", kind(node))
	}
}

func kind(node any) string {
	switch node.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", node)
	}
}
