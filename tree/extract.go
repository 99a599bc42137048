package tree

import (
	"sort"
	"strconv"
	"strings"
)

const (
	// Separator splits a path spec into segments.
	Separator = "."
	// Wildcard is the segment that matches every element of an array or object.
	Wildcard = "*"
)

// Location is a string found by a path spec, together with the container path
// of the object that holds it.
type Location struct {
	ContainerPath string
	URL           string
}

// Extract evaluates spec against root and returns every matched string keyed
// by its container path. Missing keys, non-string leaves and non-container
// intermediates simply produce no match.
func Extract(root any, spec string) map[string]string {
	found := make(map[string]string)

	if spec == "" || root == nil {
		return found
	}

	extract(root, strings.Split(spec, Separator), "", found)

	return found
}

// Locate runs Extract for every spec and returns the combined matches ordered
// by container path. When two specs match the same container, the later spec wins.
func Locate(root any, specs ...string) []Location {
	combined := make(map[string]string)

	for _, spec := range specs {
		for containerPath, url := range Extract(root, spec) {
			combined[containerPath] = url
		}
	}

	locations := make([]Location, 0, len(combined))
	for containerPath, url := range combined {
		locations = append(locations, Location{ContainerPath: containerPath, URL: url})
	}

	sort.Slice(locations, func(i, j int) bool {
		return locations[i].ContainerPath < locations[j].ContainerPath
	})

	return locations
}

func extract(node any, segments []string, prefix string, found map[string]string) {
	head, rest := segments[0], segments[1:]

	if head == Wildcard {
		eachChild(node, func(key string, child any) {
			childPath := join(prefix, key)

			if len(rest) == 0 {
				if url, ok := child.(string); ok {
					found[childPath] = url
				}

				return
			}

			if isContainer(child) {
				extract(child, rest, childPath, found)
			}
		})

		return
	}

	child, ok := lookup(node, head)
	if !ok {
		return
	}

	if len(rest) == 0 {
		// The key naming the string is not part of the container path.
		if url, isString := child.(string); isString {
			found[prefix] = url
		}

		return
	}

	if isContainer(child) {
		extract(child, rest, join(prefix, head), found)
	}
}

// eachChild calls fn for every element of an array or object. Object keys are
// visited in sorted order.
func eachChild(node any, fn func(key string, child any)) {
	switch typed := node.(type) {
	case []any:
		for i, child := range typed {
			fn(strconv.Itoa(i), child)
		}
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			fn(key, typed[key])
		}
	}
}

// lookup returns the non-null child of node named by segment.
func lookup(node any, segment string) (any, bool) {
	switch typed := node.(type) {
	case map[string]any:
		child, ok := typed[segment]
		if !ok || child == nil {
			return nil, false
		}

		return child, true
	case []any:
		index, ok := parseIndex(segment, len(typed))
		if !ok || typed[index] == nil {
			return nil, false
		}

		return typed[index], true
	default:
		return nil, false
	}
}

func parseIndex(segment string, length int) (int, bool) {
	index, err := strconv.Atoi(segment)
	if err != nil || index < 0 || index >= length {
		return 0, false
	}

	return index, true
}

func isContainer(node any) bool {
	switch node.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}

func join(prefix, segment string) string {
	if prefix == "" {
		return segment
	}

	return prefix + Separator + segment
}
