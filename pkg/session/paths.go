package session

import (
	"fmt"
	"strconv"
	"strings"
)

func getPath(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	current := any(root)
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

func setPath(root map[string]any, path string, value any) error {
	_, err := place(root, strings.Split(path, "."), value, path)
	return err
}

// place descends one segment at a time, returning the (possibly reallocated)
// node so slice growth propagates back to the parent.
func place(node any, segments []string, value any, full string) (any, error) {
	segment := segments[0]
	last := len(segments) == 1

	switch typed := node.(type) {
	case map[string]any:
		if last {
			typed[segment] = value
			return typed, nil
		}
		placed, err := place(ensureContainer(typed[segment], segments[1]), segments[1:], value, full)
		if err != nil {
			return nil, err
		}
		typed[segment] = placed
		return typed, nil

	case []any:
		idx, err := strconv.Atoi(segment)
		if err != nil {
			return nil, fmt.Errorf("session: expected numeric segment %q in path %q", segment, full)
		}
		if idx < 0 {
			return nil, fmt.Errorf("session: negative index in path %q", full)
		}
		if len(typed) <= idx {
			typed = append(typed, make([]any, idx+1-len(typed))...)
		}
		if last {
			typed[idx] = value
			return typed, nil
		}
		placed, err := place(ensureContainer(typed[idx], segments[1]), segments[1:], value, full)
		if err != nil {
			return nil, err
		}
		typed[idx] = placed
		return typed, nil

	default:
		return nil, fmt.Errorf("session: cannot descend into %T at %q in path %q", node, segment, full)
	}
}

// ensureContainer returns current when it already matches the shape the next
// segment needs, otherwise a fresh container of the right shape.
func ensureContainer(current any, nextSegment string) any {
	if _, err := strconv.Atoi(nextSegment); err == nil {
		if slice, ok := current.([]any); ok {
			return slice
		}
		return []any{}
	}
	if m, ok := current.(map[string]any); ok && m != nil {
		return m
	}
	return map[string]any{}
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for key, child := range typed {
			clone[key] = deepCopy(child)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, child := range typed {
			clone[i] = deepCopy(child)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}
