// Package matter exposes the client and case record a form session is opened
// against. Templates reference it through dotted auto-populate paths such as
// "client.contact.email".
package matter

import "strings"

// Record is the decoded matter document. Nested objects decode to
// map[string]any under encoding/json, so paths descend through those.
type Record map[string]any

// Resolve walks a dotted path into the record. A key containing the literal
// dotted path wins over segment descent, so flattened exports keep working.
// Resolve never fails hard: any unresolvable path reports false.
func (r Record) Resolve(path string) (any, bool) {
	path = strings.TrimSpace(path)
	if r == nil || path == "" {
		return nil, false
	}

	if value, ok := r[path]; ok {
		return value, true
	}

	var current any = map[string]any(r)
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case Record:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case map[string]string:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		default:
			return nil, false
		}
	}
	return current, true
}
