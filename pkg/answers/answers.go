// Package answers holds the flat answer map a form session accumulates and
// the value coercion helpers the evaluation packages share. Answers are keyed
// by field ID regardless of how deeply the field nests in its template.
package answers

// Map is the canonical answer store. Values are whatever the transport or
// prompt layer produced: strings, bools, numbers, slices for multi selects.
type Map map[string]any

// Empty reports whether the field has no usable answer: the key is absent,
// or holds nil, or holds the empty string. Everything else counts as
// answered, including false, zero, and empty slices.
func (m Map) Empty(fieldID string) bool {
	value, ok := m[fieldID]
	if !ok {
		return true
	}
	return value == nil || value == ""
}

// Clone returns a shallow copy. Nested slices and maps are shared.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for key, value := range m {
		out[key] = value
	}
	return out
}
