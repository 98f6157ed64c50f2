package cache

import "strings"

// Query identifies one template lookup context. Each distinct tuple owns its
// own cache slot, so switching county or case type never evicts another
// context's templates.
type Query struct {
	State    string
	County   string
	Court    string
	CaseType string
}

// Key renders the storage key. Segments are trimmed and lowercased so
// logically equal queries share a slot.
func (q Query) Key() []byte {
	return []byte("templates/" + q.String())
}

// String renders the normalized tuple for keys and log lines.
func (q Query) String() string {
	segments := []string{q.State, q.County, q.Court, q.CaseType}
	for i, segment := range segments {
		segments[i] = strings.ToLower(strings.TrimSpace(segment))
	}
	return strings.Join(segments, "/")
}
