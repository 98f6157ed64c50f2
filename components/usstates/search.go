package usstates

import (
	"sort"
	"strings"

	"github.com/goliatone/go-intake/pkg/schema"
)

// Search filters states by query. A query matching a code or a name prefix
// ranks before substring matches; an empty query returns the top of the list
// only when the options ask for it.
func Search(states []State, query string, limit int, opts Options) []State {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(states) <= limit {
				return append([]State{}, states...)
			}
			return append([]State{}, states[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedState, 0, 16)
	for _, state := range states {
		lowerName := strings.ToLower(state.Name)
		lowerCode := strings.ToLower(state.Code)
		if !strings.Contains(lowerName, q) && !strings.HasPrefix(lowerCode, q) {
			continue
		}
		matches = append(matches, matchedState{
			state:    state,
			isPrefix: strings.HasPrefix(lowerName, q) || lowerCode == q,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].state.Name < matches[j].state.Name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]State, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.state)
	}
	return out
}

// SearchOptions runs Search and converts the hits into field options, code as
// value and name as label.
func SearchOptions(states []State, query string, limit int, opts Options) []schema.Option {
	results := Search(states, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]schema.Option, 0, len(results))
	for _, state := range results {
		out = append(out, schema.Option{Value: state.Code, Label: state.Name})
	}
	return out
}

type matchedState struct {
	state    State
	isPrefix bool
}
