package usstates

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/us_states.txt
var dataFS embed.FS

const defaultListPath = "data/us_states.txt"

// State pairs a USPS code with the state's display name.
type State struct {
	Code string
	Name string
}

var (
	defaultOnce   sync.Once
	defaultStates []State
	defaultErr    error
)

// DefaultStates returns the embedded state list, loading it once.
func DefaultStates() ([]State, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		states, err := LoadStates(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultStates = states
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]State{}, defaultStates...), nil
}

// LoadStates parses a tab-separated CODE<TAB>Name list, skipping blanks,
// comments, and duplicate codes. The result is sorted by name.
func LoadStates(r io.Reader) ([]State, error) {
	if r == nil {
		return nil, fmt.Errorf("usstates: missing reader")
	}

	scanner := bufio.NewScanner(r)
	states := make([]State, 0, 64)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		code, name, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("usstates: malformed line %q", line)
		}
		code = strings.ToUpper(strings.TrimSpace(code))
		name = strings.TrimSpace(name)
		if code == "" || name == "" {
			return nil, fmt.Errorf("usstates: malformed line %q", line)
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		states = append(states, State{Code: code, Name: name})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Slice(states, func(i, j int) bool { return states[i].Name < states[j].Name })
	return states, nil
}
