// Package datasource resolves named option lists for choice fields. A field
// that sets dataSource instead of inline options gets its choices from the
// provider registered under that name.
package datasource

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-intake/pkg/schema"
)

// Provider supplies the option list for one named source. Implementations
// should return a fresh or immutable slice; callers may retain the result.
type Provider interface {
	Options() []schema.Option
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func() []schema.Option

// Options implements Provider.
func (f ProviderFunc) Options() []schema.Option { return f() }

// Registry maps source names to providers. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Default is the process-wide registry consulted when callers do not supply
// their own. Bundled components register themselves here on import.
var Default = NewRegistry()

// Register adds a provider under name. The latest registration wins so
// callers can override bundled sources. Empty names and nil providers are
// ignored.
func (r *Registry) Register(name string, provider Provider) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || provider == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[trimmed] = provider
}

// Lookup returns the provider registered under name.
func (r *Registry) Lookup(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[strings.TrimSpace(name)]
	return provider, ok
}

// Options resolves name to its option list, returning nil when the source is
// unknown.
func (r *Registry) Options(name string) []schema.Option {
	if provider, ok := r.Lookup(name); ok {
		return provider.Options()
	}
	return nil
}

// Names lists the registered source names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Static wraps a fixed option list in a Provider. The list is copied so
// later mutation by the caller does not leak into lookups.
func Static(options ...schema.Option) Provider {
	fixed := make([]schema.Option, len(options))
	copy(fixed, options)
	return ProviderFunc(func() []schema.Option {
		out := make([]schema.Option, len(fixed))
		copy(out, fixed)
		return out
	})
}

// FieldOptions resolves the effective options for a field: inline options
// when present, otherwise the field's data source via the registry.
func (r *Registry) FieldOptions(field schema.Field) []schema.Option {
	if len(field.Options) > 0 {
		return field.Options
	}
	if field.DataSource != "" {
		return r.Options(field.DataSource)
	}
	return nil
}
