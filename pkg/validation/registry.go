package validation

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-intake/pkg/answers"
)

// Built-in custom validator names usable from a template's
// validation.customValidator field.
const (
	ValidatorEmail   = "email"
	ValidatorUSPhone = "us-phone"
	ValidatorUSZip   = "us-zip"
)

// Func checks one answer value. An empty return means the value passes;
// anything else is the user-facing failure message.
type Func func(value any) string

// Registry resolves the custom validator names templates reference. Names a
// registry does not know are skipped during validation, so templates can
// name validators only some deployments provide.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry constructs a registry with the built-in validators registered.
func NewRegistry() *Registry {
	reg := &Registry{funcs: make(map[string]Func)}
	reg.registerBuiltins()
	return reg
}

// DefaultRegistry backs Validate. Applications register their validators
// here once at startup.
var DefaultRegistry = NewRegistry()

// Register adds a validator under the provided name. The latest registration
// for a name wins. Empty names and nil funcs are ignored.
func (r *Registry) Register(name string, fn Func) {
	if r == nil || fn == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcs == nil {
		r.funcs = make(map[string]Func)
	}
	r.funcs[trimmed] = fn
}

// Lookup returns the validator registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.funcs[strings.TrimSpace(name)]
	return fn, ok
}

// Names lists the registered validator names sorted, for lint tooling that
// flags templates referencing validators no deployment provides.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	emailPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usPhonePattern = regexp.MustCompile(`^\(?\d{3}\)?[ .-]?\d{3}[ .-]?\d{4}$`)
	usZipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

func (r *Registry) registerBuiltins() {
	r.Register(ValidatorEmail, func(value any) string {
		if !emailPattern.MatchString(strings.TrimSpace(answers.String(value))) {
			return "Enter a valid email address"
		}
		return ""
	})
	r.Register(ValidatorUSPhone, func(value any) string {
		if !usPhonePattern.MatchString(strings.TrimSpace(answers.String(value))) {
			return "Enter a valid phone number"
		}
		return ""
	})
	r.Register(ValidatorUSZip, func(value any) string {
		if !usZipPattern.MatchString(strings.TrimSpace(answers.String(value))) {
			return "Enter a valid ZIP code"
		}
		return ""
	})
}
