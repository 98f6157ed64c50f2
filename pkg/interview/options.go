package interview

import (
	"github.com/goliatone/go-intake/pkg/datasource"
	"github.com/goliatone/go-intake/pkg/validation"
)

// Option configures the runner.
type Option func(*Runner)

// WithDriver overrides the prompt driver used by the runner.
func WithDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithValidators overrides the custom validator registry consulted by
// per-answer checks.
func WithValidators(reg *validation.Registry) Option {
	return func(r *Runner) {
		if reg != nil {
			r.reg = reg
		}
	}
}

// WithDataSources overrides the registry used to resolve dataSource-backed
// option lists.
func WithDataSources(sources *datasource.Registry) Option {
	return func(r *Runner) {
		if sources != nil {
			r.sources = sources
		}
	}
}

// WithMaxRows caps how many rows a repeating group collects in one run.
func WithMaxRows(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxRows = n
		}
	}
}
