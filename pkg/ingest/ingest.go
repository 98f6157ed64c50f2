// Package ingest declares the contracts for turning OpenAPI documents into
// draft form templates. Court e-filing APIs publish request schemas; the
// converter walks them into editable template skeletons so authors do not
// start from a blank page.
//
// The kin-openapi implementation lives under internal/ingest; construction
// helpers sit in the root package to avoid import cycles.
package ingest

import (
	"context"

	"github.com/goliatone/go-intake/pkg/schema"
)

// Converter produces draft templates from an OpenAPI document, one per
// eligible operation.
type Converter interface {
	Convert(ctx context.Context, document []byte) ([]schema.Template, error)
}

// Options configures conversion.
type Options struct {
	// Jurisdiction is stamped on every draft. Verification requires a state,
	// so supply one when the drafts should lint clean as-is.
	Jurisdiction schema.Jurisdiction

	// CaseTypes seeds the drafts' case type list.
	CaseTypes []string

	// Methods lists the HTTP methods treated as form submissions. Defaults
	// to POST, PUT, and PATCH.
	Methods []string

	// IDPrefix prefixes every generated template identifier. Defaults to
	// "draft".
	IDPrefix string

	// ResolveReferences controls whether the converter eagerly resolves and
	// validates $ref pointers. Defaults to true.
	ResolveReferences bool
}

// Option mutates Options during construction.
type Option func(*Options)

// WithJurisdiction stamps the drafts with a jurisdiction.
func WithJurisdiction(jurisdiction schema.Jurisdiction) Option {
	return func(opts *Options) {
		opts.Jurisdiction = jurisdiction
	}
}

// WithCaseTypes seeds the drafts' case types.
func WithCaseTypes(caseTypes ...string) Option {
	return func(opts *Options) {
		opts.CaseTypes = caseTypes
	}
}

// WithMethods overrides which HTTP methods produce drafts.
func WithMethods(methods ...string) Option {
	return func(opts *Options) {
		if len(methods) > 0 {
			opts.Methods = methods
		}
	}
}

// WithIDPrefix overrides the generated template identifier prefix.
func WithIDPrefix(prefix string) Option {
	return func(opts *Options) {
		if prefix != "" {
			opts.IDPrefix = prefix
		}
	}
}

// WithReferenceResolution toggles eager reference resolution.
func WithReferenceResolution(enabled bool) Option {
	return func(opts *Options) {
		opts.ResolveReferences = enabled
	}
}

// NewOptions applies Option functions over the defaults.
func NewOptions(options ...Option) Options {
	cfg := Options{
		Methods:           []string{"POST", "PUT", "PATCH"},
		IDPrefix:          "draft",
		ResolveReferences: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
