// Package intake assembles the form template engine: schema parsing and
// verification, matter-based population, conditional visibility, validation,
// completion scoring, template caching, and remote fetching. The root package
// re-exports the types most callers need and wires internal implementations
// behind public contracts so applications can depend on a single import.
package intake

import (
	"context"

	internalingest "github.com/goliatone/go-intake/internal/ingest"
	"github.com/goliatone/go-intake/pkg/answers"
	"github.com/goliatone/go-intake/pkg/cache"
	"github.com/goliatone/go-intake/pkg/completion"
	"github.com/goliatone/go-intake/pkg/fetch"
	pkgingest "github.com/goliatone/go-intake/pkg/ingest"
	"github.com/goliatone/go-intake/pkg/matter"
	"github.com/goliatone/go-intake/pkg/populate"
	"github.com/goliatone/go-intake/pkg/schema"
	"github.com/goliatone/go-intake/pkg/session"
	"github.com/goliatone/go-intake/pkg/validation"
	"github.com/goliatone/go-intake/pkg/visibility"
)

// Core schema types, aliased so callers can stay on the root import.
type (
	Template     = schema.Template
	Section      = schema.Section
	Field        = schema.Field
	FieldType    = schema.FieldType
	Condition    = schema.Condition
	Option       = schema.Option
	Jurisdiction = schema.Jurisdiction
	Validation   = schema.Validation
)

// AnswerMap holds collected answers keyed by field identifier.
type AnswerMap = answers.Map

// MatterRecord is the external case data the population walk reads from.
type MatterRecord = matter.Record

// FieldError is one validation failure bound to a field.
type FieldError = validation.FieldError

// Query identifies one cached template set by jurisdiction and case type.
type Query = cache.Query

// Session tracks the mutable answer state of one form being filled out.
type Session = session.Session

// ParseTemplate decodes one template document, JSON first with a YAML
// fallback, then normalizes and sanitizes it. The name appears in errors.
func ParseTemplate(name string, data []byte) (*Template, error) {
	return schema.Parse(name, data)
}

// ParseTemplateList decodes a template array document.
func ParseTemplateList(name string, data []byte) ([]Template, error) {
	return schema.ParseList(name, data)
}

// VerifyTemplate checks structural soundness: required identifiers, unique
// field ids, container arity, and resolvable condition targets.
func VerifyTemplate(tpl *Template) error {
	return schema.Verify(tpl)
}

// BuiltinTemplates returns the form templates bundled with the module.
func BuiltinTemplates() ([]Template, error) {
	return schema.BuiltinTemplates()
}

// Populate seeds an answer map for the template from a matter record. Every
// field is considered regardless of visibility; autoPopulateFrom paths win
// over declared defaults.
func Populate(tpl *Template, record MatterRecord) AnswerMap {
	if tpl == nil {
		return answers.Map{}
	}
	return populate.FromRecord(tpl.Sections, record)
}

// Visible reports whether a field currently displays given the answers.
func Visible(field Field, values AnswerMap) bool {
	return visibility.Visible(field.Condition, values)
}

// Validate runs the full rule walk over the template and returns every
// failure in field order.
func Validate(tpl *Template, values AnswerMap) []FieldError {
	if tpl == nil {
		return nil
	}
	return validation.Validate(tpl.Sections, values)
}

// ValidateWithRemote merges local validation with a remote validator's
// verdict. Local errors win; remote failures degrade to the local result.
func ValidateWithRemote(ctx context.Context, tpl *Template, values AnswerMap, remote validation.RemoteValidator) map[string]string {
	return validation.ValidateWithRemote(ctx, tpl, values, remote)
}

// Completion scores the answered share of visible fields as 0-100.
func Completion(tpl *Template, values AnswerMap) int {
	if tpl == nil {
		return 0
	}
	return completion.Percent(tpl.Sections, values)
}

// NewSession binds a template to fresh answer state. Use session options to
// seed answers from a matter record or a saved snapshot.
func NewSession(tpl *Template, opts ...session.Option) (*Session, error) {
	return session.New(tpl, opts...)
}

// NewService builds the template fetch service: remote client, singleflight
// deduplication, verification of fetched templates, and optional caching.
func NewService(client fetch.Client, opts ...fetch.ServiceOption) *fetch.Service {
	return fetch.NewService(client, opts...)
}

// OpenCache opens a badger-backed template cache at cfg.Path.
func OpenCache(cfg cache.Config, opts ...cache.Option) (*cache.Store, error) {
	return cache.Open(cfg, opts...)
}

// NewConverter constructs an OpenAPI draft converter backed by the internal
// implementation, keeping the concrete type hidden from consumers.
func NewConverter(options ...pkgingest.Option) pkgingest.Converter {
	cfg := pkgingest.NewOptions(options...)
	return internalingest.New(cfg)
}
