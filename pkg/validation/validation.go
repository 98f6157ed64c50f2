// Package validation walks a template's sections applying the per-field
// constraints to the current answers. It runs locally and synchronously;
// authoritative server-side validation is merged in through
// ValidateWithRemote.
package validation

import (
	"github.com/goliatone/go-intake/pkg/answers"
	"github.com/goliatone/go-intake/pkg/schema"
	"github.com/goliatone/go-intake/pkg/visibility"
)

// Severity labels for FieldError. Local rules only produce errors; warnings
// are reserved for advisory results merged from elsewhere.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// FieldError is one user-facing validation failure. A field can appear more
// than once, one entry per violated rule, in document order.
type FieldError struct {
	FieldID  string `json:"fieldId"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// Validate checks every visible field against its constraints and returns
// the failures in document order. Hidden fields, and everything beneath a
// hidden container, are never checked. The answers map is read, never
// written. Custom validator names resolve against the package registry.
func Validate(sections []schema.Section, values answers.Map) []FieldError {
	return ValidateWithRegistry(DefaultRegistry, sections, values)
}

// ValidateWithRegistry is Validate with an explicit custom-validator
// registry, for callers that scope validators per tenant or per test.
func ValidateWithRegistry(reg *Registry, sections []schema.Section, values answers.Map) []FieldError {
	var errs []FieldError
	for _, section := range sections {
		errs = validateFields(reg, section.Fields, values, errs)
	}
	return errs
}

func validateFields(reg *Registry, fields []schema.Field, values answers.Map, errs []FieldError) []FieldError {
	for _, field := range fields {
		if field.Type.Kind() == schema.KindPresentational {
			continue
		}
		if field.Condition != nil && !visibility.Visible(field.Condition, values) {
			continue
		}

		empty := values.Empty(field.ID)
		if field.Required && empty {
			errs = append(errs, requiredError(field))
			// A missing required field aborts its subtree.
			continue
		}
		if !empty {
			errs = applyRules(reg, field, values[field.ID], errs)
		}

		if field.Type.Kind() == schema.KindContainer {
			errs = validateFields(reg, field.Children, values, errs)
		}
	}
	return errs
}

// Index flattens a result list into the per-field map most consumers key
// their display on. The last message for a field wins.
func Index(errs []FieldError) map[string]string {
	indexed := make(map[string]string, len(errs))
	for _, e := range errs {
		indexed[e.FieldID] = e.Message
	}
	return indexed
}
