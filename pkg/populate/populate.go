// Package populate derives the initial answer set for a template from the
// matter record the form is opened against.
package populate

import (
	"github.com/goliatone/go-intake/pkg/answers"
	"github.com/goliatone/go-intake/pkg/matter"
	"github.com/goliatone/go-intake/pkg/schema"
)

// FromRecord walks every field in document order and seeds answers from the
// field's auto-populate path, falling back to its declared default. The walk
// ignores visibility: a hidden field may still need its value when a later
// answer reveals it, so recursion never consults conditions. Container nodes
// carry no value of their own; only their descendants are seeded. The first
// writer of an identifier wins.
func FromRecord(sections []schema.Section, record matter.Record) answers.Map {
	seeded := make(answers.Map)
	for _, section := range sections {
		seedFields(section.Fields, record, seeded)
	}
	return seeded
}

func seedFields(fields []schema.Field, record matter.Record, seeded answers.Map) {
	for _, field := range fields {
		if field.Type.Kind() != schema.KindContainer {
			seedValue(field, record, seeded)
		}
		seedFields(field.Children, record, seeded)
	}
}

func seedValue(field schema.Field, record matter.Record, seeded answers.Map) {
	if _, exists := seeded[field.ID]; exists {
		return
	}
	if field.AutoPopulateFrom != "" {
		if value, ok := record.Resolve(field.AutoPopulateFrom); ok {
			seeded[field.ID] = value
			return
		}
	}
	if field.DefaultValue != nil {
		seeded[field.ID] = field.DefaultValue
	}
}
