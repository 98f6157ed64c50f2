package ingest

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-intake/pkg/schema"
	"github.com/goliatone/go-intake/pkg/validation"
)

// extensionNamespace holds vendor hints the converter honours on properties:
// fieldType, dataSource, autoPopulateFrom, and condition.
const extensionNamespace = "x-intake"

const textareaThreshold = 255

// convertProperties maps an object schema's properties to fields. OpenAPI
// property maps carry no order, so fields come out sorted by name; authors
// reorder drafts by hand.
func convertProperties(src *openapi3.Schema) []schema.Field {
	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]struct{}, len(src.Required))
	for _, name := range src.Required {
		required[name] = struct{}{}
	}

	fields := make([]schema.Field, 0, len(names))
	for _, name := range names {
		ref := src.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := convertProperty(name, ref.Value)
		if !ok {
			continue
		}
		if _, req := required[name]; req {
			field.Required = true
		}
		fields = append(fields, field)
	}
	return fields
}

func convertProperty(name string, src *openapi3.Schema) (schema.Field, bool) {
	field := schema.Field{
		ID:       name,
		Name:     name,
		Label:    labelFromName(name),
		HelpText: strings.TrimSpace(src.Description),
	}
	if title := strings.TrimSpace(src.Title); title != "" {
		field.Label = title
	}
	if src.Default != nil {
		field.DefaultValue = src.Default
	}

	ok := true
	switch {
	case hasType(src, "boolean"):
		field.Type = schema.FieldTypeCheckbox
	case hasType(src, "integer"), hasType(src, "number"):
		field.Type = schema.FieldTypeNumber
		field.Validation = numberValidation(src)
	case hasType(src, "object"):
		children := convertProperties(src)
		if len(children) == 0 {
			return schema.Field{}, false
		}
		field.Type = schema.FieldTypeGroup
		field.Children = children
	case hasType(src, "array"):
		field, ok = convertArray(field, src)
	default:
		// string and untyped properties collect as text variants
		field.Type = stringFieldType(src)
		if len(src.Enum) > 0 {
			field.Type = schema.FieldTypeSelect
			field.Options = enumOptions(src.Enum)
		} else {
			field.Validation = stringValidation(src)
		}
	}
	if !ok {
		return schema.Field{}, false
	}

	applyExtensions(&field, src.Extensions)
	return field, true
}

func convertArray(field schema.Field, src *openapi3.Schema) (schema.Field, bool) {
	items := src.Items
	if items == nil || items.Value == nil {
		return schema.Field{}, false
	}
	value := items.Value

	switch {
	case len(value.Enum) > 0:
		field.Type = schema.FieldTypeMultiSelect
		field.Options = enumOptions(value.Enum)
	case hasType(value, "object"):
		children := convertProperties(value)
		if len(children) == 0 {
			return schema.Field{}, false
		}
		field.Type = schema.FieldTypeRepeating
		field.Children = children
	default:
		// Scalar arrays repeat a single entry field.
		entry, ok := convertProperty(field.ID+"Entry", value)
		if !ok {
			return schema.Field{}, false
		}
		entry.Label = labelFromName(field.ID) + " Entry"
		field.Type = schema.FieldTypeRepeating
		field.Children = []schema.Field{entry}
	}
	return field, true
}

func stringFieldType(src *openapi3.Schema) schema.FieldType {
	switch src.Format {
	case "date":
		return schema.FieldTypeDate
	case "date-time":
		return schema.FieldTypeDateTime
	case "time":
		return schema.FieldTypeTime
	case "binary", "byte":
		return schema.FieldTypeFile
	}
	if src.MaxLength != nil && *src.MaxLength > textareaThreshold {
		return schema.FieldTypeTextarea
	}
	return schema.FieldTypeText
}

func stringValidation(src *openapi3.Schema) *schema.Validation {
	spec := &schema.Validation{}
	touched := false
	if src.Pattern != "" {
		spec.Pattern = src.Pattern
		touched = true
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		spec.MinLength = &value
		touched = true
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		spec.MaxLength = &value
		touched = true
	}
	if src.Format == "email" {
		spec.CustomValidator = validation.ValidatorEmail
		touched = true
	}
	if !touched {
		return nil
	}
	return spec
}

func numberValidation(src *openapi3.Schema) *schema.Validation {
	spec := &schema.Validation{}
	touched := false
	if src.Min != nil {
		value := *src.Min
		spec.Min = &value
		touched = true
	}
	if src.Max != nil {
		value := *src.Max
		spec.Max = &value
		touched = true
	}
	if !touched {
		return nil
	}
	return spec
}

func enumOptions(values []any) []schema.Option {
	out := make([]schema.Option, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		text := fmt.Sprint(value)
		out = append(out, schema.Option{Value: text, Label: labelFromName(text)})
	}
	return out
}

func applyExtensions(field *schema.Field, raw map[string]any) {
	ext, ok := raw[extensionNamespace].(map[string]any)
	if !ok {
		return
	}
	if value, ok := ext["fieldType"].(string); ok && value != "" {
		field.Type = schema.FieldType(value)
	}
	if value, ok := ext["dataSource"].(string); ok && value != "" {
		field.DataSource = value
		field.Options = nil
	}
	if value, ok := ext["autoPopulateFrom"].(string); ok && value != "" {
		field.AutoPopulateFrom = value
	}
	if value, ok := ext["condition"].(map[string]any); ok {
		if cond := conditionFromMap(value); cond != nil {
			field.Condition = cond
		}
	}
}

func conditionFromMap(raw map[string]any) *schema.Condition {
	fieldID, _ := raw["fieldId"].(string)
	operator, _ := raw["operator"].(string)
	if strings.TrimSpace(fieldID) == "" || strings.TrimSpace(operator) == "" {
		return nil
	}
	return &schema.Condition{
		FieldID:  fieldID,
		Operator: schema.Operator(operator),
		Value:    raw["value"],
	}
}

// labelFromName splits camelCase, snake_case, and kebab-case identifiers
// into title-cased words.
func labelFromName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}

	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	prevUpper := false
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == '.' || r == ' ':
			flush()
			prevUpper = false
		case unicode.IsUpper(r):
			if !prevUpper {
				flush()
			}
			current = append(current, unicode.ToLower(r))
			prevUpper = true
		default:
			current = append(current, r)
			prevUpper = false
		}
	}
	flush()

	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func slug(name string) string {
	var out []rune
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
			lastDash = false
		default:
			if !lastDash {
				out = append(out, '-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(string(out), "-")
}
