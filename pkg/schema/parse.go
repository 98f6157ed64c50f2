package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a single template document. JSON is attempted first, then
// YAML, matching how template files are authored and served. The name is
// used in error messages only.
func Parse(name string, data []byte) (*Template, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("schema: document %s is empty", name)
	}

	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		if yamlErr := yaml.Unmarshal(data, &tpl); yamlErr != nil {
			return nil, fmt.Errorf("schema: parse %s: invalid JSON or YAML", name)
		}
	}

	Normalize(&tpl)
	return &tpl, nil
}

// ParseList decodes a template list payload, the shape remote fetches and
// cache entries carry.
func ParseList(name string, data []byte) ([]Template, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("schema: document %s is empty", name)
	}

	var templates []Template
	if err := json.Unmarshal(data, &templates); err != nil {
		if yamlErr := yaml.Unmarshal(data, &templates); yamlErr != nil {
			return nil, fmt.Errorf("schema: parse %s: invalid JSON or YAML", name)
		}
	}

	for i := range templates {
		Normalize(&templates[i])
	}
	return templates, nil
}

// Normalize trims identifiers, sanitizes authored free text, and derives
// HasNewerVersion from the update timestamps. Parse applies it; callers
// constructing templates in code may apply it themselves.
func Normalize(tpl *Template) {
	if tpl == nil {
		return
	}
	tpl.ID = strings.TrimSpace(tpl.ID)
	tpl.Name = strings.TrimSpace(tpl.Name)
	tpl.Description = sanitizeText(tpl.Description)
	tpl.HasNewerVersion = tpl.MCPLastUpdated != nil && tpl.MCPLastUpdated.After(tpl.LastUpdated)

	for i := range tpl.Sections {
		section := &tpl.Sections[i]
		section.ID = strings.TrimSpace(section.ID)
		section.Description = sanitizeText(section.Description)
		normalizeFields(section.Fields)
	}
}

func normalizeFields(fields []Field) {
	for i := range fields {
		field := &fields[i]
		field.ID = strings.TrimSpace(field.ID)
		field.Label = strings.TrimSpace(field.Label)
		field.HelpText = sanitizeText(field.HelpText)
		field.AutoPopulateFrom = strings.TrimSpace(field.AutoPopulateFrom)
		if field.Condition != nil {
			field.Condition.FieldID = strings.TrimSpace(field.Condition.FieldID)
		}
		normalizeFields(field.Children)
	}
}
