package schema

import "time"

// FieldType tags a field with its widget/behaviour class. The set is closed;
// walks classify unknown tags as leaves so they always have a total answer.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
	FieldTypeTime        FieldType = "time"
	FieldTypeDateTime    FieldType = "datetime"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multiselect"
	FieldTypeRadio       FieldType = "radio"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeFile        FieldType = "file"
	FieldTypeSignature   FieldType = "signature"
	FieldTypeConditional FieldType = "conditional"
	FieldTypeRepeating   FieldType = "repeating"
	FieldTypeGroup       FieldType = "group"
	FieldTypeHeading     FieldType = "heading"
	FieldTypeParagraph   FieldType = "paragraph"
)

// Kind groups field types by how the tree walks treat them: leaves hold
// answers, containers hold children, presentational fields hold neither.
type Kind int

const (
	KindLeaf Kind = iota
	KindContainer
	KindPresentational
)

// Kind reports the walk classification for the type tag.
func (t FieldType) Kind() Kind {
	switch t {
	case FieldTypeConditional, FieldTypeGroup, FieldTypeRepeating:
		return KindContainer
	case FieldTypeHeading, FieldTypeParagraph:
		return KindPresentational
	default:
		return KindLeaf
	}
}

// Operator names the comparison a Condition applies between the target
// field's answer and the condition value.
type Operator string

const (
	OperatorEquals      Operator = "equals"
	OperatorNotEquals   Operator = "notEquals"
	OperatorContains    Operator = "contains"
	OperatorGreaterThan Operator = "greaterThan"
	OperatorLessThan    Operator = "lessThan"
)

// Template is the root entity: a versioned legal form scoped to a
// jurisdiction and a set of case types. Templates are superseded, never
// mutated, when a newer version is fetched.
type Template struct {
	ID              string       `json:"id" yaml:"id" validate:"required"`
	Name            string       `json:"name" yaml:"name" validate:"required"`
	Description     string       `json:"description,omitempty" yaml:"description,omitempty"`
	Category        string       `json:"category,omitempty" yaml:"category,omitempty"`
	Jurisdiction    Jurisdiction `json:"jurisdiction" yaml:"jurisdiction"`
	CaseTypes       []string     `json:"caseTypes,omitempty" yaml:"caseTypes,omitempty"`
	Required        bool         `json:"required,omitempty" yaml:"required,omitempty"`
	Version         string       `json:"version,omitempty" yaml:"version,omitempty"`
	LastUpdated     time.Time    `json:"lastUpdated" yaml:"lastUpdated"`
	MCPLastUpdated  *time.Time   `json:"mcpLastUpdated,omitempty" yaml:"mcpLastUpdated,omitempty"`
	HasNewerVersion bool         `json:"hasNewerVersion,omitempty" yaml:"hasNewerVersion,omitempty"`
	Sections        []Section    `json:"sections" yaml:"sections" validate:"dive"`
}

// Jurisdiction scopes a template to a state and, optionally, a county and
// court within it.
type Jurisdiction struct {
	State  string `json:"state" yaml:"state" validate:"required"`
	County string `json:"county,omitempty" yaml:"county,omitempty"`
	Court  string `json:"court,omitempty" yaml:"court,omitempty"`
}

// Section is an ordered grouping of fields within a template.
type Section struct {
	ID          string  `json:"id" yaml:"id" validate:"required"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Order       int     `json:"order" yaml:"order"`
	Repeatable  bool    `json:"repeatable,omitempty" yaml:"repeatable,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields" validate:"dive"`
}

// Field is the recursive schema unit. Children is populated only for the
// container types (conditional, group, repeating); Options is meaningful
// only for choice types; AutoPopulateFrom is a dot-path into an external
// matter record.
type Field struct {
	ID               string      `json:"id" yaml:"id" validate:"required"`
	Name             string      `json:"name,omitempty" yaml:"name,omitempty"`
	Label            string      `json:"label" yaml:"label"`
	Type             FieldType   `json:"type" yaml:"type" validate:"required,oneof=text textarea number date time datetime select multiselect radio checkbox file signature conditional repeating group heading paragraph"`
	Required         bool        `json:"required,omitempty" yaml:"required,omitempty"`
	HelpText         string      `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Placeholder      string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	DefaultValue     any         `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Validation       *Validation `json:"validation,omitempty" yaml:"validation,omitempty"`
	Options          []Option    `json:"options,omitempty" yaml:"options,omitempty" validate:"dive"`
	Condition        *Condition  `json:"condition,omitempty" yaml:"condition,omitempty"`
	Children         []Field     `json:"children,omitempty" yaml:"children,omitempty" validate:"dive"`
	DataSource       string      `json:"dataSource,omitempty" yaml:"dataSource,omitempty"`
	AutoPopulateFrom string      `json:"autoPopulateFrom,omitempty" yaml:"autoPopulateFrom,omitempty"`
}

// DisplayLabel returns the label, falling back to the programmatic name and
// finally the identifier.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	if f.Name != "" {
		return f.Name
	}
	return f.ID
}

// Validation carries the optional per-field constraints. Nil pointers mean
// the constraint is absent, distinguishing "no minimum" from "minimum zero".
type Validation struct {
	Pattern         string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength       *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength       *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min             *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max             *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	CustomValidator string   `json:"customValidator,omitempty" yaml:"customValidator,omitempty"`
	ErrorMessage    string   `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
}

// Condition gates a field's visibility on another field's answer. One
// comparison per field; no boolean composition.
type Condition struct {
	FieldID  string   `json:"fieldId" yaml:"fieldId" validate:"required"`
	Operator Operator `json:"operator" yaml:"operator" validate:"required"`
	Value    any      `json:"value" yaml:"value"`
}

// Option is one choice for select/multiselect/radio/checkbox fields.
type Option struct {
	Value    string `json:"value" yaml:"value" validate:"required"`
	Label    string `json:"label" yaml:"label"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}
