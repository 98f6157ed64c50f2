package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/goliatone/go-intake/pkg/answers"
	"github.com/goliatone/go-intake/pkg/schema"
)

// applyRules checks a non-empty answer against the field's constraint spec,
// appending one error per violated rule: pattern, then minLength, maxLength,
// min, max, then the named custom validator. Rules that do not apply to the
// value's shape are skipped rather than failed.
func applyRules(reg *Registry, field schema.Field, value any, errs []FieldError) []FieldError {
	spec := field.Validation
	if spec == nil {
		return errs
	}

	if spec.Pattern != "" {
		re, err := regexp.Compile(spec.Pattern)
		if err == nil && !re.MatchString(answers.String(value)) {
			errs = append(errs, ruleError(field, fmt.Sprintf("%s is not in the expected format", field.DisplayLabel())))
		}
	}

	if length, ok := lengthOf(value); ok {
		if spec.MinLength != nil && length < *spec.MinLength {
			errs = append(errs, ruleError(field, fmt.Sprintf("%s must be at least %d characters", field.DisplayLabel(), *spec.MinLength)))
		}
		if spec.MaxLength != nil && length > *spec.MaxLength {
			errs = append(errs, ruleError(field, fmt.Sprintf("%s must be at most %d characters", field.DisplayLabel(), *spec.MaxLength)))
		}
	}

	if number, ok := answers.Number(value); ok {
		if spec.Min != nil && number < *spec.Min {
			errs = append(errs, ruleError(field, fmt.Sprintf("%s must be at least %v", field.DisplayLabel(), *spec.Min)))
		}
		if spec.Max != nil && number > *spec.Max {
			errs = append(errs, ruleError(field, fmt.Sprintf("%s must be at most %v", field.DisplayLabel(), *spec.Max)))
		}
	}

	if spec.CustomValidator != "" && reg != nil {
		if fn, ok := reg.Lookup(spec.CustomValidator); ok {
			if message := fn(value); message != "" {
				errs = append(errs, ruleError(field, message))
			}
		}
	}

	return errs
}

func requiredError(field schema.Field) FieldError {
	message := fmt.Sprintf("%s is required", field.DisplayLabel())
	if field.Validation != nil && field.Validation.ErrorMessage != "" {
		message = field.Validation.ErrorMessage
	}
	return FieldError{FieldID: field.ID, Message: message, Severity: SeverityError}
}

func ruleError(field schema.Field, generated string) FieldError {
	message := generated
	if field.Validation != nil && field.Validation.ErrorMessage != "" {
		message = field.Validation.ErrorMessage
	}
	return FieldError{FieldID: field.ID, Message: message, Severity: SeverityError}
}

// lengthOf measures values that have a length: element count for slices,
// rune count for strings. Other shapes have no length, so length rules do
// not apply to them.
func lengthOf(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		return utf8.RuneCountInString(v), true
	case []string:
		return len(v), true
	case []any:
		return len(v), true
	default:
		return 0, false
	}
}
