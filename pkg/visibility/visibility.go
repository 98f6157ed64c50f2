// Package visibility evaluates field display conditions against the answers
// collected so far. Evaluation is pure; renderers and the validation walk
// call it on every answer change.
package visibility

import (
	"strings"

	"github.com/goliatone/go-intake/pkg/answers"
	"github.com/goliatone/go-intake/pkg/schema"
)

// Visible reports whether a field gated by cond should display. A nil
// condition is always visible. So is a condition naming an operator this
// version does not recognize: a template authored against a newer operator
// set degrades to showing the field, never to hiding inputs.
func Visible(cond *schema.Condition, values answers.Map) bool {
	if cond == nil {
		return true
	}

	actual := values[strings.TrimSpace(cond.FieldID)]

	switch cond.Operator {
	case schema.OperatorEquals:
		return answers.Equal(actual, cond.Value)
	case schema.OperatorNotEquals:
		return !answers.Equal(actual, cond.Value)
	case schema.OperatorContains:
		return strings.Contains(answers.String(actual), answers.String(cond.Value))
	case schema.OperatorGreaterThan:
		left, leftOK := answers.Number(actual)
		right, rightOK := answers.Number(cond.Value)
		return leftOK && rightOK && left > right
	case schema.OperatorLessThan:
		left, leftOK := answers.Number(actual)
		right, rightOK := answers.Number(cond.Value)
		return leftOK && rightOK && left < right
	default:
		return true
	}
}
