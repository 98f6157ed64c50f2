// Package completion computes how much of a template the current answers
// cover, for the progress indicator the renderer shows continuously.
package completion

import (
	"math"

	"github.com/goliatone/go-intake/pkg/answers"
	"github.com/goliatone/go-intake/pkg/schema"
	"github.com/goliatone/go-intake/pkg/visibility"
)

// Percent returns the rounded share of answerable fields that hold a value,
// as an integer in [0,100]. Headings and paragraphs are not answerable and
// never count. Fields hidden by their condition count neither as total nor
// as completed: progress reflects only the currently relevant form. A
// template with no answerable fields reports 0, not a misleading 100.
func Percent(sections []schema.Section, values answers.Map) int {
	var total, completed int
	for _, section := range sections {
		countFields(section.Fields, values, &total, &completed)
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

func countFields(fields []schema.Field, values answers.Map, total, completed *int) {
	for _, field := range fields {
		if field.Type.Kind() == schema.KindPresentational {
			continue
		}
		if !visibility.Visible(field.Condition, values) {
			continue
		}

		*total++
		if !values.Empty(field.ID) {
			*completed++
		}

		countFields(field.Children, values, total, completed)
	}
}
