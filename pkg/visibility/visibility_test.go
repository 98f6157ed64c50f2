package visibility

import (
	"testing"

	"github.com/goliatone/go-intake/pkg/answers"
	"github.com/goliatone/go-intake/pkg/schema"
)

func cond(fieldID string, op schema.Operator, value any) *schema.Condition {
	return &schema.Condition{FieldID: fieldID, Operator: op, Value: value}
}

func TestVisible(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		cond   *schema.Condition
		values answers.Map
		want   bool
	}{
		{"no condition", nil, answers.Map{}, true},
		{
			"unrecognized operator shows the field",
			cond("a", schema.Operator("matchesRegex"), "x"),
			answers.Map{"a": "y"},
			true,
		},

		{"equals string match", cond("a", schema.OperatorEquals, "yes"), answers.Map{"a": "yes"}, true},
		{"equals string mismatch", cond("a", schema.OperatorEquals, "yes"), answers.Map{"a": "no"}, false},
		{"equals bool", cond("a", schema.OperatorEquals, true), answers.Map{"a": true}, true},
		{
			"equals across numeric widths",
			cond("a", schema.OperatorEquals, 5),
			answers.Map{"a": float64(5)},
			true,
		},
		{
			"equals never crosses string and number",
			cond("a", schema.OperatorEquals, 5),
			answers.Map{"a": "5"},
			false,
		},
		{"equals absent answer", cond("a", schema.OperatorEquals, true), answers.Map{}, false},

		{"notEquals mismatch", cond("a", schema.OperatorNotEquals, "yes"), answers.Map{"a": "no"}, true},
		{"notEquals match", cond("a", schema.OperatorNotEquals, "yes"), answers.Map{"a": "yes"}, false},
		{"notEquals absent answer", cond("a", schema.OperatorNotEquals, "yes"), answers.Map{}, true},

		{"contains substring", cond("a", schema.OperatorContains, "claim"), answers.Map{"a": "counterclaim"}, true},
		{"contains miss", cond("a", schema.OperatorContains, "claim"), answers.Map{"a": "answer"}, false},
		{
			"contains stringifies the answer",
			cond("a", schema.OperatorContains, "113"),
			answers.Map{"a": 1138},
			true,
		},
		{
			"contains stringifies the expectation",
			cond("a", schema.OperatorContains, 113),
			answers.Map{"a": "24-CV-1138"},
			true,
		},
		{"contains absent answer", cond("a", schema.OperatorContains, "x"), answers.Map{}, false},

		{"greaterThan", cond("a", schema.OperatorGreaterThan, 5), answers.Map{"a": 10}, true},
		{"greaterThan equal is false", cond("a", schema.OperatorGreaterThan, 5), answers.Map{"a": 5}, false},
		{
			"greaterThan coerces numeric strings",
			cond("a", schema.OperatorGreaterThan, "5"),
			answers.Map{"a": "10"},
			true,
		},
		{
			"greaterThan non numeric answer",
			cond("a", schema.OperatorGreaterThan, 5),
			answers.Map{"a": "plenty"},
			false,
		},
		{
			"greaterThan non numeric expectation",
			cond("a", schema.OperatorGreaterThan, "few"),
			answers.Map{"a": 10},
			false,
		},
		{"greaterThan absent answer", cond("a", schema.OperatorGreaterThan, 5), answers.Map{}, false},

		{"lessThan", cond("a", schema.OperatorLessThan, 5), answers.Map{"a": 3}, true},
		{"lessThan miss", cond("a", schema.OperatorLessThan, 5), answers.Map{"a": 7}, false},
		{"lessThan absent answer", cond("a", schema.OperatorLessThan, 5), answers.Map{}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := Visible(tc.cond, tc.values); got != tc.want {
				t.Fatalf("Visible(%+v, %v) = %v, want %v", tc.cond, tc.values, got, tc.want)
			}
		})
	}
}

func TestVisibleTrimsTargetID(t *testing.T) {
	t.Parallel()

	c := cond("  wantsHelp  ", schema.OperatorEquals, true)
	if !Visible(c, answers.Map{"wantsHelp": true}) {
		t.Fatal("expected padded condition target to resolve")
	}
}
