package populate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/answers"
	"github.com/goliatone/go-intake/pkg/matter"
	"github.com/goliatone/go-intake/pkg/schema"
)

func TestFromRecord(t *testing.T) {
	t.Parallel()

	sections := []schema.Section{
		{
			ID: "main",
			Fields: []schema.Field{
				{ID: "clientName", Type: schema.FieldTypeText, AutoPopulateFrom: "client.name"},
				{ID: "clientEmail", Type: schema.FieldTypeText, AutoPopulateFrom: "client.contact.email"},
				{ID: "clientFax", Type: schema.FieldTypeText, AutoPopulateFrom: "client.contact.fax", DefaultValue: "none"},
				{ID: "state", Type: schema.FieldTypeSelect, DefaultValue: "CA"},
				{ID: "notes", Type: schema.FieldTypeTextarea},
			},
		},
	}

	record := matter.Record{
		"client": map[string]any{
			"name": "Jane Doe",
			"contact": map[string]any{
				"email": "jane@example.com",
			},
		},
	}

	got := FromRecord(sections, record)

	want := answers.Map{
		"clientName":  "Jane Doe",
		"clientEmail": "jane@example.com",
		"clientFax":   "none",
		"state":       "CA",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}
	if _, exists := got["notes"]; exists {
		t.Fatal("field without source or default must stay unset")
	}
}

func TestFromRecordIgnoresVisibility(t *testing.T) {
	t.Parallel()

	// The group below is hidden until wantsHelp is answered true, but its
	// children still receive defaults so they are ready when revealed.
	sections := []schema.Section{
		{
			ID: "main",
			Fields: []schema.Field{
				{ID: "wantsHelp", Type: schema.FieldTypeCheckbox, DefaultValue: false},
				{
					ID:        "helpDetails",
					Type:      schema.FieldTypeGroup,
					Condition: &schema.Condition{FieldID: "wantsHelp", Operator: schema.OperatorEquals, Value: true},
					Children: []schema.Field{
						{ID: "helpKind", Type: schema.FieldTypeSelect, DefaultValue: "legal-aid"},
					},
				},
			},
		},
	}

	got := FromRecord(sections, matter.Record{})

	if got["wantsHelp"] != false {
		t.Fatalf("wantsHelp = %v, want false", got["wantsHelp"])
	}
	if got["helpKind"] != "legal-aid" {
		t.Fatalf("hidden child default not seeded: %v", got["helpKind"])
	}
	if _, exists := got["helpDetails"]; exists {
		t.Fatal("container field must not carry a value")
	}
}

func TestFromRecordContainerDefaultNotSeeded(t *testing.T) {
	t.Parallel()

	sections := []schema.Section{
		{
			ID: "main",
			Fields: []schema.Field{
				{
					ID:           "meta",
					Type:         schema.FieldTypeGroup,
					DefaultValue: "ignored",
					Children: []schema.Field{
						{ID: "inner", Type: schema.FieldTypeText},
					},
				},
			},
		},
	}

	got := FromRecord(sections, matter.Record{})
	if len(got) != 0 {
		t.Fatalf("expected no seeded answers, got %v", got)
	}
}

func TestFromRecordFirstWriterWins(t *testing.T) {
	t.Parallel()

	// Duplicate identifiers are rejected at load time, but the walk itself
	// must still be deterministic if one slips through.
	sections := []schema.Section{
		{ID: "one", Fields: []schema.Field{{ID: "shared", Type: schema.FieldTypeText, DefaultValue: "first"}}},
		{ID: "two", Fields: []schema.Field{{ID: "shared", Type: schema.FieldTypeText, DefaultValue: "second"}}},
	}

	got := FromRecord(sections, matter.Record{})
	if got["shared"] != "first" {
		t.Fatalf("shared = %v, want %q", got["shared"], "first")
	}
}

func TestFromRecordUnresolvedPathFallsBack(t *testing.T) {
	t.Parallel()

	sections := []schema.Section{
		{
			ID: "main",
			Fields: []schema.Field{
				{ID: "county", Type: schema.FieldTypeText, AutoPopulateFrom: "venue.county", DefaultValue: "Kings"},
			},
		},
	}

	got := FromRecord(sections, matter.Record{"venue": map[string]any{}})
	if got["county"] != "Kings" {
		t.Fatalf("county = %v, want default", got["county"])
	}
}

func TestFromRecordResolvedNilStillAssigns(t *testing.T) {
	t.Parallel()

	// A record key that is present but null is a resolved value, so the
	// default does not apply.
	sections := []schema.Section{
		{
			ID: "main",
			Fields: []schema.Field{
				{ID: "judge", Type: schema.FieldTypeText, AutoPopulateFrom: "court.judge", DefaultValue: "unassigned"},
			},
		},
	}

	got := FromRecord(sections, matter.Record{"court": map[string]any{"judge": nil}})
	value, exists := got["judge"]
	if !exists || value != nil {
		t.Fatalf("judge = (%v, %v), want explicit nil", value, exists)
	}
}
