package schema

import "testing"

func TestFieldTypeKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		fieldType FieldType
		want      Kind
	}{
		{FieldTypeText, KindLeaf},
		{FieldTypeTextarea, KindLeaf},
		{FieldTypeNumber, KindLeaf},
		{FieldTypeDate, KindLeaf},
		{FieldTypeSelect, KindLeaf},
		{FieldTypeMultiSelect, KindLeaf},
		{FieldTypeCheckbox, KindLeaf},
		{FieldTypeSignature, KindLeaf},
		{FieldTypeConditional, KindContainer},
		{FieldTypeRepeating, KindContainer},
		{FieldTypeGroup, KindContainer},
		{FieldTypeHeading, KindPresentational},
		{FieldTypeParagraph, KindPresentational},
		{FieldType("hologram"), KindLeaf},
	}

	for _, tc := range cases {
		if got := tc.fieldType.Kind(); got != tc.want {
			t.Errorf("Kind(%q) = %v, want %v", tc.fieldType, got, tc.want)
		}
	}
}

func TestDisplayLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		field Field
		want  string
	}{
		{"label wins", Field{ID: "f1", Name: "f_one", Label: "Field One"}, "Field One"},
		{"name fallback", Field{ID: "f1", Name: "f_one"}, "f_one"},
		{"id fallback", Field{ID: "f1"}, "f1"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.field.DisplayLabel(); got != tc.want {
				t.Fatalf("DisplayLabel() = %q, want %q", got, tc.want)
			}
		})
	}
}
