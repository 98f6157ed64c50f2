package schema

import "testing"

func TestBuiltinTemplates(t *testing.T) {
	t.Parallel()

	templates, err := BuiltinTemplates()
	if err != nil {
		t.Fatalf("BuiltinTemplates returned error: %v", err)
	}
	if len(templates) == 0 {
		t.Fatal("expected at least one bundled template")
	}

	seen := make(map[string]bool, len(templates))
	for _, tpl := range templates {
		if tpl.ID == "" {
			t.Fatalf("bundled template %q has no id", tpl.Name)
		}
		if seen[tpl.ID] {
			t.Fatalf("bundled template id %q appears twice", tpl.ID)
		}
		seen[tpl.ID] = true
		if tpl.Jurisdiction.State == "" {
			t.Fatalf("bundled template %q has no jurisdiction state", tpl.ID)
		}
	}

	if !seen["ca-small-claims-sc100"] {
		t.Fatal("expected the small claims starter template to be bundled")
	}
}
