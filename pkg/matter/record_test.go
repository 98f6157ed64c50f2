package matter

import "testing"

func TestResolve(t *testing.T) {
	t.Parallel()

	record := Record{
		"client": map[string]any{
			"name": "Ada Soto",
			"contact": map[string]any{
				"email": "ada@example.com",
				"phone": "555-0100",
			},
			"tags": map[string]string{
				"tier": "pro-bono",
			},
		},
		"case.number": "24-CV-1138",
		"filedYear":   2024,
	}

	cases := []struct {
		name  string
		path  string
		want  any
		found bool
	}{
		{"top level", "filedYear", 2024, true},
		{"nested", "client.name", "Ada Soto", true},
		{"deeply nested", "client.contact.email", "ada@example.com", true},
		{"string map leaf", "client.tags.tier", "pro-bono", true},
		{"literal dotted key wins", "case.number", "24-CV-1138", true},
		{"intermediate object", "client.contact", record["client"].(map[string]any)["contact"], true},
		{"missing leaf", "client.contact.fax", nil, false},
		{"missing root", "opponent.name", nil, false},
		{"descend through scalar", "client.name.first", nil, false},
		{"empty path", "", nil, false},
		{"padded path", "  client.name  ", "Ada Soto", true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, found := record.Resolve(tc.path)
			if found != tc.found {
				t.Fatalf("Resolve(%q) found = %v, want %v", tc.path, found, tc.found)
			}
			if !tc.found {
				return
			}
			switch want := tc.want.(type) {
			case map[string]any:
				gotMap, ok := got.(map[string]any)
				if !ok || len(gotMap) != len(want) {
					t.Fatalf("Resolve(%q) = %v, want %v", tc.path, got, want)
				}
			default:
				if got != tc.want {
					t.Fatalf("Resolve(%q) = %v, want %v", tc.path, got, tc.want)
				}
			}
		})
	}
}

func TestResolveNilRecord(t *testing.T) {
	t.Parallel()

	var record Record
	if _, found := record.Resolve("client.name"); found {
		t.Fatal("expected nil record to resolve nothing")
	}
}

func TestResolveNestedRecordValue(t *testing.T) {
	t.Parallel()

	record := Record{
		"client": Record{"name": "Ada Soto"},
	}
	got, found := record.Resolve("client.name")
	if !found || got != "Ada Soto" {
		t.Fatalf("Resolve through nested Record = (%v, %v)", got, found)
	}
}
