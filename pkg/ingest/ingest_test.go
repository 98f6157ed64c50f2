package ingest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/schema"
)

func TestNewOptionsDefaults(t *testing.T) {
	t.Parallel()

	opts := NewOptions()
	if diff := cmp.Diff([]string{"POST", "PUT", "PATCH"}, opts.Methods); diff != "" {
		t.Fatalf("Methods mismatch (-want +got):\n%s", diff)
	}
	if opts.IDPrefix != "draft" {
		t.Fatalf("IDPrefix = %q, want draft", opts.IDPrefix)
	}
	if !opts.ResolveReferences {
		t.Fatal("ResolveReferences should default to true")
	}
}

func TestNewOptionsOverrides(t *testing.T) {
	t.Parallel()

	opts := NewOptions(
		WithJurisdiction(schema.Jurisdiction{State: "NY", County: "Kings"}),
		WithCaseTypes("eviction"),
		WithMethods("POST"),
		WithIDPrefix("court"),
		WithReferenceResolution(false),
		nil,
	)

	if opts.Jurisdiction.State != "NY" || opts.Jurisdiction.County != "Kings" {
		t.Fatalf("Jurisdiction = %+v", opts.Jurisdiction)
	}
	if diff := cmp.Diff([]string{"eviction"}, opts.CaseTypes); diff != "" {
		t.Fatalf("CaseTypes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"POST"}, opts.Methods); diff != "" {
		t.Fatalf("Methods mismatch (-want +got):\n%s", diff)
	}
	if opts.IDPrefix != "court" {
		t.Fatalf("IDPrefix = %q", opts.IDPrefix)
	}
	if opts.ResolveReferences {
		t.Fatal("ResolveReferences should be disabled")
	}
}

func TestNewOptionsIgnoresEmptyOverrides(t *testing.T) {
	t.Parallel()

	opts := NewOptions(WithMethods(), WithIDPrefix(""))
	if len(opts.Methods) != 3 {
		t.Fatalf("Methods = %v, want defaults preserved", opts.Methods)
	}
	if opts.IDPrefix != "draft" {
		t.Fatalf("IDPrefix = %q, want default preserved", opts.IDPrefix)
	}
}
