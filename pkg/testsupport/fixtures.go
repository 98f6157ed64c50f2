// Package testsupport holds fixture loaders and golden-file helpers shared by
// tests across the module.
package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/answers"
	"github.com/goliatone/go-intake/pkg/matter"
	"github.com/goliatone/go-intake/pkg/schema"
)

// LoadTemplate reads a fixture and parses it into a Template. Testing helpers
// fail the test on error to keep fixture-driven tests concise.
func LoadTemplate(t *testing.T, path string) schema.Template {
	t.Helper()

	tpl, err := LoadTemplateFromPath(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	return tpl
}

// LoadTemplateFromPath parses a template fixture without requiring testing.T,
// for callers wiring fixtures in setup functions.
func LoadTemplateFromPath(path string) (schema.Template, error) {
	if path == "" {
		return schema.Template{}, errors.New("testsupport: template path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Template{}, fmt.Errorf("testsupport: read template: %w", err)
	}
	tpl, err := schema.Parse(path, data)
	if err != nil {
		return schema.Template{}, fmt.Errorf("testsupport: parse template: %w", err)
	}
	return *tpl, nil
}

// LoadAnswers reads a JSON fixture into an answer map.
func LoadAnswers(t *testing.T, path string) answers.Map {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load answers: %v", err)
	}
	var out answers.Map
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal answers: %v", err)
	}
	return out
}

// LoadMatter reads a JSON fixture into a matter record.
func LoadMatter(t *testing.T, path string) matter.Record {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load matter: %v", err)
	}
	var out matter.Record
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal matter: %v", err)
	}
	return out
}

// WriteGolden writes a value as indented JSON to a golden file when
// UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (the test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
