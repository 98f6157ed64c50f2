package schema

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed templates/*.json
var embeddedTemplates embed.FS

// BuiltinTemplates parses and verifies the bundled starter templates. They
// back demos, tests, and first-run flows before a remote fetch succeeds.
func BuiltinTemplates() ([]Template, error) {
	entries, err := fs.ReadDir(embeddedTemplates, "templates")
	if err != nil {
		// The embed directive guarantees the directory exists, so panic is
		// acceptable here.
		panic(err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	templates := make([]Template, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(embeddedTemplates, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("schema: read builtin template %s: %w", name, err)
		}
		tpl, err := Parse(name, data)
		if err != nil {
			return nil, err
		}
		if err := Verify(tpl); err != nil {
			return nil, err
		}
		templates = append(templates, *tpl)
	}
	return templates, nil
}
