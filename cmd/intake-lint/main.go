package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-intake/pkg/schema"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint intake template documents for structural violations.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{
			"examples/fixtures/eviction_response.json",
			"examples/fixtures/name_change.yaml",
		}
	}

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

// lintFile parses a template document, single or list, and verifies every
// template in it. Read failures abort the run; parse and verify failures
// become findings.
func lintFile(path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	templates, parseErr := parseAny(path, raw)
	if parseErr != nil {
		return []violation{{file: path, location: "document", message: parseErr.Error()}}, nil
	}

	var result []violation
	for i := range templates {
		if err := schema.Verify(&templates[i]); err != nil {
			result = append(result, violation{
				file:     path,
				location: locationFor(templates[i], i),
				message:  err.Error(),
			})
		}
	}
	return result, nil
}

func parseAny(name string, data []byte) ([]schema.Template, error) {
	tpl, err := schema.Parse(name, data)
	if err == nil {
		return []schema.Template{*tpl}, nil
	}
	list, listErr := schema.ParseList(name, data)
	if listErr == nil {
		return list, nil
	}
	return nil, err
}

func locationFor(tpl schema.Template, index int) string {
	if tpl.ID != "" {
		return "template " + tpl.ID
	}
	return fmt.Sprintf("template[%d]", index)
}
