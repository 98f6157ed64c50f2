package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	intake "github.com/goliatone/go-intake"
	"github.com/goliatone/go-intake/pkg/ingest"
	"github.com/goliatone/go-intake/pkg/schema"
)

func main() {
	source := flag.String("source", "", "OpenAPI document path")
	state := flag.String("state", "", "jurisdiction state stamped on the drafts")
	county := flag.String("county", "", "jurisdiction county stamped on the drafts")
	caseTypes := flag.String("case-types", "", "comma separated case types")
	prefix := flag.String("prefix", "draft", "draft template id prefix")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	if *source == "" {
		log.Fatalf("missing -source: provide an OpenAPI document path")
	}

	raw, err := os.ReadFile(*source)
	if err != nil {
		log.Fatalf("Failed to read document: %v", err)
	}

	opts := []ingest.Option{
		ingest.WithIDPrefix(*prefix),
	}
	if *state != "" {
		opts = append(opts, ingest.WithJurisdiction(schema.Jurisdiction{State: *state, County: *county}))
	}
	if list := splitList(*caseTypes); len(list) > 0 {
		opts = append(opts, ingest.WithCaseTypes(list...))
	}

	conv := intake.NewConverter(opts...)
	drafts, err := conv.Convert(context.Background(), raw)
	if err != nil {
		log.Fatalf("Failed to convert document: %v", err)
	}

	data, err := json.MarshalIndent(drafts, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode drafts: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, data, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("%d draft(s) written to %s\n", len(drafts), *output)
	} else {
		fmt.Println(string(data))
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
