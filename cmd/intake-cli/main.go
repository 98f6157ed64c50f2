package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-intake/pkg/answers"
	"github.com/goliatone/go-intake/pkg/fetch"
	"github.com/goliatone/go-intake/pkg/interview"
	"github.com/goliatone/go-intake/pkg/matter"
	"github.com/goliatone/go-intake/pkg/session"
)

func main() {
	templateSrc := flag.String("template", "", "template document path or URL")
	matterPath := flag.String("matter", "", "matter record JSON used to pre-populate answers")
	answersPath := flag.String("answers", "", "answers JSON overlaid on populated values")
	mode := flag.String("mode", "validate", "validate, populate, completion, or interview")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*templateSrc)
	if src == nil {
		log.Fatalf("invalid template source: %q", *templateSrc)
	}

	loader := fetch.NewLoader(fetch.WithHTTPFallback(30 * time.Second))
	tpl, err := loader.Load(ctx, src)
	if err != nil {
		log.Fatalf("Failed to load template: %v", err)
	}

	var opts []session.Option
	if *matterPath != "" {
		var record matter.Record
		if err := readJSONFile(*matterPath, &record); err != nil {
			log.Fatalf("Failed to read matter record: %v", err)
		}
		opts = append(opts, session.WithMatter(record))
	}
	if *answersPath != "" {
		var values answers.Map
		if err := readJSONFile(*answersPath, &values); err != nil {
			log.Fatalf("Failed to read answers: %v", err)
		}
		opts = append(opts, session.WithAnswers(values))
	}

	sess, err := session.New(tpl, opts...)
	if err != nil {
		log.Fatalf("Failed to open session: %v", err)
	}

	switch *mode {
	case "interview":
		runner, err := interview.New()
		if err != nil {
			log.Fatalf("Failed to start interview: %v", err)
		}
		if err := runner.Run(ctx, sess); err != nil {
			log.Fatalf("Interview failed: %v", err)
		}
		if err := emitJSON(sess.Snapshot(), *output); err != nil {
			log.Fatalf("Failed to write answers: %v", err)
		}
		exitOnValidationErrors(sess)
	case "populate":
		if err := emitJSON(sess.Snapshot(), *output); err != nil {
			log.Fatalf("Failed to write answers: %v", err)
		}
	case "completion":
		if err := emit(fmt.Sprintf("%d%%\n", sess.Completion()), *output); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
	case "validate":
		exitOnValidationErrors(sess)
		fmt.Printf("%s is valid (%d%% complete)\n", tpl.ID, sess.Completion())
	default:
		log.Fatalf("unknown mode: %q", *mode)
	}
}

func exitOnValidationErrors(sess *session.Session) {
	errs := sess.Validate()
	if len(errs) == 0 {
		return
	}
	for _, fieldErr := range errs {
		fmt.Fprintf(os.Stderr, "%s: %s\n", fieldErr.FieldID, fieldErr.Message)
	}
	os.Exit(1)
}

func emitJSON(value any, output string) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return emit(string(data)+"\n", output)
}

func emit(text, output string) error {
	if output != "" {
		if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
			return err
		}
		fmt.Printf("Output written to %s\n", output)
		return nil
	}
	fmt.Print(text)
	return nil
}

func readJSONFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func parseSource(raw string) fetch.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return fetch.SourceFromURL(path)
	}
	return fetch.SourceFromFile(path)
}
