// Package ingest implements the pkg/ingest contracts with kin-openapi.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	pkgingest "github.com/goliatone/go-intake/pkg/ingest"
	"github.com/goliatone/go-intake/pkg/schema"
)

// Converter implements pkgingest.Converter using kin-openapi.
type Converter struct {
	options pkgingest.Options
	now     func() time.Time
}

// Ensure the implementation satisfies the public interface.
var _ pkgingest.Converter = (*Converter)(nil)

// New constructs a Converter with the given options.
func New(options pkgingest.Options) *Converter {
	return &Converter{options: options, now: time.Now}
}

// Convert loads the document and produces one draft template per eligible
// operation, sorted by template identifier.
func (c *Converter) Convert(ctx context.Context, document []byte) ([]schema.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(document) == 0 {
		return nil, errors.New("ingest: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: c.options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("ingest: load document: %w", err)
	}
	if c.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("ingest: validate document: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("ingest: document does not contain any paths")
	}

	var templates []schema.Template
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range operationsByMethod(item) {
			if operation == nil || !c.methodEligible(method) {
				continue
			}
			tpl, ok := c.convertOperation(method, path, operation)
			if !ok {
				continue
			}
			templates = append(templates, tpl)
		}
	}
	if len(templates) == 0 {
		return nil, errors.New("ingest: no form operations found")
	}

	sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })
	return templates, nil
}

func (c *Converter) methodEligible(method string) bool {
	for _, candidate := range c.options.Methods {
		if strings.EqualFold(candidate, method) {
			return true
		}
	}
	return false
}

func (c *Converter) convertOperation(method, path string, operation *openapi3.Operation) (schema.Template, bool) {
	body := requestSchema(operation.RequestBody)
	if body == nil || body.Value == nil {
		return schema.Template{}, false
	}
	if !hasType(body.Value, "object") || len(body.Value.Properties) == 0 {
		return schema.Template{}, false
	}

	fields := convertProperties(body.Value)
	if len(fields) == 0 {
		return schema.Template{}, false
	}

	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + strings.ReplaceAll(path, "/", "-")
	}

	name := strings.TrimSpace(operation.Summary)
	if name == "" {
		name = labelFromName(opID)
	}

	tpl := schema.Template{
		ID:           c.options.IDPrefix + "-" + slug(opID),
		Name:         name,
		Description:  strings.TrimSpace(operation.Description),
		Jurisdiction: c.options.Jurisdiction,
		CaseTypes:    append([]string(nil), c.options.CaseTypes...),
		Version:      "draft",
		LastUpdated:  c.now().UTC(),
		Sections: []schema.Section{{
			ID:     "details",
			Title:  name,
			Order:  1,
			Fields: fields,
		}},
	}
	return tpl, true
}

func operationsByMethod(item *openapi3.PathItem) map[string]*openapi3.Operation {
	return map[string]*openapi3.Operation{
		"GET":     item.Get,
		"PUT":     item.Put,
		"POST":    item.Post,
		"DELETE":  item.Delete,
		"PATCH":   item.Patch,
		"HEAD":    item.Head,
		"OPTIONS": item.Options,
		"TRACE":   item.Trace,
	}
}

func requestSchema(requestBody *openapi3.RequestBodyRef) *openapi3.SchemaRef {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok {
			return mt.Schema
		}
	}
	for _, mt := range content {
		return mt.Schema
	}
	return nil
}

func hasType(src *openapi3.Schema, want string) bool {
	if src == nil || src.Type == nil {
		return false
	}
	for _, t := range src.Type.Slice() {
		if t == want {
			return true
		}
	}
	return false
}
