package schema

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	verifierOnce sync.Once
	verifier     *validator.Validate
)

func structVerifier() *validator.Validate {
	verifierOnce.Do(func() {
		verifier = validator.New()
	})
	return verifier
}

// Verify checks a parsed template against the invariants the evaluation
// walks assume: identifiers present and unique across the whole tree,
// children only (and always) under container fields, conditions targeting
// fields that exist. Condition operators are deliberately not restricted
// here; an unrecognized operator evaluates visible rather than hiding data.
//
// Verify is a load-time gate. The walks themselves tolerate anything.
func Verify(tpl *Template) error {
	if tpl == nil {
		return errors.New("schema: template is nil")
	}
	if err := structVerifier().Struct(tpl); err != nil {
		return fmt.Errorf("schema: template %q: %w", tpl.ID, err)
	}

	seen := make(map[string]string)
	for _, section := range tpl.Sections {
		if err := verifyFields(tpl.ID, section.ID, section.Fields, seen); err != nil {
			return err
		}
	}
	for _, section := range tpl.Sections {
		if err := verifyConditionTargets(tpl.ID, section.Fields, seen); err != nil {
			return err
		}
	}
	return nil
}

func verifyFields(templateID, sectionID string, fields []Field, seen map[string]string) error {
	for _, field := range fields {
		id := strings.TrimSpace(field.ID)
		if id == "" {
			return fmt.Errorf("schema: template %q section %q defines a field with an empty id", templateID, sectionID)
		}
		if prev, exists := seen[id]; exists {
			return fmt.Errorf("schema: template %q: duplicate field id %q (sections %q and %q)", templateID, id, prev, sectionID)
		}
		seen[id] = sectionID

		container := field.Type.Kind() == KindContainer
		if container && len(field.Children) == 0 {
			return fmt.Errorf("schema: template %q field %q: %s field requires children", templateID, id, field.Type)
		}
		if !container && len(field.Children) > 0 {
			return fmt.Errorf("schema: template %q field %q: %s field must not have children", templateID, id, field.Type)
		}

		if err := verifyFields(templateID, sectionID, field.Children, seen); err != nil {
			return err
		}
	}
	return nil
}

func verifyConditionTargets(templateID string, fields []Field, ids map[string]string) error {
	for _, field := range fields {
		if field.Condition != nil {
			target := strings.TrimSpace(field.Condition.FieldID)
			if _, ok := ids[target]; !ok {
				return fmt.Errorf("schema: template %q field %q: condition references unknown field %q", templateID, field.ID, target)
			}
		}
		if err := verifyConditionTargets(templateID, field.Children, ids); err != nil {
			return err
		}
	}
	return nil
}
