// Package interview drives a terminal question flow over a form session.
// Fields are prompted in template order and visibility is re-evaluated after
// every answer, so conditional branches open up as soon as the answers they
// depend on are given.
package interview

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-intake/pkg/answers"
	"github.com/goliatone/go-intake/pkg/datasource"
	"github.com/goliatone/go-intake/pkg/schema"
	"github.com/goliatone/go-intake/pkg/session"
	"github.com/goliatone/go-intake/pkg/validation"
)

const defaultMaxRows = 20

// Runner walks a template's sections, prompting for each visible input and
// recording confirmed answers on the session.
type Runner struct {
	driver  PromptDriver
	reg     *validation.Registry
	sources *datasource.Registry
	maxRows int
}

// New constructs a runner with defaults: the survey driver, the shared
// validator registry, and the default data source registry.
func New(options ...Option) (*Runner, error) {
	driver, err := newSurveyDriver()
	if err != nil {
		return nil, err
	}

	r := &Runner{
		driver:  driver,
		reg:     validation.DefaultRegistry,
		sources: datasource.Default,
		maxRows: defaultMaxRows,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	return r, nil
}

// Run prompts through every visible field of the session's template. Answers
// land on sess as the user confirms them, so an aborted run keeps everything
// collected up to that point.
func (r *Runner) Run(ctx context.Context, sess *session.Session) error {
	if ctx == nil {
		return errors.New("interview: context is required")
	}
	if sess == nil {
		return errors.New("interview: session is required")
	}
	tpl := sess.Template()
	if tpl == nil {
		return ErrNoTemplate
	}

	for _, section := range tpl.Sections {
		if title := strings.TrimSpace(section.Title); title != "" {
			if err := r.driver.Info(ctx, title); err != nil {
				return err
			}
		}
		if err := r.promptFields(ctx, section.Fields, sess); err != nil {
			return err
		}
	}
	return r.driver.Info(ctx, fmt.Sprintf("%d%% complete", sess.Completion()))
}

func (r *Runner) promptFields(ctx context.Context, fields []schema.Field, sess *session.Session) error {
	for _, field := range fields {
		if !sess.Visible(field) {
			continue
		}
		if err := r.promptField(ctx, field, sess); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) promptField(ctx context.Context, field schema.Field, sess *session.Session) error {
	switch field.Type.Kind() {
	case schema.KindPresentational:
		return r.showPresentational(ctx, field)
	case schema.KindContainer:
		if field.Type == schema.FieldTypeRepeating {
			return r.promptRepeating(ctx, field, sess)
		}
		if label := strings.TrimSpace(field.Label); label != "" {
			if err := r.driver.Info(ctx, label); err != nil {
				return err
			}
		}
		return r.promptFields(ctx, field.Children, sess)
	}

	if field.Type == schema.FieldTypeFile || field.Type == schema.FieldTypeSignature {
		return r.driver.Info(ctx, fmt.Sprintf("%s must be provided outside the terminal; skipping", field.DisplayLabel()))
	}

	seed := field.DefaultValue
	if value, ok := sess.Get(field.ID); ok {
		seed = value
	}

	value, err := r.promptLeaf(ctx, field, seed)
	if err != nil {
		return err
	}
	return sess.Set(field.ID, value)
}

func (r *Runner) showPresentational(ctx context.Context, field schema.Field) error {
	if text := strings.TrimSpace(field.Label); text != "" {
		if err := r.driver.Info(ctx, text); err != nil {
			return err
		}
	}
	if help := strings.TrimSpace(field.HelpText); help != "" {
		return r.driver.Info(ctx, help)
	}
	return nil
}

// promptLeaf collects one answer for a leaf field, looping until the answer
// passes the field's validation rules.
func (r *Runner) promptLeaf(ctx context.Context, field schema.Field, seed any) (any, error) {
	switch field.Type {
	case schema.FieldTypeCheckbox:
		return r.promptCheckbox(ctx, field, seed)
	case schema.FieldTypeNumber:
		return r.promptNumber(ctx, field, seed)
	case schema.FieldTypeTextarea:
		return r.promptTextarea(ctx, field, seed)
	case schema.FieldTypeSelect, schema.FieldTypeRadio:
		return r.promptSelect(ctx, field, seed)
	case schema.FieldTypeMultiSelect:
		return r.promptMultiSelect(ctx, field, seed)
	default:
		// text, date, time, datetime, and any unknown leaf collect as text.
		return r.promptText(ctx, field, seed)
	}
}

func (r *Runner) promptText(ctx context.Context, field schema.Field, seed any) (any, error) {
	cfg := InputConfig{
		Message: field.DisplayLabel(),
		Default: seedString(seed),
		Help:    fieldHelp(field),
	}
	for {
		response, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if msg := r.check(field, response); msg != "" {
			_ = r.driver.Info(ctx, msg)
			continue
		}
		return response, nil
	}
}

func (r *Runner) promptTextarea(ctx context.Context, field schema.Field, seed any) (any, error) {
	cfg := TextAreaConfig{
		Message: field.DisplayLabel(),
		Default: seedString(seed),
		Help:    fieldHelp(field),
	}
	for {
		response, err := r.driver.TextArea(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if msg := r.check(field, response); msg != "" {
			_ = r.driver.Info(ctx, msg)
			continue
		}
		return response, nil
	}
}

func (r *Runner) promptNumber(ctx context.Context, field schema.Field, seed any) (any, error) {
	defaultStr := ""
	if num, ok := answers.Number(seed); ok {
		defaultStr = strconv.FormatFloat(num, 'f', -1, 64)
	}

	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message: field.DisplayLabel(),
			Default: defaultStr,
			Help:    fieldHelp(field),
		})
		if err != nil {
			return nil, err
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			if msg := r.check(field, nil); msg != "" {
				_ = r.driver.Info(ctx, msg)
				continue
			}
			return nil, nil
		}

		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s must be a number", field.DisplayLabel()))
			continue
		}
		if msg := r.check(field, parsed); msg != "" {
			_ = r.driver.Info(ctx, msg)
			continue
		}
		return parsed, nil
	}
}

func (r *Runner) promptCheckbox(ctx context.Context, field schema.Field, seed any) (any, error) {
	defaultVal, _ := asBool(seed)
	resp, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: field.DisplayLabel(),
		Default: defaultVal,
		Help:    fieldHelp(field),
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (r *Runner) promptSelect(ctx context.Context, field schema.Field, seed any) (any, error) {
	options := enabledOptions(r.sources.FieldOptions(field))
	if len(options) == 0 {
		// Nothing to choose from; collect as free text.
		return r.promptText(ctx, field, seed)
	}

	labels := optionLabels(options)
	defaultIdx := -1
	if seed != nil {
		defaultIdx = optionIndex(options, answers.String(seed))
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      field.DisplayLabel(),
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         fieldHelp(field),
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(options) {
			_ = r.driver.Info(ctx, fmt.Sprintf("Pick one of the listed %s options", field.DisplayLabel()))
			continue
		}
		selected := options[idx].Value
		if msg := r.check(field, selected); msg != "" {
			_ = r.driver.Info(ctx, msg)
			continue
		}
		return selected, nil
	}
}

func (r *Runner) promptMultiSelect(ctx context.Context, field schema.Field, seed any) (any, error) {
	options := enabledOptions(r.sources.FieldOptions(field))
	if len(options) == 0 {
		return r.promptText(ctx, field, seed)
	}

	labels := optionLabels(options)
	defaults := defaultIndices(options, seed)

	for {
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  field.DisplayLabel(),
			Options:  labels,
			Defaults: defaults,
			Help:     fieldHelp(field),
		})
		if err != nil {
			return nil, err
		}
		selected := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(options) {
				selected = append(selected, options[idx].Value)
			}
		}
		if msg := r.check(field, selected); msg != "" {
			_ = r.driver.Info(ctx, msg)
			continue
		}
		return selected, nil
	}
}

func (r *Runner) promptRepeating(ctx context.Context, field schema.Field, sess *session.Session) error {
	if len(field.Children) == 0 {
		return nil
	}

	label := field.DisplayLabel()
	rows := existingRows(sess, field.ID)

	if len(rows) > 0 {
		more, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add another %s entry?", label),
			Default: false,
		})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	} else {
		add, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add a %s entry?", label),
			Default: field.Required,
			Help:    fieldHelp(field),
		})
		if err != nil {
			return err
		}
		if !add {
			return nil
		}
	}

	for len(rows) < r.maxRows {
		row, err := r.promptRow(ctx, field, sess)
		if err != nil {
			return err
		}
		rows = append(rows, row)
		if err := sess.Set(field.ID, rows); err != nil {
			return err
		}

		if len(rows) >= r.maxRows {
			break
		}
		more, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Add another?",
			Default: false,
		})
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	return nil
}

func (r *Runner) promptRow(ctx context.Context, field schema.Field, sess *session.Session) (map[string]any, error) {
	row := make(map[string]any, len(field.Children))
	for _, child := range field.Children {
		if child.Type.Kind() != schema.KindLeaf {
			continue
		}
		if child.Type == schema.FieldTypeFile || child.Type == schema.FieldTypeSignature {
			continue
		}
		if !sess.Visible(child) {
			continue
		}
		value, err := r.promptLeaf(ctx, child, child.DefaultValue)
		if err != nil {
			return nil, err
		}
		row[child.ID] = value
	}
	return row, nil
}

// check runs the field's validation rules against a candidate answer and
// returns the first failure message, or "" when the answer passes. The
// field's condition is dropped for the probe: visibility was already decided
// against the full answer set.
func (r *Runner) check(field schema.Field, value any) string {
	field.Condition = nil
	probe := []schema.Section{{ID: "probe", Fields: []schema.Field{field}}}
	errs := validation.ValidateWithRegistry(r.reg, probe, answers.Map{field.ID: value})
	if len(errs) == 0 {
		return ""
	}
	return errs[0].Message
}

func fieldHelp(field schema.Field) string {
	if field.HelpText != "" {
		return field.HelpText
	}
	return field.Placeholder
}

func seedString(seed any) string {
	if seed == nil {
		return ""
	}
	return answers.String(seed)
}

func asBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}

func enabledOptions(options []schema.Option) []schema.Option {
	out := make([]schema.Option, 0, len(options))
	for _, opt := range options {
		if opt.Disabled {
			continue
		}
		out = append(out, opt)
	}
	return out
}

func optionLabels(options []schema.Option) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		out = append(out, label)
	}
	return out
}

func optionIndex(options []schema.Option, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}

func defaultIndices(options []schema.Option, value any) []int {
	var selected []string
	switch v := value.(type) {
	case []string:
		selected = v
	case []any:
		for _, item := range v {
			selected = append(selected, answers.String(item))
		}
	}
	if len(selected) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(selected))
	for _, item := range selected {
		seen[item] = struct{}{}
	}
	var out []int
	for i, opt := range options {
		if _, ok := seen[opt.Value]; ok {
			out = append(out, i)
		}
	}
	return out
}

func existingRows(sess *session.Session, fieldID string) []any {
	value, ok := sess.Get(fieldID)
	if !ok {
		return nil
	}
	rows, ok := value.([]any)
	if !ok {
		return nil
	}
	return rows
}
