// Package session owns the mutable answer state of one form being filled
// out. The engine's tree walks read a session's answers; only the session
// mutates them, through explicit updates.
package session

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-intake/pkg/answers"
	"github.com/goliatone/go-intake/pkg/completion"
	"github.com/goliatone/go-intake/pkg/matter"
	"github.com/goliatone/go-intake/pkg/populate"
	"github.com/goliatone/go-intake/pkg/schema"
	"github.com/goliatone/go-intake/pkg/validation"
	"github.com/goliatone/go-intake/pkg/visibility"
)

// Session binds a template to the answers collected for it. Not safe for
// concurrent use; a session belongs to one intake flow at a time.
type Session struct {
	id        string
	template  *schema.Template
	values    answers.Map
	errors    map[string][]string
	startedAt time.Time
	updatedAt time.Time
}

// Option customizes session construction.
type Option func(*Session)

// WithID restores a previously issued session identifier instead of minting
// a new one.
func WithID(id string) Option {
	return func(s *Session) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			s.id = trimmed
		}
	}
}

// WithMatter seeds initial answers from the matter record through the
// population walk.
func WithMatter(record matter.Record) Option {
	return func(s *Session) {
		for fieldID, value := range populate.FromRecord(s.template.Sections, record) {
			s.values[fieldID] = value
		}
	}
}

// WithAnswers overlays explicit initial answers. Applied after WithMatter
// when both are given, so explicit answers win.
func WithAnswers(values answers.Map) Option {
	return func(s *Session) {
		for fieldID, value := range values {
			s.values[fieldID] = deepCopy(value)
		}
	}
}

// New opens a session for the template.
func New(tpl *schema.Template, opts ...Option) (*Session, error) {
	if tpl == nil {
		return nil, errors.New("session: template is required")
	}

	now := time.Now()
	s := &Session{
		id:        uuid.NewString(),
		template:  tpl,
		values:    make(answers.Map),
		errors:    make(map[string][]string),
		startedAt: now,
		updatedAt: now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Template returns the template this session fills out.
func (s *Session) Template() *schema.Template {
	return s.template
}

// Answers returns the live answer map. Callers must treat it as read-only
// and mutate through Set and SetPath.
func (s *Session) Answers() answers.Map {
	return s.values
}

// Snapshot returns a deep copy of the answers, safe to hand across an API
// boundary.
func (s *Session) Snapshot() answers.Map {
	out := make(answers.Map, len(s.values))
	for fieldID, value := range s.values {
		out[fieldID] = deepCopy(value)
	}
	return out
}

// Get returns the answer stored for a field.
func (s *Session) Get(fieldID string) (any, bool) {
	value, ok := s.values[fieldID]
	return value, ok
}

// Set stores an answer under a field identifier.
func (s *Session) Set(fieldID string, value any) error {
	trimmed := strings.TrimSpace(fieldID)
	if trimmed == "" {
		return errors.New("session: field id is required")
	}
	s.values[trimmed] = value
	s.touch()
	return nil
}

// Clear removes a field's answer.
func (s *Session) Clear(fieldID string) {
	delete(s.values, fieldID)
	s.touch()
}

// GetPath resolves a dotted path into the answers, descending through nested
// maps and repeating-row slices. An exact key match wins over descent.
func (s *Session) GetPath(path string) (any, bool) {
	if value, ok := s.values[path]; ok {
		return value, true
	}
	return getPath(map[string]any(s.values), path)
}

// SetPath writes through a dotted path, creating intermediate maps and
// growing row slices as needed. Numeric segments index rows, so
// "defendants.0.name" addresses the first defendant's name.
func (s *Session) SetPath(path string, value any) error {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return errors.New("session: path is required")
	}
	if err := setPath(map[string]any(s.values), trimmed, value); err != nil {
		return err
	}
	s.touch()
	return nil
}

// Visible reports whether a field currently displays given the session's
// answers.
func (s *Session) Visible(field schema.Field) bool {
	return visibility.Visible(field.Condition, s.values)
}

// Completion returns the current progress percentage.
func (s *Session) Completion() int {
	return completion.Percent(s.template.Sections, s.values)
}

// Validate runs the local validation walk and records the failures on the
// session, grouped per field.
func (s *Session) Validate() []validation.FieldError {
	errs := validation.Validate(s.template.Sections, s.values)
	s.errors = make(map[string][]string, len(errs))
	for _, e := range errs {
		s.errors[e.FieldID] = append(s.errors[e.FieldID], e.Message)
	}
	return errs
}

// SetErrors replaces the recorded errors, for merging a remote validation
// result.
func (s *Session) SetErrors(errs map[string][]string) {
	s.errors = make(map[string][]string, len(errs))
	for fieldID, messages := range errs {
		s.errors[fieldID] = append([]string(nil), messages...)
	}
}

// ErrorsFor returns the messages recorded against a field.
func (s *Session) ErrorsFor(fieldID string) []string {
	return s.errors[fieldID]
}

// HasErrors reports whether any field has a recorded failure.
func (s *Session) HasErrors() bool {
	return len(s.errors) > 0
}

// StartedAt returns when the session was opened.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// UpdatedAt returns when an answer last changed.
func (s *Session) UpdatedAt() time.Time {
	return s.updatedAt
}

func (s *Session) touch() {
	s.updatedAt = time.Now()
}
