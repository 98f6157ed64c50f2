package validation

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-intake/pkg/answers"
	"github.com/goliatone/go-intake/pkg/schema"
)

// RemoteValidator is the server-side validation collaborator. It receives
// the template identity, the full answer set, and the jurisdiction, and
// returns per-field messages for anything the server rejects.
type RemoteValidator interface {
	Validate(ctx context.Context, templateID string, values answers.Map, jurisdiction schema.Jurisdiction) (map[string]string, error)
}

// RemoteValidatorFunc adapts a function into a RemoteValidator.
type RemoteValidatorFunc func(ctx context.Context, templateID string, values answers.Map, jurisdiction schema.Jurisdiction) (map[string]string, error)

// Validate delegates to the underlying function.
func (fn RemoteValidatorFunc) Validate(ctx context.Context, templateID string, values answers.Map, jurisdiction schema.Jurisdiction) (map[string]string, error) {
	return fn(ctx, templateID, values, jurisdiction)
}

// ValidateWithRemote runs the local pass and, only when it is clean,
// consults the remote validator. Any local failure returns immediately with
// the locally indexed messages; the remote pass is reserved for
// syntactically complete submissions. A remote transport failure is logged
// and swallowed: remote validation is additive, never blocking. An empty
// result means the submission is valid.
func ValidateWithRemote(ctx context.Context, tpl *schema.Template, values answers.Map, remote RemoteValidator) map[string]string {
	if tpl == nil {
		return map[string]string{}
	}

	if local := Validate(tpl.Sections, values); len(local) > 0 {
		return Index(local)
	}

	if remote == nil {
		return map[string]string{}
	}

	remoteErrs, err := remote.Validate(ctx, tpl.ID, values, tpl.Jurisdiction)
	if err != nil {
		slog.Debug("validation: remote validator unavailable, local result stands",
			"template", tpl.ID, "error", err)
		return map[string]string{}
	}
	if remoteErrs == nil {
		return map[string]string{}
	}
	return remoteErrs
}
