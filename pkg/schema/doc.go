// Package schema defines the form template model: a versioned,
// jurisdiction-scoped tree of sections and fields, plus parsing,
// sanitization, and load-time verification. Templates are immutable once
// loaded; the evaluation packages (visibility, populate, validation,
// completion) walk them read-only.
package schema
