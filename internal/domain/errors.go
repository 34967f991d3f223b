package domain

import (
	"errors"
	"strings"
)

// Sentinel errors for collaborator failures. Handlers map these onto HTTP
// statuses; services only wrap them.
var (
	// ErrIndexQuery marks a transport or application-level failure from the
	// search index. Not retried here.
	ErrIndexQuery = errors.New("index query failed")

	// ErrInvalidSearchMode marks a search mode that slipped past validation.
	ErrInvalidSearchMode = errors.New("search mode undefined")

	// Pass-through sentinels for collaborator responses.
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// FieldError is a single violated validation rule.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates one message per violated field. It is the only
// error surfaced for malformed requests; no side effects happen once it is
// returned.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := e.Messages()
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Messages returns "field: message" strings in rule order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return msgs
}

// Add appends a violation and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// Empty reports whether no rules were violated.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}
