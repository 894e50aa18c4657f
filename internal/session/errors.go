package session

import "fmt"

// NotFoundError reports an unknown session or question id. It always
// propagates to the caller.
type NotFoundError struct {
	Kind string // "session" or "question"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ValidationError reports malformed input rejected before any state
// mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
