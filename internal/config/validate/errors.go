package validate

import "fmt"

// Error represents a single coercion failure.
type Error struct {
	// Reason describes what's wrong.
	Reason string

	// Value is the rejected raw value (may be nil).
	Value any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Reason
}

// LookupError is returned when a user or group name cannot be resolved
// against the system database.
type LookupError struct {
	// Kind is "user" or "group".
	Kind string

	// Name is the name that failed to resolve.
	Name string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("no such %s: %q", e.Kind, e.Name)
}
