// Package registry provides the ordered catalog of setting descriptors.
//
// The registry maintains definitions of all known settings with their
// validators, defaults, CLI exposure, and documentation. Descriptors are
// registered once during startup; each is assigned a strictly increasing
// order index used for deterministic CLI output.
package registry

import (
	"strings"

	"github.com/dshills/gunicorn/internal/config/validate"
)

// Setting defines a configuration setting with its metadata. A Setting is
// immutable once registered.
type Setting struct {
	// Name is the unique identifier (e.g., "worker_class").
	Name string

	// Section is the display-grouping label for CLI help.
	Section string

	// CLI lists the flag strings (e.g., "-w", "--workers"). Empty means
	// the setting has no command-line exposure.
	CLI []string

	// Meta is the metavar shown in CLI help (e.g., "INT").
	Meta string

	// Action is the CLI action kind.
	Action Action

	// Type is the setting's value type.
	Type ValueType

	// Arity is the required parameter count for callable settings.
	Arity int

	// Validator coerces raw input into the typed value.
	Validator validate.Func

	// Default is the default value. Nil means no default.
	Default any

	// Desc is the full documentation text, dedented and trimmed at
	// registration time.
	Desc string

	// Short is the first non-blank line of Desc, derived at
	// registration time.
	Short string

	// order is assigned by the registry at registration.
	order int
}

// Order returns the registration order index.
func (s *Setting) Order() int {
	return s.order
}

// normalizeDesc dedents and trims the declared documentation and derives
// the short form from its first non-blank line.
func (s *Setting) normalizeDesc() {
	s.Desc = strings.TrimSpace(dedent(s.Desc))
	s.Short = ""
	for _, line := range strings.Split(s.Desc, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			s.Short = trimmed
			break
		}
	}
}

// dedent removes the longest common leading whitespace from all non-blank
// lines of text.
func dedent(text string) string {
	lines := strings.Split(text, "\n")

	margin := ""
	found := false
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		if !found {
			margin = indent
			found = true
			continue
		}
		margin = commonPrefix(margin, indent)
	}
	if margin == "" {
		return text
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = strings.TrimLeft(line, " \t")
			continue
		}
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}
	i := 0
	for i < max && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// ValueType represents the data type of a setting.
type ValueType uint8

const (
	// TypeString represents a string value.
	TypeString ValueType = iota
	// TypeInt represents an integer value.
	TypeInt
	// TypeBool represents a boolean value.
	TypeBool
	// TypeCallable represents a lifecycle hook function.
	TypeCallable
)

// String returns the string representation of the type.
func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeCallable:
		return "callable"
	default:
		return "unknown"
	}
}

// Action represents the CLI action kind for a setting.
type Action uint8

const (
	// ActionStore stores the flag's argument as the value.
	ActionStore Action = iota
	// ActionStoreTrue stores true when the flag is present; the flag
	// takes no argument.
	ActionStoreTrue
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionStore:
		return "store"
	case ActionStoreTrue:
		return "store_true"
	default:
		return "unknown"
	}
}
