// Package validate provides the pure coercion functions used by setting
// descriptors.
//
// Each validator takes a raw value (string, number, bool, or func) and
// returns the typed value or an error. Validators never mutate state and
// never log; failures surface to the caller as *Error or *LookupError.
package validate

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Func converts a raw value into a typed value.
type Func func(val any) (any, error)

// Bool accepts booleans as-is and the strings "true"/"false"
// (case-insensitive, surrounding whitespace ignored).
func Bool(val any) (any, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, &Error{Reason: fmt.Sprintf("invalid boolean: %q", v), Value: val}
		}
	default:
		return nil, &Error{Reason: fmt.Sprintf("invalid type for boolean: %T", val), Value: val}
	}
}

// PosInt accepts any integer value (booleans count as 0/1) or a string
// parsed with base-0 semantics: "0x" prefix is hex, a leading "0" is
// octal, anything else decimal. Negative results are rejected.
func PosInt(val any) (any, error) {
	n, err := toInt(val)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &Error{Reason: fmt.Sprintf("value must be positive: %v", val), Value: val}
	}
	return n, nil
}

func toInt(val any) (int, error) {
	switch v := val.(type) {
	case bool:
		// Booleans are ints.
		if v {
			return 1, nil
		}
		return 0, nil
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		return int(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 0, 64)
		if err != nil {
			return 0, &Error{Reason: fmt.Sprintf("invalid integer: %q", v), Value: val}
		}
		return int(n), nil
	default:
		return 0, &Error{Reason: fmt.Sprintf("invalid type for integer: %T", val), Value: val}
	}
}

// String passes nil through unchanged and trims surrounding whitespace
// from string input. Any other type is rejected.
func String(val any) (any, error) {
	if val == nil {
		return nil, nil
	}
	s, ok := val.(string)
	if !ok {
		return nil, &Error{Reason: fmt.Sprintf("not a string: %v", val), Value: val}
	}
	return strings.TrimSpace(s), nil
}

// Callable returns a validator that accepts any function value with
// exactly arity parameters. Lifecycle hooks have fixed, documented
// signatures; a mismatched hook is rejected here, at configuration time,
// rather than when the server invokes it.
func Callable(arity int) Func {
	return func(val any) (any, error) {
		if val == nil {
			return nil, &Error{Reason: "value is not callable: <nil>", Value: val}
		}
		t := reflect.TypeOf(val)
		if t.Kind() != reflect.Func {
			return nil, &Error{Reason: fmt.Sprintf("value is not callable: %v", val), Value: val}
		}
		if t.NumIn() != arity {
			return nil, &Error{Reason: fmt.Sprintf("callable must have an arity of %d, got %d", arity, t.NumIn()), Value: val}
		}
		return val, nil
	}
}

// User resolves a raw user value to a numeric uid. Nil resolves to the
// current effective uid, numeric input is taken literally, and anything
// else is looked up in the system user database.
func User(val any) (any, error) {
	return resolveID(val, CurrentUID, LookupUser, "user")
}

// Group resolves a raw group value to a numeric gid, symmetric to User.
func Group(val any) (any, error) {
	return resolveID(val, CurrentGID, LookupGroup, "group")
}

func resolveID(val any, current func() int, lookup func(string) (int, error), kind string) (any, error) {
	if val == nil {
		return current(), nil
	}
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		name := strings.TrimSpace(v)
		if isDigits(name) {
			n, err := strconv.Atoi(name)
			if err != nil {
				return nil, &Error{Reason: fmt.Sprintf("invalid %s id: %q", kind, v), Value: val}
			}
			return n, nil
		}
		id, err := lookup(name)
		if err != nil {
			return nil, &LookupError{Kind: kind, Name: name}
		}
		return id, nil
	default:
		return nil, &Error{Reason: fmt.Sprintf("invalid type for %s: %T", kind, val), Value: val}
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
