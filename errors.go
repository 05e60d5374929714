package gorecord

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes reported while finalizing a declaration.
const (
	CodeEmptyName        = "empty_name"
	CodeUnknownParent    = "unknown_parent"
	CodeUnknownType      = "unknown_type"
	CodeDuplicateField   = "duplicate_field"
	CodeInvalidDefault   = "invalid_default"
	CodeUnknownRule      = "unknown_rule"
	CodeUndeclaredField  = "undeclared_field"
	CodeIncompatibleRule = "incompatible_rule"
	CodeInvalidPattern   = "invalid_pattern"
	CodeInvalidBounds    = "invalid_bounds"
	CodeInvalidMember    = "invalid_member"
)

var (
	// ErrConfiguration matches every *ConfigError.
	ErrConfiguration = errors.New("gorecord: invalid declaration")
	// ErrUnknownField is returned when a record is asked for a field its type
	// does not declare.
	ErrUnknownField = errors.New("gorecord: unknown field")
	// ErrTypeNotFound is returned when a type name has not been declared.
	ErrTypeNotFound = errors.New("gorecord: record type not found")
)

// Issue represents a single problem found in a declaration.
type Issue struct {
	Path    string // JSON Pointer into the declaration (for example: /validations/2/field).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: the offending name or value.
	// Params carries structured parameters (e.g., {"field":"login"}) for i18n.
	Params map[string]any
}

// Issues is a collection of declaration problems that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. undeclared_field at /validations/0/field
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Hint != "" {
			fmt.Fprintf(b, " (%s)", it.Hint)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ConfigError reports every issue found while finalizing one declaration.
// It matches ErrConfiguration and unwraps to its Issues.
type ConfigError struct {
	TypeName string
	Issues   Issues
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("gorecord: invalid declaration of %q: %s", e.TypeName, e.Issues.Error())
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

func (e *ConfigError) Unwrap() error { return e.Issues }

// UnknownFieldError names the record type and the field that was not found.
type UnknownFieldError struct {
	TypeName string
	Field    string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("gorecord: %s has no field %q", e.TypeName, e.Field)
}

func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }

func unknownField(rt *RecordType, name string) error {
	return &UnknownFieldError{TypeName: rt.name, Field: name}
}
