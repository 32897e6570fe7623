package swsched

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSolution is returned by callers that need a timetable from a solve
// that did not produce one.
var ErrNoSolution = errors.New("no solution")

// ConfigError reports an unknown reference or a contradictory setting. It
// always names the offending identifier.
type ConfigError struct {
	Field   string
	Name    string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("invalid configuration")
	if e.Field != "" {
		b.WriteString(" at ")
		b.WriteString(e.Field)
	}
	if e.Name != "" {
		fmt.Fprintf(&b, " (%q)", e.Name)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Errorf builds a ConfigError for field and name.
func Errorf(field, name, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Name: name, Message: fmt.Sprintf(format, args...)}
}

// NotSatisfiable is an error composed of the labels of a set of hard rules
// that cannot hold together.
type NotSatisfiable []string

func (e NotSatisfiable) Error() string {
	const msg = "constraints not satisfiable"
	if len(e) == 0 {
		return msg
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(e, ", "))
}
