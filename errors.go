package filterexpr

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// PropertyNotFoundError is raised when a dotted property path fails to
// resolve a segment against a record shape.
type PropertyNotFoundError struct {
	Segment string
	Path    string
	Shape   string
}

func (e *PropertyNotFoundError) Error() string {
	return fmt.Sprintf("filterexpr: property %q not found on %s (path %q)", e.Segment, e.Shape, e.Path)
}

// InvalidDirectionError is raised by the ordering parser when a clause's
// direction word is neither asc/ascending/desc/descending.
type InvalidDirectionError struct {
	Word string
}

func (e *InvalidDirectionError) Error() string {
	return fmt.Sprintf("filterexpr: invalid ordering direction %q", e.Word)
}

// InvalidSyntaxError is raised by the filter parser on any
// structural failure: exhausted tokens, unbalanced parens, a comparison
// missing its operator, and so on.
type InvalidSyntaxError struct {
	Lexeme string
	Pos    lexer.Position
	Reason string
}

func (e *InvalidSyntaxError) Error() string {
	if e.Lexeme == "" {
		return fmt.Sprintf("filterexpr: invalid syntax at %s: %s", e.Pos, e.Reason)
	}

	return fmt.Sprintf("filterexpr: invalid syntax at %s: %s (near %q)", e.Pos, e.Reason, e.Lexeme)
}

// NullNotAssignableError is raised when a literal `null` is compared
// against a non-nullable target type.
type NullNotAssignableError struct {
	Lexeme string
	Target FieldType
}

func (e *NullNotAssignableError) Error() string {
	return fmt.Sprintf("filterexpr: %q is not assignable to non-nullable %s", e.Lexeme, e.Target)
}

// CoerceFailedError is raised when a lexeme cannot be converted to its
// target scalar type.
type CoerceFailedError struct {
	Lexeme string
	Target FieldType
	Cause  error
}

func (e *CoerceFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("filterexpr: cannot coerce %q to %s: %v", e.Lexeme, e.Target, e.Cause)
	}

	return fmt.Sprintf("filterexpr: cannot coerce %q to %s", e.Lexeme, e.Target)
}

func (e *CoerceFailedError) Unwrap() error {
	return e.Cause
}

// TypeMismatchError is raised when a string-only operator (contains,
// startswith, endswith) is applied to a non-string final type.
type TypeMismatchError struct {
	Path string
	Op   string
	Got  FieldType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("filterexpr: %s requires a string operand, %s has type %s", e.Op, e.Path, e.Got)
}
