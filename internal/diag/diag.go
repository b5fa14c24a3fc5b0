// Package diag defines the error and warning taxonomy shared by every stage
// of the translation pipeline, plus the source location every diagnostic
// carries.
package diag

import "fmt"

// Location identifies a point (or span) in a source file. The parser is the
// only component that creates locations; every later stage propagates them
// rather than inventing new ones.
type Location struct {
	Path string
	Line int // 1-based
	Col  int // 1-based
	Len  int // length in runes of the offending token, 0 if unknown
}

func (l Location) String() string {
	path := l.Path
	if path == "" {
		path = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", path, l.Line, l.Col)
}

// ParseError reports a grammar violation, lexical error, undefined variable
// reference, unresolvable interpolation, cyclic variable reference, or
// malformed loop iterable.
type ParseError struct {
	Loc     Location
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

// ValidationError reports a referential violation, duplicate identifier,
// mode/directive incompatibility, out-of-range numeric, or invalid
// health-check parameter.
type ValidationError struct {
	Loc     Location
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

// CodeGenerationError reports a serializer invariant violation. It should
// never fire after validation succeeds; if it does, it is a bug in the core.
type CodeGenerationError struct {
	Loc     Location
	Message string
}

func (e *CodeGenerationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

// Warning is a non-fatal advisory. It deliberately does not implement error
// so that a caller's blanket "if err != nil" check cannot mistake a warning
// for a fatal condition.
type Warning struct {
	Loc     Location
	Message string
}

// String renders the warning the way the CLI prints it: "Warning: <message>"
// preceded by the location.
func (w Warning) String() string {
	return fmt.Sprintf("%s: Warning: %s", w.Loc, w.Message)
}

// NewParseError builds a ParseError at loc with a formatted message.
func NewParseError(loc Location, format string, args ...any) *ParseError {
	return &ParseError{Loc: loc, Message: fmt.Sprintf(format, args...)}
}

// NewValidationError builds a ValidationError at loc with a formatted message.
func NewValidationError(loc Location, format string, args ...any) *ValidationError {
	return &ValidationError{Loc: loc, Message: fmt.Sprintf(format, args...)}
}

// NewWarning builds a Warning at loc with a formatted message.
func NewWarning(loc Location, format string, args ...any) Warning {
	return Warning{Loc: loc, Message: fmt.Sprintf(format, args...)}
}
