package caml

import (
	"fmt"
	"strings"
)

// ErrorKind classifies interpreter failures.
type ErrorKind string

const (
	SyntaxError   ErrorKind = "SyntaxError"
	RuntimeError  ErrorKind = "RuntimeError"
	MatchFailure  ErrorKind = "MatchFailure"
	UserException ErrorKind = "UserException"
)

// Error is the uniform failure shape produced by the lexer, parser, and
// evaluator. Line and Column are 1-based; limit violations carry line 0.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func syntaxErrorf(line, col int, format string, args ...any) *Error {
	return &Error{Kind: SyntaxError, Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}

func runtimeErrorf(line, col int, format string, args ...any) *Error {
	return &Error{Kind: RuntimeError, Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}

func matchFailure(line, col int) *Error {
	return &Error{Kind: MatchFailure, Line: line, Column: col, Message: "pattern matching failed"}
}

// RaisedError carries an interpreted-level exception value through Go's
// error return until a try/with handler catches it. Limit violations and
// runtime type errors are plain *Error values and are never caught by
// interpreted code.
type RaisedError struct {
	Payload Value
	Line    int
	Column  int
}

func (r *RaisedError) Error() string {
	return "Exception: " + FormatValue(r.Payload)
}

// Report converts a raised exception into the uniform error shape, with
// the rendered payload as message.
func (r *RaisedError) Report() *Error {
	return &Error{Kind: UserException, Message: r.Error(), Line: r.Line, Column: r.Column}
}

// SourceLocation anchors an AST node or error in the original source.
type SourceLocation struct {
	Line   int
	Column int
}

// HighlightError renders a reported failure against its source with the
// offending line and a caret underline, for terminal display.
func HighlightError(rep ErrorReport, source string) string {
	if rep.Line < 1 {
		return rep.Message
	}
	lines := strings.Split(source, "\n")
	if rep.Line > len(lines) {
		return fmt.Sprintf("%s (line %d, column %d)", rep.Message, rep.Line, rep.Column)
	}
	col := rep.Column
	if col < 1 {
		col = 1
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at line %d, column %d\n", rep.Message, rep.Line, rep.Column)
	fmt.Fprintf(&sb, "  %4d | %s\n", rep.Line, lines[rep.Line-1])
	fmt.Fprintf(&sb, "       | %s^", strings.Repeat(" ", col-1))
	return sb.String()
}
