package caml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	withPos := &Error{Kind: SyntaxError, Message: "expected ')'", Line: 2, Column: 5}
	assert.Equal(t, "SyntaxError at line 2, column 5: expected ')'", withPos.Error())

	limit := &Error{Kind: RuntimeError, Message: "possible infinite loop"}
	assert.Equal(t, "RuntimeError: possible infinite loop", limit.Error())
}

func TestRaisedErrorRendersPayload(t *testing.T) {
	raised := &RaisedError{
		Payload: ConstructorValue{Name: "Failure", Arg: StringValue{Val: "boom"}},
		Line:    3,
		Column:  1,
	}
	assert.Equal(t, `Exception: Failure "boom"`, raised.Error())

	rep := raised.Report()
	assert.Equal(t, UserException, rep.Kind)
	assert.Equal(t, 3, rep.Line)
	assert.Contains(t, rep.Message, "boom")
}

func TestHighlightError(t *testing.T) {
	src := "let x = 1\nlet y = $"
	rep := ErrorReport{Message: "SyntaxError: unexpected character \"$\"", Line: 2, Column: 9}
	out := HighlightError(rep, src)
	assert.Contains(t, out, "at line 2, column 9")
	assert.Contains(t, out, "let y = $")
	assert.Contains(t, out, "^")

	// no location: plain message, no source excerpt
	plain := HighlightError(ErrorReport{Message: "RuntimeError: timed out"}, src)
	assert.Equal(t, "RuntimeError: timed out", plain)

	// location past the end of the source: message with position only
	past := HighlightError(ErrorReport{Message: "boom", Line: 9, Column: 1}, src)
	assert.Equal(t, "boom (line 9, column 1)", past)
}
