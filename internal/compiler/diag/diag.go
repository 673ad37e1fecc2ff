// Package diag defines the error value shared by every phase of the
// interpreter.
package diag

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/codelang/internal/compiler/token"
)

// Phase names the pipeline stage that produced an error.
type Phase int

const (
	Lexical Phase = iota
	Syntax
	Semantic
	Runtime
)

func (p Phase) String() string {
	switch p {
	case Lexical:
		return "Lexical Error"
	case Syntax:
		return "Syntax Error"
	case Semantic:
		return "Semantic Error"
	case Runtime:
		return "Runtime Error"
	}
	return "Error"
}

// Error is a phase-tagged diagnostic. Line is 0 when no source position
// applies.
type Error struct {
	Phase   Phase
	Message string
	Line    int
	Column  int
}

func (e *Error) HasPosition() bool { return e.Line > 0 }

// Error renders "(row,column): message", or just the message when there is no
// position.
func (e *Error) Error() string {
	if !e.HasPosition() {
		return e.Message
	}
	return fmt.Sprintf("(%d,%d): %s", e.Line, e.Column, e.Message)
}

// At builds an error positioned at tok.
func At(phase Phase, tok token.Token, format string, args ...any) *Error {
	return &Error{
		Phase:   phase,
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// New builds an error without a source position.
func New(phase Phase, format string, args ...any) *Error {
	return &Error{Phase: phase, Message: fmt.Sprintf(format, args...)}
}

// PhaseOf reports the phase of err if it is (or wraps) an *Error.
func PhaseOf(err error) (Phase, bool) {
	var d *Error
	if errors.As(err, &d) {
		return d.Phase, true
	}
	return 0, false
}
