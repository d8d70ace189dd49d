package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnexpectedEOF is returned when a construct runs out of lines mid-parse.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrNestingTooDeep is returned when WithMaxDepth is set and nested
	// content exceeds it.
	ErrNestingTooDeep = errors.New("nesting too deep")
)

// SyntaxError reports invalid input at a line. Recognizers currently prefer a
// silent non-match, so the parser does not construct it yet.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid syntax at line %d: %s", e.Line, e.Msg)
}
