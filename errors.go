// SPDX-License-Identifier: MIT
package mission

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/fisherprime/mission/lexer"
)

type (
	// ParseError locates a fatal parse failure.
	ParseError struct {
		// Err is one of the parse error sentinels.
		Err error
		// Cause holds the underlying failure, if any.
		Cause error

		// Pos, Line & Col locate the failure; Line & Col are 1-based.
		Pos  int
		Line int
		Col  int

		// Tag & TagPos identify the innermost enclosing block, Tag is empty at the top level.
		Tag    string
		TagPos int
	}
)

// Parse errors.
var (
	ErrUnterminatedLiteral = lexer.ErrUnterminatedLiteral
	ErrUnterminatedBlock   = errors.New("unterminated block")
	ErrFieldOutsideBlock   = errors.New("field assignment outside a block")
	ErrUnexpectedToken     = errors.New("unexpected token")
)

// Element errors.
var (
	ErrNotFound   = errors.New("not found")
	ErrNoChildren = errors.New("lacks children")
	ErrTargetNil  = errors.New("decode target is nil")
	ErrNonPointer = errors.New("decode target is not a pointer")
	ErrDecode     = errors.New("failed to decode element")

	ErrUnserializable = errors.New("cannot be serialized")
)

func (e *ParseError) Error() string {
	var buffer strings.Builder

	fmt.Fprintf(&buffer, "%d:%d: %v", e.Line, e.Col, e.Err)
	if e.Cause != nil {
		fmt.Fprintf(&buffer, ": %v", e.Cause)
	}
	if e.Tag != "" {
		fmt.Fprintf(&buffer, " (in %s at offset %d)", e.Tag, e.TagPos)
	}

	return buffer.String()
}

// Unwrap exposes both the sentinel & the cause to errors.Is.
func (e *ParseError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// position converts a byte offset into a 1-based line & column.
func position(src string, pos int) (line, col int) {
	if pos > len(src) {
		pos = len(src)
	}

	line = strings.Count(src[:pos], "\n") + 1
	col = pos - strings.LastIndexByte(src[:pos], '\n')

	return
}
