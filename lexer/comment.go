// SPDX-License-Identifier: MIT
package lexer

import (
	"strings"
)

const (
	lineComment       = "//"
	blockCommentStart = "/*"
	blockCommentEnd   = "*/"
)

// StripComments blanks `//` & `/* */` comments lying outside string literals.
//
// Comment bytes are replaced by spaces & newlines are kept, so offsets into the output are
// offsets into text. An unclosed literal or block comment yields an *Error locating its start.
func StripComments(text string, delimiter byte) (output string, err error) {
	if !strings.Contains(text, "/") {
		// No comments; only the literal balance needs checking.
		output = text
		err = checkLiterals(text, delimiter)

		return
	}

	buffer := []byte(text)
	s := NewScanner(text, delimiter)

	for !s.Done() {
		if !s.InLiteral() {
			switch {
			case s.HasPrefix(lineComment):
				start := s.Pos()
				end := strings.IndexByte(text[start:], '\n')
				if end < 0 {
					end = len(text) - start
				}
				blank(buffer[start : start+end])
				s.Skip(end)

				continue
			case s.HasPrefix(blockCommentStart):
				start := s.Pos()
				end := strings.Index(text[start+len(blockCommentStart):], blockCommentEnd)
				if end < 0 {
					err = &Error{Err: ErrUnterminatedComment, Pos: start}
					return
				}
				end += len(blockCommentStart) + len(blockCommentEnd)
				blank(buffer[start : start+end])
				s.Skip(end)

				continue
			}
		}

		s.Scan()
	}

	if s.InLiteral() {
		err = &Error{Err: ErrUnterminatedLiteral, Pos: s.LiteralStart()}
		return
	}
	output = string(buffer)

	return
}

// checkLiterals reports an unclosed literal in text.
func checkLiterals(text string, delimiter byte) error {
	s := NewScanner(text, delimiter)
	for {
		if _, _, ok := s.Scan(); !ok {
			break
		}
	}

	if s.InLiteral() {
		return &Error{Err: ErrUnterminatedLiteral, Pos: s.LiteralStart()}
	}

	return nil
}

// blank replaces everything but line breaks with spaces.
func blank(b []byte) {
	for index := range b {
		if b[index] != '\n' && b[index] != '\r' {
			b[index] = ' '
		}
	}
}
