// SPDX-License-Identifier: MIT
package lexer

import (
	"strings"
)

// Split slices text around each sep byte lying outside string literals.
//
// The result always holds at least one part & joining the parts with sep reproduces text.
func Split(text string, sep, delimiter byte) (parts []string) {
	s := NewScanner(text, delimiter)

	last := 0
	for {
		index, inLiteral, ok := s.Scan()
		if !ok {
			break
		}
		if inLiteral || text[index] != sep {
			continue
		}

		parts = append(parts, text[last:index])
		last = index + 1
	}
	parts = append(parts, text[last:])

	return
}

// IndexOf returns the index of the first occurrence of search at or after start that begins
// outside a string literal, -1 if there is none.
//
// Literal state is tracked from the start of text, so a start inside a literal is handled.
func IndexOf(text, search string, start int, delimiter byte) int {
	if search == "" {
		return -1
	}

	s := NewScanner(text, delimiter)
	for {
		index, inLiteral, ok := s.Scan()
		if !ok {
			return -1
		}
		if inLiteral || index < start {
			continue
		}

		if strings.HasPrefix(text[index:], search) {
			return index
		}
	}
}

// IndexAny returns the index of the first byte of chars at or after start that lies outside a
// string literal, -1 if there is none.
func IndexAny(text, chars string, start int, delimiter byte) int {
	s := NewScanner(text, delimiter)
	for {
		index, inLiteral, ok := s.Scan()
		if !ok {
			return -1
		}
		if inLiteral || index < start {
			continue
		}

		if strings.IndexByte(chars, text[index]) > -1 {
			return index
		}
	}
}

// IndexIsInLiteral reports whether the byte at index is part of a string literal.
//
// Out of range indices are never in a literal.
func IndexIsInLiteral(text string, index int, delimiter byte) bool {
	if index < 0 || index >= len(text) {
		return false
	}

	s := NewScanner(text, delimiter)
	for {
		i, inLiteral, ok := s.Scan()
		if !ok {
			return false
		}
		if i == index {
			return inLiteral
		}
	}
}
