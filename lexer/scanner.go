// SPDX-License-Identifier: MIT
package lexer

type (
	// Scanner classifies the bytes of a source as lying inside or outside string literals.
	//
	// The Scanner is the single literal tracker of this package; splitting, searching, comment
	// stripping & statement lexing all step through one.
	Scanner struct {
		src       string
		delimiter byte

		// pos is the index of the next byte to classify.
		pos int

		inLiteral    bool
		literalStart int
	}
)

const (
	// DefaultDelimiter is the byte opening & closing a string literal.
	DefaultDelimiter = '"'

	escapeByte = '\\'
)

// NewScanner creates a Scanner positioned at the start of src.
func NewScanner(src string, delimiter byte) *Scanner {
	return &Scanner{src: src, delimiter: delimiter, literalStart: -1}
}

// Scan classifies the byte under the cursor & advances past it.
//
// ok is false once the source is exhausted. Delimiter bytes are reported as part of the literal
// they open or close.
//
// A delimiter closes a literal unless the byte immediately before it is a backslash. Only one
// byte is looked at, so a delimiter following an escaped backslash (`\\"`) does not close.
func (s *Scanner) Scan() (index int, inLiteral bool, ok bool) {
	if s.pos >= len(s.src) {
		index, inLiteral = s.pos, s.inLiteral
		return
	}

	index, ok = s.pos, true
	s.pos++

	c := s.src[index]
	if s.inLiteral {
		if c == s.delimiter && s.src[index-1] != escapeByte {
			s.inLiteral = false
		}
		inLiteral = true

		return
	}

	if c == s.delimiter {
		s.inLiteral, s.literalStart = true, index
		inLiteral = true
	}

	return
}

// Skip advances the cursor by n bytes without classifying them.
//
// Callers use this for regions they have classified themselves (e.g. comments); it must only be
// used outside literals.
func (s *Scanner) Skip(n int) {
	if s.pos += n; s.pos > len(s.src) {
		s.pos = len(s.src)
	}
}

// Pos returns the index of the next byte to be scanned.
func (s *Scanner) Pos() int { return s.pos }

// Done reports whether the source is exhausted.
func (s *Scanner) Done() bool { return s.pos >= len(s.src) }

// Peek returns the byte under the cursor without classifying it, 0 at the end of the source.
func (s *Scanner) Peek() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

// HasPrefix reports whether the unscanned source starts with prefix.
func (s *Scanner) HasPrefix(prefix string) bool {
	return len(s.src)-s.pos >= len(prefix) && s.src[s.pos:s.pos+len(prefix)] == prefix
}

// InLiteral reports whether the last scanned byte left the Scanner inside a literal.
func (s *Scanner) InLiteral() bool { return s.inLiteral }

// LiteralStart returns the index of the delimiter that opened the most recent literal, -1 if
// none was opened.
func (s *Scanner) LiteralStart() int { return s.literalStart }

// Source returns the scanned source.
func (s *Scanner) Source() string { return s.src }

// Delimiter returns the literal delimiter.
func (s *Scanner) Delimiter() byte { return s.delimiter }
