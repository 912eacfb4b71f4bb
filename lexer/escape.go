// SPDX-License-Identifier: MIT
package lexer

import (
	"strings"
)

// Improves on performance compared to a map lookup.
var (
	unescapeTable = [256]byte{
		't': '\t',
		'v': '\v',
		'0': 0,
		'f': '\f',
		'n': '\n',
		'r': '\r',
	}
	unescapeSpecial = [256]bool{
		't': true,
		'v': true,
		'0': true,
		'f': true,
		'n': true,
		'r': true,
	}

	escapeTable = [256]byte{
		'\t': 't',
		'\v': 'v',
		0:    '0',
		'\f': 'f',
		'\n': 'n',
		'\r': 'r',
		'\\': '\\',
	}
)

// Unescape expands backslash escape sequences.
//
// A backslash & the byte following it decode to a single byte: t, v, 0, f, n & r map to their
// control characters, any other byte maps to itself. Scanning resumes after the decoded pair, so
// `\\n` yields a backslash followed by 'n'. A trailing backslash is kept as is.
func Unescape(s string) string {
	first := strings.IndexByte(s, escapeByte)
	if first < 0 || first == len(s)-1 {
		return s
	}

	var buffer strings.Builder
	buffer.Grow(len(s))
	buffer.WriteString(s[:first])

	for index := first; index < len(s); index++ {
		c := s[index]
		if c != escapeByte || index == len(s)-1 {
			buffer.WriteByte(c)
			continue
		}

		index++
		next := s[index]
		if unescapeSpecial[next] {
			next = unescapeTable[next]
		}
		buffer.WriteByte(next)
	}

	return buffer.String()
}

// Escape is the inverse of Unescape for literal content delimited by delimiter.
//
// Backslashes, the delimiter & the control characters of the escape table are escaped.
func Escape(s string, delimiter byte) string {
	var buffer strings.Builder
	buffer.Grow(len(s))

	for index := 0; index < len(s); index++ {
		c := s[index]
		switch {
		case c == delimiter:
			buffer.WriteByte(escapeByte)
			buffer.WriteByte(c)
		case escapeTable[c] != 0:
			buffer.WriteByte(escapeByte)
			buffer.WriteByte(escapeTable[c])
		default:
			buffer.WriteByte(c)
		}
	}

	return buffer.String()
}
