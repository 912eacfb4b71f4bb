// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Option defines the Lexer functional option type
	Option func(*Lexer)
)

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithDelimiter configures the string literal delimiter.
func WithDelimiter(delimiter byte) Option {
	return func(l *Lexer) {
		if delimiter != emptyByte {
			l.delimiter = delimiter
		}
	}
}

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(l *Lexer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithSource configures the source option.
func WithSource(source string) Option { return func(l *Lexer) { l.source = source } }
