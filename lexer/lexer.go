// SPDX-License-Identifier: MIT
package lexer

// REF: https://gitlab.com/fisherprime/go-ddbms/-/blob/master/internal/v1/lexer.go
// REF: https://talks.golang.org/2011/lex.slide

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

type (
	// NextOperation type for the next function to be executed
	NextOperation func(context.Context) NextOperation

	// Lexer splits a mission source into block headers, field statements & block ends.
	//
	// Statement boundaries are located with a Scanner so delimiters inside string literals are
	// never treated as structure.
	Lexer struct {
		debug     bool
		delimiter byte
		logger    logrus.FieldLogger

		// c is a channel for communicating lexed Items.
		c chan Item

		// source is the raw input.
		source string

		// scanner walks the comment-free source.
		scanner *Scanner

		// pending is an unclosed literal or comment, reported once the source preceding it is
		// lexed.
		pending *Error

		blockCounter int
		endCounter   int
	}

	// Error locates a lexing error within the source.
	Error struct {
		Err error
		Pos int
	}
)

const (
	defBufferSize = 10

	// Error context length.
	sourceLimit = 32

	blockOpen  = '{'
	blockClose = '}'
	terminator = ';'

	structural = "{};"
)

// Lexing errors.
var (
	ErrUnterminatedLiteral = errors.New("unterminated string literal")
	ErrUnterminatedComment = errors.New("unterminated block comment")
	ErrMissingTerminator   = errors.New("statement lacks a terminating ';'")
	ErrUnknownTokens       = errors.New("unknown tokens")
)

// Improves on performance compared to ORs.
var whitespace = [256]bool{
	' ':  true,
	'\t': true,
	'\r': true,
	'\n': true,
	'\v': true,
	'\f': true,
}

// New creates a new Lexer for the configured source.
func New(opts ...Option) *Lexer {
	l := &Lexer{
		delimiter: DefaultDelimiter,
		logger:    logrus.New(),

		c: make(chan Item, defBufferSize),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (e *Error) Error() string { return fmt.Sprintf("%v at offset %d", e.Err, e.Pos) }

func (e *Error) Unwrap() error { return e.Err }

// Debug reports whether debug logging is enabled.
func (l *Lexer) Debug() bool { return l.debug }

// Delimiter obtains the configured literal delimiter.
func (l *Lexer) Delimiter() byte { return l.delimiter }

// BlockCounter obtains the number of lexed block headers.
func (l *Lexer) BlockCounter() int { return l.blockCounter }

// EndCounter obtains the number of lexed block ends.
func (l *Lexer) EndCounter() int { return l.endCounter }

// Logger obtains the logger.
func (l *Lexer) Logger() logrus.FieldLogger { return l.logger }

// Lex lexes the input by executing state functions.
//
// The Item channel is closed on return; a cancelled ctx stops the Lexer without further Items.
func (l *Lexer) Lex(ctx context.Context) {
	defer close(l.c)

	select {
	case <-ctx.Done():
		return
	default:
	}

	stripped, err := StripComments(l.source, l.delimiter)
	if err != nil {
		if !errors.As(err, &l.pending) {
			l.EmitError(ctx, 0, err)
			return
		}

		// Lex up to the unclosed token so its enclosing blocks are known.
		if stripped, err = StripComments(l.source[:l.pending.Pos], l.delimiter); err != nil {
			l.EmitError(ctx, l.pending.Pos, err)
			return
		}
	}
	l.scanner = NewScanner(stripped, l.delimiter)

	for stateFunction := l.LexWhitespace; stateFunction != nil; {
		stateFunction = stateFunction(ctx)
	}
}

// LexWhitespace discards whitespace & dispatches on the next structural byte.
func (l *Lexer) LexWhitespace(ctx context.Context) NextOperation {
	select {
	case <-ctx.Done():
		return nil
	default:
	}

	l.skipWhitespace()

	start := l.scanner.Pos()
	switch l.scanner.Peek() {
	case emptyByte:
		if l.scanner.Done() {
			if l.pending != nil {
				l.emitPending(ctx)
				return nil
			}
			l.Emit(ctx, ItemEOF, start, "")
			return nil
		}
		return l.LexStatement
	case blockClose:
		l.scanner.Scan()

		// A block end may carry a trailing ';'.
		l.skipWhitespace()
		if l.scanner.Peek() == terminator {
			l.scanner.Scan()
		}

		l.endCounter++
		l.Emit(ctx, ItemBlockClose, start, string(blockClose))

		return l.LexWhitespace
	case terminator:
		// Empty statement.
		l.scanner.Scan()
		return l.LexWhitespace
	case blockOpen:
		l.EmitError(ctx, start, fmt.Errorf("%w: %q", ErrUnknownTokens, l.excerpt(start)))
		return nil
	default:
		return l.LexStatement
	}
}

// LexStatement consumes a block header or field statement up to its structural terminator.
func (l *Lexer) LexStatement(ctx context.Context) NextOperation {
	src := l.scanner.Source()
	start := l.scanner.Pos()

	for {
		index, inLiteral, ok := l.scanner.Scan()
		if !ok {
			if l.pending != nil {
				l.emitPending(ctx)
				return nil
			}
			l.EmitError(ctx, start, fmt.Errorf("%w: %q", ErrMissingTerminator, l.excerpt(start)))
			return nil
		}
		if inLiteral || strings.IndexByte(structural, src[index]) < 0 {
			continue
		}

		statement := strings.TrimSpace(src[start:index])
		switch src[index] {
		case blockOpen:
			l.blockCounter++
			l.Emit(ctx, ItemBlockOpen, start, statement)
		case terminator:
			l.Emit(ctx, ItemField, start, statement)
		default:
			l.EmitError(ctx, start, fmt.Errorf("%w: %q", ErrMissingTerminator, l.excerpt(start)))
			return nil
		}

		return l.LexWhitespace
	}
}

// emitPending reports the unclosed token truncating the source.
//
// An unclosed literal is reported at the end of input, the *Error carrying its start.
func (l *Lexer) emitPending(ctx context.Context) {
	pos := l.pending.Pos
	if errors.Is(l.pending.Err, ErrUnterminatedLiteral) {
		pos = len(l.source)
	}

	l.EmitError(ctx, pos, l.pending)
}

// skipWhitespace advances the scanner over whitespace.
func (l *Lexer) skipWhitespace() {
	for !l.scanner.Done() && whitespace[l.scanner.Peek()] {
		l.scanner.Scan()
	}
}

// excerpt returns a bounded slice of the source starting at pos for error messages.
func (l *Lexer) excerpt(pos int) string {
	src := l.scanner.Source()

	end := pos + sourceLimit
	if end > len(src) {
		end = len(src)
	}
	if newline := strings.IndexByte(src[pos:end], '\n'); newline > -1 {
		end = pos + newline
	}

	return src[pos:end]
}

// Emit sends an Item over the communication channel.
//
// Returns false if ctx was cancelled before the Item was received.
func (l *Lexer) Emit(ctx context.Context, t ItemID, pos int, val string) bool {
	if l.debug {
		l.logger.Debugf("lexer Emit: %s at %d: %q", t, pos, val)
	}

	select {
	case <-ctx.Done():
		return false
	case l.c <- Item{ID: t, Pos: pos, Val: val}:
		return true
	}
}

// EmitError sends an error over the Lexer's channel, terminating the lex operation.
func (l *Lexer) EmitError(ctx context.Context, pos int, err error) {
	if l.debug {
		l.logger.Debugf("lexer EmitError: %v at %d", err, pos)
	}

	select {
	case <-ctx.Done():
	case l.c <- Item{ID: ItemError, Pos: pos, Err: err}:
	}
}

// Item return a lexed Item from the input.
func (l *Lexer) Item() (i Item, ok bool) {
	i, ok = <-l.c
	return
}
