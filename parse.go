// SPDX-License-Identifier: MIT
package mission

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"gitlab.com/fisherprime/mission/lexer"
	"gitlab.com/fisherprime/mission/types"
)

type (
	// parser holds the state of one Parse invocation.
	parser struct {
		src       string
		delimiter byte
		cfg       *Config
		l         *lexer.Lexer
	}
)

const (
	keywordNew       = "new"
	keywordDatablock = "datablock"
)

// Parse transforms a mission source into its top-level Elements.
//
// A failure yields no Elements & a *ParseError for malformed input.
func Parse(ctx context.Context, src string, opts ...lexer.Option) (roots List, err error) {
	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
	}

	// Stops the lexer should parsing end early.
	lexCtx, lexCancel := context.WithCancel(ctx)
	defer lexCancel()

	l := lexer.New(append(append([]lexer.Option{}, opts...), lexer.WithSource(src))...)
	go l.Lex(lexCtx)

	p := &parser{
		src:       src,
		delimiter: l.Delimiter(),
		cfg:       &Config{Logger: l.Logger(), Debug: l.Debug()},
		l:         l,
	}

	defer func() {
		if err == nil {
			return
		}

		// Skip expensive operation if not debug.
		if p.cfg.Debug {
			p.cfg.Logger.Debugf("parse failed: %v\npartial tree: %s", err, spew.Sdump(roots))
		}
		roots = nil
	}()

	for {
		item, proceed := l.Item()
		if !proceed {
			err = p.closed(ctx)
			return
		}

		switch item.ID {
		case lexer.ItemEOF:
			if p.cfg.Debug {
				p.cfg.Logger.Debugf("parsed %d roots, %d blocks", len(roots), l.BlockCounter())
			}
			return
		case lexer.ItemError:
			err = p.lexError(item, nil)
			return
		case lexer.ItemField:
			err = p.errorf(ErrFieldOutsideBlock, item.Pos, nil, "%q", item.Val)
			return
		case lexer.ItemBlockClose:
			err = p.errorf(ErrUnexpectedToken, item.Pos, nil, "'}' without an open block")
			return
		case lexer.ItemBlockOpen:
			var e *Element
			if e, err = p.parseBlock(ctx, item); err != nil {
				return
			}
			roots = append(roots, e)
		}
	}
}

// parseBlock materialises a block & its descendants, consuming Items up to its end.
func (p *parser) parseBlock(ctx context.Context, header lexer.Item) (e *Element, err error) {
	if e, err = p.parseHeader(header); err != nil {
		return
	}

	for {
		item, proceed := p.l.Item()
		if !proceed {
			err = p.closed(ctx)
			return
		}

		switch item.ID {
		case lexer.ItemEOF:
			err = p.errorf(ErrUnterminatedBlock, e.pos, e, "%s opened at offset %d", e.tag, e.pos)
			return
		case lexer.ItemError:
			err = p.lexError(item, e)
			return
		case lexer.ItemField:
			if err = p.parseField(e, item); err != nil {
				return
			}
		case lexer.ItemBlockOpen:
			var child *Element
			if child, err = p.parseBlock(ctx, item); err != nil {
				return
			}
			e.AddChild(child)
		case lexer.ItemBlockClose:
			return
		}
	}
}

// parseHeader reads `[new|datablock] Tag(Name[ : Parent])`.
func (p *parser) parseHeader(item lexer.Item) (e *Element, err error) {
	text := item.Val

	open := lexer.IndexAny(text, "()", 0, p.delimiter)
	if open < 0 || text[open] != '(' {
		err = p.errorf(ErrUnexpectedToken, item.Pos, nil, "block header %q lacks '('", text)
		return
	}
	end := lexer.IndexOf(text, ")", open, p.delimiter)
	if end < 0 || strings.TrimSpace(text[end+1:]) != "" {
		err = p.errorf(ErrUnexpectedToken, item.Pos, nil, "block header %q is not closed by ')'", text)
		return
	}

	var keyword, tag string
	switch words := strings.Fields(text[:open]); {
	case len(words) == 1:
		tag = words[0]
	case len(words) == 2 && isKeyword(words[0]):
		keyword, tag = strings.ToLower(words[0]), words[1]
	}
	if !isIdent(tag) {
		err = p.errorf(ErrUnexpectedToken, item.Pos, nil, "invalid block header %q", text)
		return
	}

	var name, inherits string
	inner := text[open+1 : end]
	if colon := lexer.IndexOf(inner, ":", 0, p.delimiter); colon > -1 {
		name, inherits = inner[:colon], inner[colon+1:]
	} else {
		name = inner
	}

	if name, err = p.objectName(item, name); err != nil {
		return
	}
	if inherits, err = p.objectName(item, inherits); err != nil {
		return
	}

	e = New(tag, WithConfig(p.cfg), WithKeyword(keyword), WithName(name), WithInherits(inherits),
		WithPos(item.Pos))

	return
}

// objectName validates a header's object name, unquoting it if necessary.
func (p *parser) objectName(item lexer.Item, text string) (name string, err error) {
	name = strings.TrimSpace(text)
	if name == "" {
		return
	}

	if literal, ok := p.literal(name); ok {
		name = literal
		return
	}

	if strings.IndexFunc(name, isSpaceOrStructural) > -1 || strings.IndexByte(name, p.delimiter) > -1 {
		err = p.errorf(ErrUnexpectedToken, item.Pos, nil, "invalid object name %q", name)
	}

	return
}

// parseField reads `name = value` or `name[index] = value` into e.
func (p *parser) parseField(e *Element, item lexer.Item) (err error) {
	text := item.Val

	eq := lexer.IndexOf(text, "=", 0, p.delimiter)
	if eq < 0 {
		return p.errorf(ErrUnexpectedToken, item.Pos, e, "assignment %q lacks '='", text)
	}
	lhs, rhs := strings.TrimSpace(text[:eq]), strings.TrimSpace(text[eq+1:])

	name, index, indexed := lhs, 0, false
	if strings.HasSuffix(lhs, "]") {
		bracket := strings.IndexByte(lhs, '[')
		if bracket < 0 {
			return p.errorf(ErrUnexpectedToken, item.Pos, e, "malformed field name %q", lhs)
		}

		if index, err = strconv.Atoi(strings.TrimSpace(lhs[bracket+1 : len(lhs)-1])); err != nil || index < 0 {
			return p.errorf(ErrUnexpectedToken, item.Pos, e, "invalid array index in %q", lhs)
		}
		name, indexed = strings.TrimSpace(lhs[:bracket]), true
	}
	if !isIdent(name) {
		return p.errorf(ErrUnexpectedToken, item.Pos, e, "invalid field name %q", lhs)
	}

	val, err := p.parseValue(rhs)
	if err != nil {
		return p.errorf(ErrUnexpectedToken, item.Pos, e, "field %s: %v", name, err)
	}

	if indexed {
		e.SetItem(name, index, val)
		return
	}
	e.Set(name, val)

	return
}

// parseValue classifies a field's right hand side.
func (p *parser) parseValue(text string) (val types.Value, err error) {
	if text == "" {
		err = errors.New("missing value")
		return
	}

	if literal, ok := p.literal(text); ok {
		val = types.NewString(literal)
		return
	}

	if strings.IndexByte(text, p.delimiter) > -1 {
		err = fmt.Errorf("unsupported expression %q", text)
		return
	}
	if strings.IndexFunc(text, isSpaceOrStructural) > -1 {
		err = fmt.Errorf("unquoted value %q contains separators", text)
		return
	}
	val = types.ParseBare(text)

	return
}

// literal decodes text consisting of exactly one string literal.
func (p *parser) literal(text string) (content string, ok bool) {
	if len(text) < 2 || text[0] != p.delimiter {
		return
	}

	s := lexer.NewScanner(text, p.delimiter)
	for {
		index, _, more := s.Scan()
		if !more {
			return
		}

		if index > 0 && !s.InLiteral() {
			// The literal closed; it must be the end of text.
			if index != len(text)-1 {
				return
			}
			return lexer.Unescape(text[1:index]), true
		}
	}
}

// lexError converts a lexer failure into a *ParseError.
func (p *parser) lexError(item lexer.Item, enclosing *Element) error {
	if errors.Is(item.Err, lexer.ErrUnterminatedLiteral) {
		start := item.Pos

		var lexErr *lexer.Error
		if errors.As(item.Err, &lexErr) {
			start = lexErr.Pos
		}
		return p.errorf(ErrUnterminatedLiteral, item.Pos, enclosing, "opened at offset %d", start)
	}

	pErr := p.errorf(ErrUnexpectedToken, item.Pos, enclosing, "")
	pErr.Cause = item.Err

	return pErr
}

// closed reports a lexer that stopped without an ItemEOF.
func (p *parser) closed(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.errorf(ErrUnexpectedToken, len(p.src), nil, "unexpected end of input")
}

// errorf creates a *ParseError at pos, within the enclosing Element if any.
func (p *parser) errorf(sentinel error, pos int, enclosing *Element, format string, args ...any) *ParseError {
	pErr := &ParseError{Err: sentinel, Pos: pos, TagPos: -1}
	pErr.Line, pErr.Col = position(p.src, pos)

	if format != "" {
		pErr.Cause = fmt.Errorf(format, args...)
	}
	if enclosing != nil {
		pErr.Tag, pErr.TagPos = enclosing.tag, enclosing.pos
	}

	return pErr
}

// isKeyword reports whether word may lead a block header.
func isKeyword(word string) bool {
	return strings.EqualFold(word, keywordNew) || strings.EqualFold(word, keywordDatablock)
}

// isIdent reports whether s is a Torque identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for index := 0; index < len(s); index++ {
		c := s[index]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && index > 0:
		default:
			return false
		}
	}

	return true
}

func isSpaceOrStructural(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '\v', '\f', '{', '}', ';', '(', ')', '=':
		return true
	}
	return false
}
