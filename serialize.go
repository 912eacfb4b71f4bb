// SPDX-License-Identifier: MIT
package mission

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/fisherprime/mission/lexer"
	"gitlab.com/fisherprime/mission/types"
)

const (
	indentUnit = "   "
)

// Serialize transforms a List into mission source.
//
// Fields are written in name order, so serializing a parsed List & parsing the output yields an
// equivalent tree. An empty array is written as an empty string. Text ending in a backslash
// cannot be quoted & fails with ErrUnserializable.
func (l List) Serialize(ctx context.Context, cfg *lexer.Config) (output string, err error) {
	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
	}

	if cfg == nil {
		cfg = lexer.DefaultConfig()
	}
	cfg.Validate()

	serCtx, serCancel := context.WithCancel(ctx)
	defer serCancel()

	var serErr error

	serChan := make(chan string)
	go func() {
		defer close(serChan)

		for _, e := range l {
			if serErr = e.serialize(serCtx, cfg.Delimiter, 0, serChan); serErr != nil {
				return
			}
		}
	}()

	var buffer strings.Builder
	for val := range serChan {
		if _, err = buffer.WriteString(val); err != nil {
			// Invalidate serialization output.
			return
		}
	}
	if err = ctx.Err(); err != nil {
		return
	}
	if err = serErr; err != nil {
		return
	}
	output = buffer.String()

	if cfg.Debug {
		cfg.Logger.Debugf("serialized %d elements into %d bytes", l.Count(), len(output))
	}

	return
}

// Serialize transforms an Element & its descendants into mission source.
func (e *Element) Serialize(ctx context.Context, cfg *lexer.Config) (string, error) {
	return List{e}.Serialize(ctx, cfg)
}

// serialize performs the serialization grunt work, pushing one line per send.
func (e *Element) serialize(ctx context.Context, delimiter byte, depth int, serChan chan<- string) error {
	if e == nil {
		return nil
	}
	indent := strings.Repeat(indentUnit, depth)

	send := func(line string) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case serChan <- indent + line + "\n":
			return nil
		}
	}

	header, err := e.header(delimiter)
	if err != nil {
		return err
	}
	if err = send(header + " {"); err != nil {
		return err
	}

	for _, name := range e.fields.Keys() {
		val := e.fields[name]
		items, _ := val.Array()

		if val.Kind() != types.KindArray || len(items) < 1 {
			text, err := formatValue(val, delimiter)
			if err != nil {
				return fmt.Errorf("%w: field %s of %s", err, name, e.tag)
			}
			if err = send(fmt.Sprintf("%s%s = %s;", indentUnit, name, text)); err != nil {
				return err
			}
			continue
		}

		for index := range items {
			text, err := formatValue(items[index], delimiter)
			if err != nil {
				return fmt.Errorf("%w: field %s[%d] of %s", err, name, index, e.tag)
			}
			if err = send(fmt.Sprintf("%s%s[%d] = %s;", indentUnit, name, index, text)); err != nil {
				return err
			}
		}
	}

	for _, child := range e.children {
		if err = child.serialize(ctx, delimiter, depth+1, serChan); err != nil {
			return err
		}
	}

	return send("};")
}

// header renders `[keyword ]Tag(Name[ : Inherits])`.
func (e *Element) header(delimiter byte) (string, error) {
	var buffer strings.Builder

	if e.keyword != "" {
		buffer.WriteString(e.keyword)
		buffer.WriteByte(' ')
	}
	buffer.WriteString(e.tag)
	buffer.WriteByte('(')

	name, err := formatName(e.name, delimiter)
	if err != nil {
		return "", fmt.Errorf("%w: name of %s", err, e.tag)
	}
	buffer.WriteString(name)

	if e.inherits != "" {
		parent, err := formatName(e.inherits, delimiter)
		if err != nil {
			return "", fmt.Errorf("%w: parent of %s", err, e.tag)
		}
		buffer.WriteString(" : ")
		buffer.WriteString(parent)
	}
	buffer.WriteByte(')')

	return buffer.String(), nil
}

// formatValue renders a scalar; numbers & references stay bare when they would re-parse as such.
func formatValue(val types.Value, delimiter byte) (string, error) {
	text := val.Text()

	switch val.Kind() {
	case types.KindNumber:
		if types.IsNumeric(text) {
			return text, nil
		}
	case types.KindReference:
		if isBare(text, delimiter) && !types.IsNumeric(text) {
			return text, nil
		}
	}

	return quote(text, delimiter)
}

// formatName renders an object name, quoting it when it cannot stand bare.
func formatName(name string, delimiter byte) (string, error) {
	if name == "" || isBare(name, delimiter) {
		return name, nil
	}
	return quote(name, delimiter)
}

func isBare(text string, delimiter byte) bool {
	return text != "" && strings.IndexFunc(text, isSpaceOrStructural) < 0 &&
		strings.IndexByte(text, delimiter) < 0 && strings.IndexByte(text, ':') < 0 &&
		strings.IndexByte(text, '\\') < 0 && !strings.Contains(text, "//") && !strings.Contains(text, "/*")
}

// quote delimits escaped text.
//
// A trailing backslash would escape the closing delimiter.
func quote(text string, delimiter byte) (string, error) {
	if strings.HasSuffix(text, `\`) {
		return "", fmt.Errorf("%w: %q ends in a backslash", ErrUnserializable, text)
	}
	return string(delimiter) + lexer.Escape(text, delimiter) + string(delimiter), nil
}
