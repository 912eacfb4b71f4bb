// SPDX-License-Identifier: NONE
package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type (
	// ValueKind identifies the variant held by a Value.
	ValueKind int

	// Value is a loosely typed mission field value.
	//
	// Scalars keep their textual form & are coerced on demand; arrays hold scalar items in index
	// order.
	Value struct {
		kind  ValueKind
		text  string
		items []Value
	}
)

const (
	_ ValueKind = iota // Consume 0, the zero Value holds no kind.

	// KindString is a quoted, unescaped literal.
	KindString
	// KindNumber is an unquoted numeric literal.
	KindNumber
	// KindReference is an unquoted bare word naming another object, e.g. a datablock.
	KindReference
	// KindArray is a sequence built from indexed assignments.
	KindArray
)

const numberBytes = "0123456789+-.eE"

// Coercion errors.
var (
	ErrCoercion = errors.New("value not coercible")
)

var kindNames = map[ValueKind]string{
	KindString:    "string",
	KindNumber:    "number",
	KindReference: "reference",
	KindArray:     "array",
}

func (k ValueKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "none"
}

// NewString creates a KindString Value.
func NewString(s string) Value { return Value{kind: KindString, text: s} }

// NewNumber creates a KindNumber Value from its textual form.
func NewNumber(text string) Value { return Value{kind: KindNumber, text: text} }

// NewReference creates a KindReference Value.
func NewReference(name string) Value { return Value{kind: KindReference, text: name} }

// NewArray creates a KindArray Value.
func NewArray(items ...Value) Value {
	return Value{kind: KindArray, items: append([]Value{}, items...)}
}

// ParseBare classifies unquoted field text as a number or a reference.
func ParseBare(text string) Value {
	if IsNumeric(text) {
		return NewNumber(text)
	}
	return NewReference(text)
}

// IsNumeric reports whether text is a decimal (or exponent) number literal.
//
// Words strconv accepts such as "inf" or "nan" are not numeric, nor are hex floats.
func IsNumeric(text string) bool {
	_, ok := parseNumber(text)
	return ok
}

// parseNumber converts decimal number text, the only numbers a mission holds.
func parseNumber(text string) (number float64, ok bool) {
	if text == "" || strings.IndexByte("0123456789+-.", text[0]) < 0 {
		return
	}
	for index := range text {
		if strings.IndexByte(numberBytes, text[index]) < 0 {
			return
		}
	}

	number, err := strconv.ParseFloat(text, 64)
	return number, err == nil
}

// Kind obtains the Value's variant.
func (v Value) Kind() ValueKind { return v.kind }

// IsZero reports whether the Value holds nothing.
func (v Value) IsZero() bool { return v.kind == 0 }

// Text obtains the textual form of a scalar; arrays yield their items joined by spaces.
func (v Value) Text() string {
	if v.kind != KindArray {
		return v.text
	}

	texts := make([]string, len(v.items))
	for index := range v.items {
		texts[index] = v.items[index].text
	}

	return strings.Join(texts, " ")
}

// String is the fmt.Stringer implementation for Value.
func (v Value) String() string {
	if v.kind == KindArray {
		return fmt.Sprint(v.items)
	}
	return v.text
}

// Len obtains the number of array items, 0 for scalars.
func (v Value) Len() int { return len(v.items) }

// Number coerces the Value to a float64.
func (v Value) Number() (number float64, err error) {
	if v.kind == KindArray || v.kind == 0 {
		err = fmt.Errorf("%w: %s to number", ErrCoercion, v.kind)
		return
	}

	var ok bool
	if number, ok = parseNumber(strings.TrimSpace(v.text)); !ok {
		err = fmt.Errorf("%w: %q to number", ErrCoercion, v.text)
	}

	return
}

// Bool coerces the Value to a bool.
//
// Numbers are true when non-zero; text accepts true/false, yes/no, on/off & numeric text. Empty
// text is false.
func (v Value) Bool() (b bool, err error) {
	switch v.kind {
	case KindArray, 0:
		err = fmt.Errorf("%w: %s to bool", ErrCoercion, v.kind)
		return
	case KindNumber:
		var number float64
		number, err = v.Number()
		b = number != 0

		return
	}

	switch strings.ToLower(strings.TrimSpace(v.text)) {
	case "", "false", "no", "off":
		return
	case "true", "yes", "on":
		b = true
		return
	}

	number, ok := parseNumber(strings.TrimSpace(v.text))
	if !ok {
		err = fmt.Errorf("%w: %q to bool", ErrCoercion, v.text)
		return
	}
	b = number != 0

	return
}

// Array obtains the items of a KindArray Value.
func (v Value) Array() (items []Value, err error) {
	if v.kind != KindArray {
		err = fmt.Errorf("%w: %s to array", ErrCoercion, v.kind)
		return
	}
	items = append([]Value{}, v.items...)

	return
}

// Vector coerces space separated numeric text, e.g. a position "1 2 3", to a float64 slice.
func (v Value) Vector() (vector []float64, err error) {
	if v.kind == KindArray || v.kind == 0 {
		err = fmt.Errorf("%w: %s to vector", ErrCoercion, v.kind)
		return
	}

	return ParseVector(v.text)
}

// ParseVector converts space separated numeric text to a float64 slice.
func ParseVector(text string) (vector []float64, err error) {
	fields := strings.Fields(text)
	if len(fields) < 1 {
		err = fmt.Errorf("%w: %q to vector", ErrCoercion, text)
		return
	}

	vector = make([]float64, len(fields))
	for index := range fields {
		var ok bool
		if vector[index], ok = parseNumber(fields[index]); !ok {
			err = fmt.Errorf("%w: %q to vector", ErrCoercion, text)
			vector = nil
			return
		}
	}

	return
}

// WithItem returns a KindArray Value with item stored at index.
//
// Scalars are replaced by a new array; gaps before index are filled with empty strings.
func (v Value) WithItem(index int, item Value) Value {
	var items []Value
	if v.kind == KindArray {
		items = append(items, v.items...)
	}

	for len(items) <= index {
		items = append(items, NewString(""))
	}
	items[index] = item

	return Value{kind: KindArray, items: items}
}

// Interface converts the Value for generic decoders: scalars become their text, arrays a []any
// of item texts.
func (v Value) Interface() any {
	if v.kind != KindArray {
		return v.text
	}

	list := make([]any, len(v.items))
	for index := range v.items {
		list[index] = v.items[index].text
	}

	return list
}
