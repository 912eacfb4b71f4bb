// SPDX-License-Identifier: MIT
package mission

import (
	"context"
	"errors"
	"fmt"

	"gitlab.com/fisherprime/mission/types"
)

type (
	// Element defines one parsed mission block.
	//
	// Synchronization is unnecessary, the type is designed for single write multiple read.
	Element struct {
		// cfg contains a pointer to a [Config] shared by all Elements of a parse.
		cfg *Config

		// keyword is the header's leading keyword: "new", "datablock" or empty.
		keyword string

		// tag is the element class name, e.g. "Item".
		tag string

		// name is the optional object name & inherits the optional parent object's name.
		name     string
		inherits string

		// pos is the header's byte offset in the source.
		pos int

		fields types.FieldMap

		// parent contains a reference to the enclosing Element, nil for roots.
		parent *Element

		// children holds the nested Elements in source order.
		children List
	}

	// List is a type wrapper for []*Element.
	List      []*Element
	LevelList []List
)

// New instantiates an [Element].
func New(tag string, options ...Option) *Element {
	e := &Element{
		cfg:    defConfig,
		tag:    tag,
		fields: make(types.FieldMap),
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

// WithConfig configures the [Element] [Config].
func WithConfig(cfg *Config) Option { return func(e *Element) { e.cfg = cfg } }

// WithName configures the object name.
func WithName(name string) Option { return func(e *Element) { e.name = name } }

// WithInherits configures the name of the object the [Element] copies its fields from.
func WithInherits(name string) Option { return func(e *Element) { e.inherits = name } }

// WithKeyword configures the header keyword.
func WithKeyword(keyword string) Option { return func(e *Element) { e.keyword = keyword } }

// WithPos configures the header's byte offset.
func WithPos(pos int) Option { return func(e *Element) { e.pos = pos } }

// WithField configures a field.
func WithField(name string, val types.Value) Option {
	return func(e *Element) { e.fields.Set(name, val) }
}

// Config retrieves the [Element]'s Config.
func (e *Element) Config() *Config { return e.cfg }

// Tag retrieves the element class name.
func (e *Element) Tag() string { return e.tag }

// Name retrieves the object name, empty for anonymous objects.
func (e *Element) Name() string { return e.name }

// Inherits retrieves the name of the object this one copies its fields from.
func (e *Element) Inherits() string { return e.inherits }

// Keyword retrieves the header keyword.
func (e *Element) Keyword() string { return e.keyword }

// Pos retrieves the header's byte offset.
func (e *Element) Pos() int { return e.pos }

// Parent retrieves a reference to the [Element]'s parent.
//
// Value is nil for root nodes.
func (e *Element) Parent() *Element { return e.parent }

// Children lists the immediate children in source order.
func (e *Element) Children() List { return append(List{}, e.children...) }

// AddChild appends a child, taking ownership of it.
func (e *Element) AddChild(child *Element) {
	child.parent = e
	e.children = append(e.children, child)
}

// Fields retrieves the [Element]'s fields.
func (e *Element) Fields() types.FieldMap { return e.fields }

// Field retrieves a field's raw value.
func (e *Element) Field(name string) (val types.Value, ok bool) { return e.fields.Get(name) }

// Set a field, overwriting a previous value.
func (e *Element) Set(name string, val types.Value) { e.fields.Set(name, val) }

// SetItem stores an array field item.
func (e *Element) SetItem(name string, index int, val types.Value) {
	e.fields.SetItem(name, index, val)
}

// Text reads a field's text.
func (e *Element) Text(name string) (string, error) { return e.fields.GetString(name) }

// Number reads a field as a float64.
func (e *Element) Number(name string) (float64, error) { return e.fields.GetNumber(name) }

// Bool reads a field as a bool.
func (e *Element) Bool(name string) (bool, error) { return e.fields.GetBool(name) }

// Array reads an array field.
func (e *Element) Array(name string) ([]types.Value, error) { return e.fields.GetArray(name) }

// Vector reads a field of space separated numbers.
func (e *Element) Vector(name string) ([]float64, error) { return e.fields.GetVector(name) }

// TextOr reads a field's text, falling back to def when absent or empty.
func (e *Element) TextOr(name, def string) string {
	if val, err := e.Text(name); err == nil && val != "" {
		return val
	}
	return def
}

// NumberOr reads a field as a float64, falling back to def when absent, zero or not numeric.
func (e *Element) NumberOr(name string, def float64) float64 {
	if val, err := e.Number(name); err == nil && val != 0 {
		return val
	}
	return def
}

// BoolOr reads a field as a bool, falling back to def when absent or not coercible.
func (e *Element) BoolOr(name string, def bool) bool {
	val, err := e.Bool(name)
	if err != nil {
		return def
	}
	return val
}

// Has reports whether a field is present.
func (e *Element) Has(name string) bool {
	_, ok := e.fields[name]
	return ok
}

// Depth obtains the number of ancestors.
func (e *Element) Depth() (depth int) {
	for node := e.parent; node != nil; node = node.parent {
		depth++
	}

	return
}

// Root obtains the top-level ancestor, the Element itself for roots.
func (e *Element) Root() (root *Element) {
	for root = e; root.parent != nil; root = root.parent {
	}

	return
}

// Resolve reads a field, following the inheritance chain of the Element when it lacks the field.
//
// Parents are located by name within the Element's tree, see [List.Resolve] for wider scopes.
func (e *Element) Resolve(ctx context.Context, name string) (types.Value, error) {
	return List{e.Root()}.Resolve(ctx, e, name)
}

// Resolve reads a field of e, locating the Elements it inherits from within the [List].
//
// A missing or cyclic parent ends the chain.
func (l List) Resolve(ctx context.Context, e *Element, name string) (val types.Value, err error) {
	chain, err := l.chain(ctx, e)
	if err != nil {
		return
	}

	for _, node := range chain {
		var ok bool
		if val, ok = node.fields.Get(name); ok {
			return
		}
	}
	err = fmt.Errorf(types.ReadErrFmt, name, types.ErrFieldNotFound)

	return
}

// Inherited obtains the fields of e merged over those of the Elements it inherits from.
func (l List) Inherited(ctx context.Context, e *Element) (fields types.FieldMap, err error) {
	chain, err := l.chain(ctx, e)
	if err != nil {
		return
	}

	fields = make(types.FieldMap)
	for index := len(chain) - 1; index > -1; index-- {
		fields.Merge(chain[index].fields)
	}

	return
}

// chain lists e followed by the Elements it inherits from, nearest first.
func (l List) chain(ctx context.Context, e *Element) (chain List, err error) {
	seen := map[*Element]struct{}{}

	for node := e; node != nil; {
		chain = append(chain, node)
		seen[node] = struct{}{}

		if node.inherits == "" {
			break
		}

		var next *Element
		if next, err = l.Locate(ctx, node.inherits); err != nil {
			if errors.Is(err, ErrNotFound) {
				err = nil
				break
			}
			return
		}
		if _, ok := seen[next]; ok {
			break
		}
		node = next
	}

	return
}
