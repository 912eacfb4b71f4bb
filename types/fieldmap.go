// SPDX-License-Identifier: NONE
package types

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// FieldMap holds the named fields of a mission element.
	//
	// Keys are unique; setting an existing key overwrites its Value.
	FieldMap map[string]Value
)

const (
	ReadErrFmt = "failed to read (%s): %w"
)

// Field access errors.
var (
	ErrFieldNotFound = errors.New("field not found")
)

var (
	lLogger logrus.FieldLogger = logrus.New()
)

// SetLogger configures the package logger used to trace coercion failures.
func SetLogger(l logrus.FieldLogger) { lLogger = l }

// Set a field's Value.
func (f FieldMap) Set(key string, val Value) { f[key] = val }

// SetItem stores val at index of the array field key, converting a scalar field to an array.
func (f FieldMap) SetItem(key string, index int, val Value) { f[key] = f[key].WithItem(index, val) }

// Get a field's Value.
func (f FieldMap) Get(key string) (val Value, ok bool) {
	val, ok = f[key]
	return
}

// Keys lists the field names in sorted order.
func (f FieldMap) Keys() (keys []string) {
	keys = maps.Keys(f)
	slices.Sort(keys)

	return
}

// Merge another FieldMap into the current one, overwriting shared keys.
func (f FieldMap) Merge(data FieldMap) {
	for k, v := range data {
		f[k] = v
	}
}

// Clone copies the FieldMap.
func (f FieldMap) Clone() FieldMap { return maps.Clone(f) }

// Interface converts the FieldMap for generic decoders, see Value.Interface.
func (f FieldMap) Interface() map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		out[k] = v.Interface()
	}

	return out
}

// lookup obtains a field, failing with ErrFieldNotFound.
func (f FieldMap) lookup(key string) (val Value, err error) {
	var ok bool
	if val, ok = f[key]; !ok {
		err = fmt.Errorf(ReadErrFmt, key, ErrFieldNotFound)
	}

	return
}

// coerced wraps a coercion error with the field name.
func coerced(key string, val Value, err error) error {
	if err == nil {
		return nil
	}
	lLogger.Debugf("field: %s, kind: %v, value: %q", key, val.Kind(), val.Text())

	return fmt.Errorf(ReadErrFmt, key, err)
}

// GetString reads a field's text.
//
// Scalars of every kind have a textual form; arrays do not coerce.
func (f FieldMap) GetString(key string) (strVal string, err error) {
	val, err := f.lookup(key)
	if err != nil {
		return
	}

	if val.Kind() == KindArray {
		err = coerced(key, val, fmt.Errorf("%w: array to string", ErrCoercion))
		return
	}
	strVal = val.Text()

	return
}

// GetNumber reads a field as a float64.
func (f FieldMap) GetNumber(key string) (number float64, err error) {
	val, err := f.lookup(key)
	if err != nil {
		return
	}

	number, err = val.Number()
	err = coerced(key, val, err)

	return
}

// GetInt reads a field as an int, truncating fractions.
func (f FieldMap) GetInt(key string) (intVal int, err error) {
	number, err := f.GetNumber(key)
	intVal = int(number)

	return
}

// GetBool reads a field as a bool, see Value.Bool.
func (f FieldMap) GetBool(key string) (boolVal bool, err error) {
	val, err := f.lookup(key)
	if err != nil {
		return
	}

	boolVal, err = val.Bool()
	err = coerced(key, val, err)

	return
}

// GetArray reads an array field.
func (f FieldMap) GetArray(key string) (items []Value, err error) {
	val, err := f.lookup(key)
	if err != nil {
		return
	}

	items, err = val.Array()
	err = coerced(key, val, err)

	return
}

// GetStringSlice reads an array field as the text of its items.
func (f FieldMap) GetStringSlice(key string) (result StringSlice, err error) {
	items, err := f.GetArray(key)
	if err != nil {
		return
	}

	result = make(StringSlice, len(items))
	for index := range items {
		result[index] = items[index].Text()
	}

	return
}

// GetVector reads a field of space separated numbers, e.g. a position.
func (f FieldMap) GetVector(key string) (vector []float64, err error) {
	val, err := f.lookup(key)
	if err != nil {
		return
	}

	vector, err = val.Vector()
	err = coerced(key, val, err)

	return
}
