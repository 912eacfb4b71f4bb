// SPDX-License-Identifier: NONE
package types

import (
	"strings"

	"golang.org/x/exp/slices"
)

type (
	// StringSlice for `string`.
	StringSlice []string
)

// Locate for `StringSlice`.
func (sl *StringSlice) Locate(val string) (resl int) {
	resl = -1

	for index := range *sl {
		if (*sl)[index] == val {
			resl = index
			return
		}
	}

	return
}

// LocateFold for `StringSlice`, matching case-insensitively.
func (sl *StringSlice) LocateFold(val string) (resl int) {
	resl = -1

	for index := range *sl {
		if strings.EqualFold((*sl)[index], val) {
			resl = index
			return
		}
	}

	return
}

// Sort for `StringSlice`.
func (sl *StringSlice) Sort() { slices.Sort(*sl) }

// UniqueAppend to `StringSlice`.
func (sl *StringSlice) UniqueAppend(values ...string) {
	for index := range values {
		newValue := values[index]
		if sl.Locate(newValue) > -1 {
			continue
		}

		*sl = append(*sl, newValue)
	}
}

// String is the `fmt.Stringer` interface implementation for `StringSlice`.
func (sl *StringSlice) String() string { return "[" + strings.Join(*sl, ",") + "]" }
