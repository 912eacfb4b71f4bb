// SPDX-License-Identifier: MIT
package lexer

type (
	// ItemID int holding an identifier for the Item tokens
	ItemID int

	// Item type holding the kind, text & position of a lexed statement.
	Item struct {
		Err error
		Val string // The statement text, trimmed of surrounding whitespace
		ID  ItemID // The type of this Item
		Pos int    // The starting position, (in bytes) of this Item
	}
)

// iota is used to define an incrementing number sequence for const
// declarations
const (
	_       ItemID = iota // Consume 0 to start actual numbering at 1.
	ItemError             // Notify occurrence of an `error`.
	ItemEOF               // End of the file
	ItemBlockOpen         // Block header preceding '{'.
	ItemBlockClose        // '}', optionally followed by ';'.
	ItemField             // Field assignment preceding ';'.
)

var itemNames = map[ItemID]string{
	ItemError:      "error",
	ItemEOF:        "EOF",
	ItemBlockOpen:  "block open",
	ItemBlockClose: "block close",
	ItemField:      "field",
}

func (i ItemID) String() string {
	if name, ok := itemNames[i]; ok {
		return name
	}
	return "unknown"
}
