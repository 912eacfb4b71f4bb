// SPDX-License-Identifier: MIT
package lexer

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
)

func collect(ctx context.Context, l *Lexer) (items []Item) {
	go l.Lex(ctx)

	for {
		item, proceed := l.Item()
		if !proceed {
			return
		}
		items = append(items, item)
	}
}

func TestLexer_Lex(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantItems []Item
		wantErr   error
	}{
		{
			name:      "empty",
			src:       "",
			wantItems: []Item{{ID: ItemEOF}},
		},
		{
			name: "block",
			src:  `Foo() { bar = 5; baz = "a\"b"; };`,
			wantItems: []Item{
				{ID: ItemBlockOpen, Val: "Foo()", Pos: 0},
				{ID: ItemField, Val: "bar = 5", Pos: 8},
				{ID: ItemField, Val: `baz = "a\"b"`, Pos: 17},
				{ID: ItemBlockClose, Val: "}", Pos: 31},
				{ID: ItemEOF, Pos: 33},
			},
		},
		{
			name: "structural bytes inside literals",
			src:  "new Item(\"{\") {\n  s = \"};{\";\n}",
			wantItems: []Item{
				{ID: ItemBlockOpen, Val: `new Item("{")`, Pos: 0},
				{ID: ItemField, Val: `s = "};{"`, Pos: 18},
				{ID: ItemBlockClose, Val: "}", Pos: 29},
				{ID: ItemEOF, Pos: 30},
			},
		},
		{
			name: "comments and empty statements",
			src:  "// header\nA() { ; x = 1; /* gone; */ };",
			wantItems: []Item{
				{ID: ItemBlockOpen, Val: "A()", Pos: 10},
				{ID: ItemField, Val: "x = 1", Pos: 18},
				{ID: ItemBlockClose, Val: "}", Pos: 37},
				{ID: ItemEOF, Pos: 39},
			},
		},
		{
			name:    "unterminated literal",
			src:     `A() { x = "open; };`,
			wantErr: ErrUnterminatedLiteral,
		},
		{
			name: "unterminated literal within blocks",
			src:  "A() {\n  B() {\n    s = \"open;\n  };\n};",
			wantItems: []Item{
				{ID: ItemBlockOpen, Val: "A()", Pos: 0},
				{ID: ItemBlockOpen, Val: "B()", Pos: 8},
				{ID: ItemError, Pos: 36, Err: &Error{Err: ErrUnterminatedLiteral, Pos: 22}},
			},
		},
		{
			name: "unterminated comment after a field",
			src:  "A() { x = 1; /* open",
			wantItems: []Item{
				{ID: ItemBlockOpen, Val: "A()", Pos: 0},
				{ID: ItemField, Val: "x = 1", Pos: 6},
				{ID: ItemError, Pos: 13, Err: &Error{Err: ErrUnterminatedComment, Pos: 13}},
			},
		},
		{
			name:    "missing terminator",
			src:     `A() { x = 1 };`,
			wantErr: ErrMissingTerminator,
		},
		{
			name:    "trailing statement",
			src:     `x = 1`,
			wantErr: ErrMissingTerminator,
		},
		{
			name:    "stray block open",
			src:     `{ x = 1; };`,
			wantErr: ErrUnknownTokens,
		},
	}

	logger := logrus.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(WithLogger(logger), WithDebug(true), WithSource(tt.src))
			gotItems := collect(context.Background(), l)

			if tt.wantErr != nil {
				last := gotItems[len(gotItems)-1]
				if last.ID != ItemError || !errors.Is(last.Err, tt.wantErr) {
					t.Errorf("Lexer.Lex() last item = %+v, want error %v", last, tt.wantErr)
				}
				return
			}

			if !reflect.DeepEqual(gotItems, tt.wantItems) {
				t.Errorf("Lexer.Lex() = %+v, want %+v", gotItems, tt.wantItems)
			}
		})
	}
}

func TestLexer_Lex_cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(WithSource("A() { x = 1; };"))
	if items := collect(ctx, l); len(items) != 0 {
		t.Errorf("Lexer.Lex() on a cancelled context = %+v, want no items", items)
	}
}

func TestLexer_Counters(t *testing.T) {
	l := New(WithSource("A() { B() { }; }; C() { };"))
	collect(context.Background(), l)

	if l.BlockCounter() != 3 || l.EndCounter() != 3 {
		t.Errorf("Lexer counters = %d/%d, want 3/3", l.BlockCounter(), l.EndCounter())
	}
}

func BenchmarkLexer_Lex(b *testing.B) {
	src := `new SimGroup(MissionGroup) {
   new Item() {
      position = "1 2 3";
      dataBlock = "GemItem";
      collideable = "0"; // comment
   };
};`

	logger := logrus.New()
	ctx := context.Background()

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		b.StopTimer()
		l := New(WithLogger(logger), WithSource(src))
		b.StartTimer()

		go l.Lex(ctx)

		for {
			if item, proceed := l.Item(); !proceed || item.ID == ItemEOF {
				break
			}
		}
	}
}
