// SPDX-License-Identifier: MIT
package mission

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"gitlab.com/fisherprime/mission/lexer"
	"gitlab.com/fisherprime/mission/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		opts       []lexer.Option
		wantTags   []string
		wantFields []types.FieldMap
	}{
		{
			name:     "empty",
			src:      " \n\t",
			wantTags: []string{},
		},
		{
			name:     "fields",
			src:      `Foo() { bar = 5; baz = "a\"b"; };`,
			wantTags: []string{"Foo"},
			wantFields: []types.FieldMap{{
				"bar": types.NewNumber("5"),
				"baz": types.NewString(`a"b`),
			}},
		},
		{
			name:     "siblings",
			src:      "A() {};\nB() { x = -1.5e2; };",
			wantTags: []string{"A", "B"},
			wantFields: []types.FieldMap{
				{},
				{"x": types.NewNumber("-1.5e2")},
			},
		},
		{
			name:     "array accumulation",
			src:      `A() { list[0] = "a"; list[1] = "b"; };`,
			wantTags: []string{"A"},
			wantFields: []types.FieldMap{{
				"list": types.NewArray(types.NewString("a"), types.NewString("b")),
			}},
		},
		{
			name:     "array gap",
			src:      `A() { list[2] = 7; };`,
			wantTags: []string{"A"},
			wantFields: []types.FieldMap{{
				"list": types.NewArray(types.NewString(""), types.NewString(""), types.NewNumber("7")),
			}},
		},
		{
			name:     "last write wins",
			src:      `A() { x = 1; x = "two"; };`,
			wantTags: []string{"A"},
			wantFields: []types.FieldMap{{
				"x": types.NewString("two"),
			}},
		},
		{
			name:     "indexed replaces scalar",
			src:      `A() { x = 1; x[0] = 2; y[0] = 1; y = 3; };`,
			wantTags: []string{"A"},
			wantFields: []types.FieldMap{{
				"x": types.NewArray(types.NewNumber("2")),
				"y": types.NewNumber("3"),
			}},
		},
		{
			name:     "references",
			src:      `Item() { dataBlock = GemItem; };`,
			wantTags: []string{"Item"},
			wantFields: []types.FieldMap{{
				"dataBlock": types.NewReference("GemItem"),
			}},
		},
		{
			name:     "comments",
			src:      "// lead\nA() { /* x = 1; */ y = \"//\"; // z = 3;\n};",
			wantTags: []string{"A"},
			wantFields: []types.FieldMap{{
				"y": types.NewString("//"),
			}},
		},
		{
			name:     "escapes",
			src:      `A() { s = "tab\there\nline\\x"; };`,
			wantTags: []string{"A"},
			wantFields: []types.FieldMap{{
				"s": types.NewString("tab\there\nline\\x"),
			}},
		},
		{
			name:     "custom delimiter",
			src:      `A() { s = 'it\'s "quoted"'; };`,
			opts:     []lexer.Option{lexer.WithDelimiter('\'')},
			wantTags: []string{"A"},
			wantFields: []types.FieldMap{{
				"s": types.NewString(`it's "quoted"`),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, err := Parse(context.Background(), tt.src, tt.opts...)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if gotTags := roots.tagsInOrder(); !reflect.DeepEqual(gotTags, tt.wantTags) {
				t.Errorf("Parse() tags = %v, want %v", gotTags, tt.wantTags)
			}
			for index := range tt.wantFields {
				if got := roots[index].Fields(); !reflect.DeepEqual(got, tt.wantFields[index]) {
					t.Errorf("Parse() root %d fields = %v, want %v", index, got, tt.wantFields[index])
				}
			}
		})
	}
}

func TestParse_headers(t *testing.T) {
	tests := []struct {
		name         string
		src          string
		wantKeyword  string
		wantTag      string
		wantName     string
		wantInherits string
	}{
		{"anonymous", "Foo() {};", "", "Foo", "", ""},
		{"new", "new SimGroup(MissionGroup) {};", "new", "SimGroup", "MissionGroup", ""},
		{"datablock", "datablock ItemData(GemItem : BaseGem) {};", "datablock", "ItemData", "GemItem", "BaseGem"},
		{"keyword case", "NEW Item(Gem1) {};", "new", "Item", "Gem1", ""},
		{"quoted name", `new SimGroup("My (Group)") {};`, "new", "SimGroup", "My (Group)", ""},
		{"inherits only", "Trigger( : Base) {};", "", "Trigger", "", "Base"},
		{"spacing", "new  Sky ( Sky1 ) {};", "new", "Sky", "Sky1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, err := Parse(context.Background(), tt.src)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(roots) != 1 {
				t.Fatalf("Parse() roots = %d, want 1", len(roots))
			}

			e := roots[0]
			if e.Keyword() != tt.wantKeyword || e.Tag() != tt.wantTag || e.Name() != tt.wantName ||
				e.Inherits() != tt.wantInherits {
				t.Errorf("Parse() header = (%q %q %q %q), want (%q %q %q %q)",
					e.Keyword(), e.Tag(), e.Name(), e.Inherits(),
					tt.wantKeyword, tt.wantTag, tt.wantName, tt.wantInherits)
			}
		})
	}
}

func TestParse_nested(t *testing.T) {
	src := "new SimGroup(Outer) {\n   new Item(Inner) { x = 1; };\n   new Item(Second) {};\n};"

	roots, err := Parse(context.Background(), src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("Parse() roots = %d, want 1", len(roots))
	}

	outer := roots[0]
	if outer.Parent() != nil {
		t.Errorf("root Parent() = %v, want nil", outer.Parent())
	}

	children := outer.Children()
	if len(children) != 2 || children[0].Name() != "Inner" || children[1].Name() != "Second" {
		t.Fatalf("Children() = %v, want [Inner Second]", children)
	}
	if children[0].Parent() != outer {
		t.Errorf("child Parent() = %v, want %v", children[0].Parent(), outer)
	}
	if children[0].Pos() != 25 {
		t.Errorf("child Pos() = %d, want 25", children[0].Pos())
	}
	if got, _ := children[0].Number("x"); got != 1 {
		t.Errorf("child Number(x) = %v, want 1", got)
	}
}

func TestParse_errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
		wantPos int
		wantTag string
	}{
		{"unclosed block", "Foo() { bar = 5;", ErrUnterminatedBlock, 0, "Foo"},
		{"unclosed outer block", "Outer() { Inner() { x = 1; };", ErrUnterminatedBlock, 0, "Outer"},
		{"unclosed inner block", "Outer() { Inner() {", ErrUnterminatedBlock, 10, "Inner"},
		{"field outside block", "x = 1;", ErrFieldOutsideBlock, 0, ""},
		{"field after block", "A() {};\nx = 1;", ErrFieldOutsideBlock, 8, ""},
		{"stray close", "};", ErrUnexpectedToken, 0, ""},
		{"stray open", "A() { { }; };", ErrUnexpectedToken, 6, "A"},
		{"missing terminator", "A() { x = 1 };", ErrUnexpectedToken, 6, "A"},
		{"unterminated literal", `A() { x = "open; };`, ErrUnterminatedLiteral, 19, "A"},
		{"unterminated nested literal", "Outer() {\n  Inner() {\n    s = \"never closed;\n  };\n};", ErrUnterminatedLiteral, 52, "Inner"},
		{"unterminated top-level literal", `A() {}; "open`, ErrUnterminatedLiteral, 13, ""},
		{"unterminated comment", "A() { /* x = 1; };", ErrUnexpectedToken, 6, "A"},
		{"header without parens", "Foo {};", ErrUnexpectedToken, 0, ""},
		{"header junk", "Foo() junk {};", ErrUnexpectedToken, 0, ""},
		{"header bad tag", "1Foo() {};", ErrUnexpectedToken, 0, ""},
		{"header extra words", "new new Foo() {};", ErrUnexpectedToken, 0, ""},
		{"header bad name", "Foo(a b) {};", ErrUnexpectedToken, 0, ""},
		{"assignment without value", "A() { x = ; };", ErrUnexpectedToken, 6, "A"},
		{"assignment without equals", "A() { x; };", ErrUnexpectedToken, 6, "A"},
		{"assignment without name", "A() { = 1; };", ErrUnexpectedToken, 6, "A"},
		{"negative index", "A() { x[-1] = 1; };", ErrUnexpectedToken, 6, "A"},
		{"bad index", "A() { x[a] = 1; };", ErrUnexpectedToken, 6, "A"},
		{"unquoted spaces", "A() { x = a b; };", ErrUnexpectedToken, 6, "A"},
		{"concatenation", `A() { x = "a" @ "b"; };`, ErrUnexpectedToken, 6, "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, err := Parse(context.Background(), tt.src)
			if roots != nil {
				t.Errorf("Parse() roots = %v, want nil", roots)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
			}

			var pErr *ParseError
			if !errors.As(err, &pErr) {
				t.Fatalf("Parse() error = %T, want *ParseError", err)
			}
			if pErr.Pos != tt.wantPos {
				t.Errorf("ParseError.Pos = %d, want %d", pErr.Pos, tt.wantPos)
			}
			if pErr.Tag != tt.wantTag {
				t.Errorf("ParseError.Tag = %q, want %q", pErr.Tag, tt.wantTag)
			}
		})
	}
}

func TestParse_lexerCause(t *testing.T) {
	_, err := Parse(context.Background(), "A() { x = 1 };")
	if !errors.Is(err, lexer.ErrMissingTerminator) {
		t.Errorf("Parse() error = %v, want wrapped %v", err, lexer.ErrMissingTerminator)
	}
}

func TestParse_unterminatedLiteral(t *testing.T) {
	_, err := Parse(context.Background(), "Outer() {\n  Inner() {\n    s = \"never closed;\n  };\n};")

	want := "5:3: unterminated string literal: opened at offset 30 (in Inner at offset 12)"
	if err == nil || err.Error() != want {
		t.Errorf("Parse() error = %v, want %q", err, want)
	}
}

func TestParse_sharedOptions(t *testing.T) {
	opts := make([]lexer.Option, 0, 4)
	opts = append(opts, lexer.WithDelimiter('\''))

	first, err := Parse(context.Background(), "A() { s = 'one'; };", opts...)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := Parse(context.Background(), "B() { s = 'two'; };", opts...)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if spare := opts[1:cap(opts)]; spare[0] != nil {
		t.Errorf("Parse() wrote into the spare capacity of its options")
	}
	if first[0].TextOr("s", "") != "one" || second[0].TextOr("s", "") != "two" {
		t.Errorf("Parse() = %v, %v", first[0].TextOr("s", ""), second[0].TextOr("s", ""))
	}
}

func TestParse_cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Parse(ctx, "A() {};"); !errors.Is(err, context.Canceled) {
		t.Errorf("Parse() error = %v, want %v", err, context.Canceled)
	}
}

func TestParseError_Error(t *testing.T) {
	_, err := Parse(context.Background(), "\n  Foo() { bar = 5;")

	want := "2:3: unterminated block: Foo opened at offset 3 (in Foo at offset 3)"
	if err == nil || err.Error() != want {
		t.Errorf("ParseError.Error() = %v, want %q", err, want)
	}
}

func Test_position(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		pos      int
		wantLine int
		wantCol  int
	}{
		{"start", "abc", 0, 1, 1},
		{"first line", "abc", 2, 1, 3},
		{"second line", "ab\ncd", 4, 2, 2},
		{"past end", "ab\n", 10, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotLine, gotCol := position(tt.src, tt.pos)
			if gotLine != tt.wantLine || gotCol != tt.wantCol {
				t.Errorf("position() = %d:%d, want %d:%d", gotLine, gotCol, tt.wantLine, tt.wantCol)
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	src := `new SimGroup(MissionGroup) {
   new ScriptObject(MissionInfo) {
      name = "Learning to Roll";
      level = "1";
   };
   new Item(Gem1) {
      position = "0 4 1.5";
      rotation = "1 0 0 0";
      dataBlock = "GemItem";
      list[0] = "a";
      list[1] = "b";
   };
};`

	for n := 0; n < b.N; n++ {
		if _, err := Parse(context.Background(), src); err != nil {
			b.Fatal(err)
		}
	}
}
