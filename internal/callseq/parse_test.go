package callseq

import (
	"testing"

	"rdlint/internal/source"
)

func TestLooksLikeEntry(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"bare method", "array.count -> integer", true},
		{"with args", "array.count(obj) -> integer", true},
		{"with block", "array.count {|element| ... } -> integer", true},
		{"no receiver", "count -> integer", true},
		{"no arrow still an entry shape", "array.count(obj)", true},
		{"namespaced receiver", "Foo::Bar.parse(text) -> object", true},
		{"predicate method", "array.empty? -> true or false", true},
		{"prose sentence", "Returns a count of specified elements.", false},
		{"prose with arrow", "see the -> arrow above", false},
		{"empty", "   ", false},
		{"unbalanced parens", "array.count(obj -> integer", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikeEntry(tt.line); got != tt.want {
				t.Errorf("LooksLikeEntry(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseLine_Simple(t *testing.T) {
	entry, problems := ParseLine(source.Span{}, "array.count -> integer")
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if entry.Receiver != "array" || entry.Method != "count" {
		t.Errorf("invocation = %q.%q", entry.Receiver, entry.Method)
	}
	if entry.AcceptsArguments() || entry.AcceptsBlock() {
		t.Error("entry should accept neither arguments nor a block")
	}
	if len(entry.Returns) != 1 || entry.Returns[0] != "integer" {
		t.Errorf("returns = %v", entry.Returns)
	}
}

func TestParseLine_ArgsAndDefaults(t *testing.T) {
	entry, problems := ParseLine(source.Span{}, "string.center(width, padstr = ' ') -> string")
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if len(entry.Args) != 2 {
		t.Fatalf("args = %+v", entry.Args)
	}
	if entry.Args[0].Name != "width" || entry.Args[0].HasDefault {
		t.Errorf("args[0] = %+v", entry.Args[0])
	}
	if entry.Args[1].Name != "padstr" || !entry.Args[1].HasDefault || entry.Args[1].Default != "' '" {
		t.Errorf("args[1] = %+v", entry.Args[1])
	}
}

func TestParseLine_BlockOnlyHasEmptyArgsAndBlock(t *testing.T) {
	// Well-formed block-accepting forms without parenthesized arguments
	// must yield an empty argument list and a present block descriptor.
	entry, problems := ParseLine(source.Span{}, "array.count {|element| ... } -> integer")
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if len(entry.Args) != 0 {
		t.Errorf("args = %+v, want empty", entry.Args)
	}
	if entry.Block == nil {
		t.Fatal("block descriptor absent")
	}
	if !entry.Block.HasPipes || len(entry.Block.Params) != 1 || entry.Block.Params[0] != "element" {
		t.Errorf("block = %+v", entry.Block)
	}
}

func TestParseLine_ReturnDisjunction(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"hash.fetch(key) -> value or default", []string{"value", "default"}},
		{"array.pop -> object or nil", []string{"object", "nil"}},
		{"array.sort! -> self", []string{"self"}},
		{"obj.to_s -> string, symbol", []string{"string", "symbol"}},
	}
	for _, tt := range tests {
		entry, problems := ParseLine(source.Span{}, tt.line)
		if len(problems) != 0 {
			t.Fatalf("%q: unexpected problems: %v", tt.line, problems)
		}
		if len(entry.Returns) != len(tt.want) {
			t.Fatalf("%q: returns = %v, want %v", tt.line, entry.Returns, tt.want)
		}
		for i := range tt.want {
			if entry.Returns[i] != tt.want[i] {
				t.Fatalf("%q: returns = %v, want %v", tt.line, entry.Returns, tt.want)
			}
		}
	}
}

func TestParseLine_MissingReturnType(t *testing.T) {
	_, problems := ParseLine(source.Span{}, "array.count(obj)")
	if len(problems) != 1 {
		t.Fatalf("problems = %v, want exactly one", problems)
	}
}

func TestParseLine_BlockNextToArgsNeedsPipes(t *testing.T) {
	_, problems := ParseLine(source.Span{}, "array.fill(start) { ... } -> array")
	if len(problems) != 1 {
		t.Fatalf("problems = %v, want exactly one", problems)
	}

	// With pipes the same shape is fine.
	_, problems = ParseLine(source.Span{}, "array.fill(start) {|index| ... } -> array")
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
}

func TestParseLines_SkipsBlanks(t *testing.T) {
	lines := []string{"array.count -> integer", "", "array.count(obj) -> integer"}
	spans := []source.Span{{Start: 0, End: 22}, {Start: 23, End: 23}, {Start: 24, End: 51}}
	entries, problems := ParseLines(spans, lines)
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
}
