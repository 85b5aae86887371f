package markup

import (
	"testing"

	"rdlint/internal/diag"
)

func firstParagraph(t *testing.T, text string) *Node {
	t.Helper()
	doc, _ := parseText(t, text)
	if len(doc.Nodes) == 0 || doc.Nodes[0].Kind != KindParagraph {
		t.Fatalf("expected leading paragraph, got %v", kinds(doc))
	}
	return doc.Nodes[0]
}

func inlineKinds(n *Node) []InlineKind {
	out := make([]InlineKind, 0, len(n.Inlines))
	for _, in := range n.Inlines {
		out = append(out, in.Kind)
	}
	return out
}

func TestInline_MonoSpan(t *testing.T) {
	n := firstParagraph(t, "Returns +nil+ when empty.\n")
	want := []InlineKind{InlineText, InlineMono, InlineText}
	got := inlineKinds(n)
	if len(got) != len(want) {
		t.Fatalf("inline kinds = %v, want %v", got, want)
	}
	if n.Inlines[1].Text != "nil" {
		t.Errorf("mono text = %q, want nil", n.Inlines[1].Text)
	}
	if n.PlainText() != "Returns nil when empty." {
		t.Errorf("PlainText = %q", n.PlainText())
	}
}

func TestInline_PlusInProseIsNotMono(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"arithmetic", "Computes a + b for each pair.\n"},
		{"trailing plus", "C++ is not markup here x+.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := firstParagraph(t, tt.text)
			for _, in := range n.Inlines {
				if in.Kind == InlineMono {
					t.Errorf("unexpected mono span %q in %q", in.Text, tt.text)
				}
			}
		})
	}
}

func TestInline_UnterminatedMonoReported(t *testing.T) {
	doc, bag := parseText(t, "Returns +nil when empty.\n")
	found := false
	for _, f := range bag.Items() {
		if f.Code == diag.MarkupUnterminatedMono && f.Severity == diag.SevSuggestion {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected MarkupUnterminatedMono, got %v", bag.Items())
	}
	// Best effort: the text survives as prose.
	if doc.Nodes[0].PlainText() != "Returns +nil when empty." {
		t.Errorf("PlainText = %q", doc.Nodes[0].PlainText())
	}
}

func TestInline_CrossReferences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"hash ref", "See #count for details.\n", []string{"#count"}},
		{"qualified hash", "See Array#count here.\n", []string{"Array#count"}},
		{"qualified dot", "See Array.new here.\n", []string{"Array.new"}},
		{"namespaced", "See Foo::Bar#baz here.\n", []string{"Foo::Bar#baz"}},
		{"predicate name", "See #empty? and #sort! here.\n", []string{"#empty?", "#sort!"}},
		{"plain constant is prose", "An Integer is returned.\n", nil},
		{"mid-word hash ignored", "issue#42 is not a ref.\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := firstParagraph(t, tt.text)
			got := n.CrossRefs()
			if len(got) != len(tt.want) {
				t.Fatalf("CrossRefs = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("CrossRefs = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestInline_SpansPointIntoSource(t *testing.T) {
	doc, _ := parseText(t, "See #count now.\n")
	n := doc.Nodes[0]
	var ref *Inline
	for i := range n.Inlines {
		if n.Inlines[i].Kind == InlineCrossRef {
			ref = &n.Inlines[i]
		}
	}
	if ref == nil {
		t.Fatal("no cross-reference found")
	}
	if ref.Span.Start != 4 || ref.Span.End != 10 {
		t.Errorf("ref span = %d-%d, want 4-10", ref.Span.Start, ref.Span.End)
	}
}
