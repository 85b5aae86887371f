package markup

import (
	"strings"
	"testing"

	"rdlint/internal/diag"
	"rdlint/internal/source"
)

func parseText(t *testing.T, text string) (*Document, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("block.rdoc", []byte(text))
	f := fs.Get(id)
	bag := diag.NewBag(100)
	doc := Parse(f, source.Span{File: id, Start: 0, End: uint32(len(f.Content))}, Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	return doc, bag
}

func kinds(doc *Document) []Kind {
	out := make([]Kind, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		out = append(out, n.Kind)
	}
	return out
}

func TestParse_Paragraphs(t *testing.T) {
	doc, bag := parseText(t, "First paragraph\nstill first.\n\nSecond paragraph.\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected findings: %v", bag.Items())
	}
	if len(doc.Nodes) != 2 {
		t.Fatalf("node count = %d, want 2", len(doc.Nodes))
	}
	if doc.Nodes[0].Kind != KindParagraph || doc.Nodes[1].Kind != KindParagraph {
		t.Fatalf("kinds = %v", kinds(doc))
	}
	if got := doc.Nodes[0].PlainText(); got != "First paragraph still first." {
		t.Errorf("PlainText = %q", got)
	}
}

func TestParse_HeadingLevels(t *testing.T) {
	doc, _ := parseText(t, "= Top\n\n=== Deep heading\n")
	if len(doc.Nodes) != 2 {
		t.Fatalf("node count = %d, want 2", len(doc.Nodes))
	}
	if doc.Nodes[0].Kind != KindHeading || doc.Nodes[0].Level != 1 {
		t.Errorf("first heading level = %d", doc.Nodes[0].Level)
	}
	if doc.Nodes[1].Level != 3 {
		t.Errorf("second heading level = %d", doc.Nodes[1].Level)
	}
	if got := doc.Nodes[1].PlainText(); got != "Deep heading" {
		t.Errorf("heading text = %q", got)
	}
}

func TestParse_HorizontalRule(t *testing.T) {
	doc, _ := parseText(t, "Before.\n\n---\n\nAfter.\n")
	want := []Kind{KindParagraph, KindRule, KindParagraph}
	got := kinds(doc)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestParse_UnorderedList(t *testing.T) {
	doc, bag := parseText(t, "- first item\n- second item\n  with continuation\n- third\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected findings: %v", bag.Items())
	}
	if len(doc.Nodes) != 1 || doc.Nodes[0].Kind != KindList {
		t.Fatalf("kinds = %v", kinds(doc))
	}
	list := doc.Nodes[0]
	if list.Ordered {
		t.Error("list should be unordered")
	}
	if len(list.Items) != 3 {
		t.Fatalf("item count = %d, want 3", len(list.Items))
	}
	if got := inlinesText(list.Items[1].Inlines); got != "second item with continuation" {
		t.Errorf("item[1] text = %q", got)
	}
}

func TestParse_OrderedListNested(t *testing.T) {
	doc, _ := parseText(t, "1. outer one\n2. outer two\n   - inner a\n   - inner b\n3. outer three\n")
	list := doc.Nodes[0]
	if !list.Ordered {
		t.Error("list should be ordered")
	}
	if len(list.Items) != 3 {
		t.Fatalf("item count = %d, want 3", len(list.Items))
	}
	sub := list.Items[1].Sublist
	if sub == nil || len(sub.Items) != 2 {
		t.Fatalf("nested list missing under item[1]: %+v", list.Items[1])
	}
	if sub.Ordered {
		t.Error("nested list should be unordered")
	}
}

func TestParse_ListDepthGuard(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("- depth 1\n")
	for d := 1; d <= 5; d++ {
		sb.WriteString(strings.Repeat(" ", d))
		sb.WriteString("- deeper\n")
	}

	fs := source.NewFileSet()
	id := fs.AddVirtual("deep.rdoc", []byte(sb.String()))
	f := fs.Get(id)
	bag := diag.NewBag(100)
	Parse(f, source.Span{File: id, Start: 0, End: uint32(len(f.Content))}, Options{
		Reporter:     diag.BagReporter{Bag: bag},
		MaxListDepth: 3,
	})

	found := false
	for _, f := range bag.Items() {
		if f.Code == diag.MarkupListTooDeep && f.Severity == diag.SevViolation {
			found = true
		}
	}
	if !found {
		t.Errorf("expected MarkupListTooDeep violation, got %v", bag.Items())
	}
}

func TestParse_DefinitionList(t *testing.T) {
	doc, bag := parseText(t, "obj :: the object to count\nblock :: given, counts matching elements\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected findings: %v", bag.Items())
	}
	if len(doc.Nodes) != 1 || doc.Nodes[0].Kind != KindDefList {
		t.Fatalf("kinds = %v", kinds(doc))
	}
	entries := doc.Nodes[0].Entries
	if len(entries) != 2 {
		t.Fatalf("entry count = %d, want 2", len(entries))
	}
	if entries[0].TermText != "obj" {
		t.Errorf("term = %q", entries[0].TermText)
	}
	if got := entries[0].DescText(); got != "the object to count" {
		t.Errorf("desc = %q", got)
	}
}

func TestParse_DefinitionListMonoTermAndContinuation(t *testing.T) {
	doc, _ := parseText(t, "+obj+ :: an Integer or a String\n  spilling onto a second line\n")
	entries := doc.Nodes[0].Entries
	if len(entries) != 1 {
		t.Fatalf("entry count = %d", len(entries))
	}
	if entries[0].TermText != "obj" {
		t.Errorf("mono term not stripped: %q", entries[0].TermText)
	}
	if got := entries[0].DescText(); got != "an Integer or a String spilling onto a second line" {
		t.Errorf("desc = %q", got)
	}
}

func TestParse_DanglingTerm(t *testing.T) {
	_, bag := parseText(t, "orphan ::\n")
	found := false
	for _, f := range bag.Items() {
		if f.Code == diag.MarkupDanglingTerm {
			found = true
		}
	}
	if !found {
		t.Errorf("expected MarkupDanglingTerm, got %v", bag.Items())
	}
}

func TestParse_IndentedVerbatim(t *testing.T) {
	doc, bag := parseText(t, "Some prose.\n\n  a = [1, 2, 3]\n  a.count # => 3\n\nMore prose.\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected findings: %v", bag.Items())
	}
	want := []Kind{KindParagraph, KindVerbatim, KindParagraph}
	got := kinds(doc)
	if len(got) != 3 || got[1] != KindVerbatim {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	verb := doc.Nodes[1]
	if verb.Fenced {
		t.Error("indented verbatim flagged as fenced")
	}
	if len(verb.Lines) != 2 || verb.Lines[0] != "a = [1, 2, 3]" {
		t.Errorf("verbatim lines = %q", verb.Lines)
	}
}

func TestParse_VerbatimNotScannedForMarkup(t *testing.T) {
	doc, bag := parseText(t, "Prose.\n\n  +not mono+ and #not_a_ref\n")
	if bag.Len() != 0 {
		t.Fatalf("verbatim content produced findings: %v", bag.Items())
	}
	verb := doc.Nodes[1]
	if verb.Kind != KindVerbatim {
		t.Fatalf("kinds = %v", kinds(doc))
	}
	if len(verb.Inlines) != 0 {
		t.Error("verbatim node should carry no inlines")
	}
}

func TestParse_FencedVerbatim(t *testing.T) {
	doc, bag := parseText(t, "```\nliteral = text\n```\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected findings: %v", bag.Items())
	}
	if len(doc.Nodes) != 1 || doc.Nodes[0].Kind != KindVerbatim || !doc.Nodes[0].Fenced {
		t.Fatalf("kinds = %v", kinds(doc))
	}
	if len(doc.Nodes[0].Lines) != 1 || doc.Nodes[0].Lines[0] != "literal = text" {
		t.Errorf("lines = %q", doc.Nodes[0].Lines)
	}
}

func TestParse_UnclosedFence(t *testing.T) {
	doc, bag := parseText(t, "```\nnever closed\n")
	if len(doc.Nodes) != 1 || doc.Nodes[0].Kind != KindVerbatim {
		t.Fatalf("best-effort tree missing, kinds = %v", kinds(doc))
	}
	found := false
	for _, f := range bag.Items() {
		if f.Code == diag.MarkupUnclosedFence && f.Severity == diag.SevViolation {
			found = true
		}
	}
	if !found {
		t.Errorf("expected MarkupUnclosedFence violation, got %v", bag.Items())
	}
}

func TestParse_Deterministic(t *testing.T) {
	const text = "= Head\n\nPara with +mono+ and #ref.\n\n- a\n- b\n\nterm :: desc\n"
	docA, bagA := parseText(t, text)
	docB, bagB := parseText(t, text)

	if len(docA.Nodes) != len(docB.Nodes) {
		t.Fatal("node counts differ between runs")
	}
	for i := range docA.Nodes {
		if docA.Nodes[i].Kind != docB.Nodes[i].Kind || docA.Nodes[i].PlainText() != docB.Nodes[i].PlainText() {
			t.Fatalf("node %d differs between runs", i)
		}
	}
	if bagA.Len() != bagB.Len() {
		t.Fatal("finding counts differ between runs")
	}
}
