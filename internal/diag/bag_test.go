package diag

import (
	"testing"

	"rdlint/internal/source"
)

func TestBag_AddRespectsLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(SevInfo, SegInfo, source.Span{}, "one")) {
		t.Fatal("first add rejected")
	}
	if !b.Add(New(SevInfo, SegInfo, source.Span{}, "two")) {
		t.Fatal("second add rejected")
	}
	if b.Add(New(SevInfo, SegInfo, source.Span{}, "three")) {
		t.Fatal("third add should hit the cap")
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
}

func TestBag_SortSeverityDescThenPosition(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevSuggestion, RuleSynopsisRedundant, source.Span{File: 1, Start: 5, End: 9}, "suggestion early"))
	b.Add(New(SevViolation, RuleTooManyRelated, source.Span{File: 1, Start: 50, End: 60}, "violation late"))
	b.Add(New(SevViolation, RuleArgsNotAccepted, source.Span{File: 1, Start: 10, End: 20}, "violation early"))
	b.Add(New(SevInfo, SegAmbiguous, source.Span{File: 1, Start: 0, End: 1}, "info"))

	b.Sort()

	got := make([]string, 0, b.Len())
	for _, f := range b.Items() {
		got = append(got, f.Message)
	}
	want := []string{"violation early", "violation late", "suggestion early", "info"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order[%d] = %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestBag_CountBySeverity(t *testing.T) {
	b := NewBag(10)
	b.Add(NewViolation(RuleTooManyRelated, source.Span{}, "v"))
	b.Add(NewSuggestion(RuleHeadingOverkill, source.Span{}, "s1"))
	b.Add(NewSuggestion(RuleObviousException, source.Span{File: 0, Start: 1, End: 2}, "s2"))
	b.Add(New(SevInfo, SegAmbiguous, source.Span{}, "i"))

	v, s, i := b.CountBySeverity()
	if v != 1 || s != 2 || i != 1 {
		t.Errorf("CountBySeverity() = %d,%d,%d want 1,2,1", v, s, i)
	}
	if !b.HasViolations() {
		t.Error("HasViolations() = false, want true")
	}
}

func TestBag_MergeGrowsCapacity(t *testing.T) {
	a := NewBag(1)
	a.Add(New(SevInfo, SegInfo, source.Span{}, "a"))
	other := NewBag(2)
	other.Add(New(SevInfo, SegInfo, source.Span{File: 0, Start: 1, End: 1}, "b"))
	other.Add(New(SevInfo, SegInfo, source.Span{File: 0, Start: 2, End: 2}, "c"))

	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("Len() after merge = %d, want 3", a.Len())
	}
}

func TestBag_DropSuggestions(t *testing.T) {
	b := NewBag(10)
	b.Add(NewViolation(RuleTooManyRelated, source.Span{}, "v"))
	b.Add(NewSuggestion(RuleHeadingOverkill, source.Span{}, "s"))
	b.Add(New(SevInfo, SegAmbiguous, source.Span{}, "i"))

	b.DropSuggestions()
	if b.Len() != 1 {
		t.Fatalf("Len() after drop = %d, want 1", b.Len())
	}
	if b.Items()[0].Message != "v" {
		t.Fatalf("kept %q, want the violation", b.Items()[0].Message)
	}
}

func TestBag_PromoteSuggestions(t *testing.T) {
	b := NewBag(10)
	b.Add(NewSuggestion(RuleHeadingOverkill, source.Span{}, "s"))
	b.Add(New(SevInfo, SegAmbiguous, source.Span{}, "i"))

	if b.HasViolations() {
		t.Fatal("HasViolations() = true before promote")
	}
	b.PromoteSuggestions()
	if !b.HasViolations() {
		t.Fatal("HasViolations() = false after promote")
	}
	v, s, i := b.CountBySeverity()
	if v != 1 || s != 0 || i != 1 {
		t.Fatalf("CountBySeverity() = %d,%d,%d want 1,0,1", v, s, i)
	}
}

func TestBag_Dedup(t *testing.T) {
	b := NewBag(10)
	sp := source.Span{File: 1, Start: 3, End: 7}
	b.Add(NewViolation(RuleTooManyRelated, sp, "dup"))
	b.Add(NewViolation(RuleTooManyRelated, sp, "dup again"))
	b.Add(NewViolation(RuleCallSeqGrammar, sp, "different code"))

	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("Len() after dedup = %d, want 2", b.Len())
	}
}

func TestRuleCodeByID(t *testing.T) {
	tests := []struct {
		id   string
		want Code
		ok   bool
	}{
		{"R1", RuleArgsNotAccepted, true},
		{"R4", RuleTooManyRelated, true},
		{"R8", RuleDefaultSplit, true},
		{"R9", UnknownCode, false},
		{"R0", UnknownCode, false},
		{"X1", UnknownCode, false},
	}
	for _, tt := range tests {
		got, ok := RuleCodeByID(tt.id)
		if got != tt.want || ok != tt.ok {
			t.Errorf("RuleCodeByID(%q) = %v,%v want %v,%v", tt.id, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCodeID(t *testing.T) {
	if got := RuleTooManyRelated.ID(); got != "R4" {
		t.Errorf("RuleTooManyRelated.ID() = %q, want R4", got)
	}
	if got := MarkupUnterminatedMono.ID(); got != "MRK1001" {
		t.Errorf("MarkupUnterminatedMono.ID() = %q, want MRK1001", got)
	}
	if got := SegAmbiguous.ID(); got != "SEG2001" {
		t.Errorf("SegAmbiguous.ID() = %q, want SEG2001", got)
	}
}
