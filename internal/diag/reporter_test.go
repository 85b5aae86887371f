package diag

import (
	"testing"

	"rdlint/internal/source"
)

func TestDedupReporter_SuppressesRepeats(t *testing.T) {
	bag := NewBag(10)
	rep := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 1, Start: 3, End: 7}

	rep.Report(RuleCallSeqGrammar, SevViolation, sp, "missing return type", nil, "")
	rep.Report(RuleCallSeqGrammar, SevViolation, sp, "missing return type", nil, "")
	if bag.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after a repeat", bag.Len())
	}

	// Другой span, сообщение или код — не дубликат.
	rep.Report(RuleCallSeqGrammar, SevViolation, source.Span{File: 1, Start: 8, End: 9}, "missing return type", nil, "")
	rep.Report(RuleCallSeqGrammar, SevViolation, sp, "different message", nil, "")
	rep.Report(RuleTooManyRelated, SevViolation, sp, "missing return type", nil, "")
	if bag.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 distinct findings", bag.Len())
	}
}

func TestNopReporter_Discards(t *testing.T) {
	var rep Reporter = NopReporter{}
	rep.Report(SegAmbiguous, SevInfo, source.Span{}, "dropped", nil, "")
}

func TestReportBuilder_EmitOnce(t *testing.T) {
	bag := NewBag(10)
	rep := BagReporter{Bag: bag}
	sp := source.Span{File: 2, Start: 1, End: 5}

	b := ReportSuggestion(rep, RuleHeadingOverkill, sp, "heading is overkill").
		WithNote(source.Span{File: 2, Start: 6, End: 7}, "heading here").
		WithRationale("short details do not need structure")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("Len() = %d, want exactly one emission", bag.Len())
	}
	f := bag.Items()[0]
	if f.Severity != SevSuggestion || f.Code != RuleHeadingOverkill {
		t.Errorf("finding = %+v", f)
	}
	if len(f.Notes) != 1 || f.Notes[0].Msg != "heading here" {
		t.Errorf("notes = %+v", f.Notes)
	}
	if f.Rationale == "" {
		t.Error("rationale lost")
	}
}

func TestReportBuilder_NilReporter(t *testing.T) {
	ReportInfo(nil, SegAmbiguous, source.Span{}, "nowhere to go").Emit()
}
