package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"rdlint/internal/diag"
	"rdlint/internal/source"
)

func twoFindingBag(fs *source.FileSet) *diag.Bag {
	fileID := fs.AddVirtual("doc/hash.rdoc", []byte("call-seq:\n  hash.fetch\n\nReturns a value.\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewViolation(
		diag.RuleCallSeqGrammar,
		source.Span{File: fileID, Start: 12, End: 22},
		"entry is missing a return type",
	).WithRationale("every signature states what it evaluates to"))
	bag.Add(diag.NewSuggestion(
		diag.MarkupUnterminatedMono,
		source.Span{File: fileID, Start: 24, End: 30},
		"monospace span opened but never closed",
	).WithNote(source.Span{File: fileID, Start: 24, End: 25}, "opened here"))
	bag.Sort()
	return bag
}

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSet()
	bag := twoFindingBag(fs)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeRationale: true,
	})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out FindingsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if out.Count != 2 || len(out.Findings) != 2 {
		t.Fatalf("count = %d, findings = %d", out.Count, len(out.Findings))
	}
	if out.Violations != 1 || out.Suggestions != 1 || out.Infos != 0 {
		t.Errorf("severity counts = %d/%d/%d", out.Violations, out.Suggestions, out.Infos)
	}

	first := out.Findings[0]
	if first.Code != "R6" || first.Severity != "VIOLATION" {
		t.Errorf("first finding = %s %s", first.Severity, first.Code)
	}
	if first.Rationale == "" {
		t.Error("rationale dropped although requested")
	}
	if first.Location.StartLine != 2 || first.Location.StartCol != 3 {
		t.Errorf("position = %d:%d", first.Location.StartLine, first.Location.StartCol)
	}

	second := out.Findings[1]
	if len(second.Notes) != 1 || second.Notes[0].Message != "opened here" {
		t.Errorf("notes = %+v", second.Notes)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	bag := twoFindingBag(fs)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 1}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out FindingsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || len(out.Findings) != 1 {
		t.Errorf("truncation ignored: count = %d", out.Count)
	}
	// Счётчики по severity считаются по всему Bag, не по срезу.
	if out.Violations != 1 || out.Suggestions != 1 {
		t.Errorf("severity counts follow the slice: %d/%d", out.Violations, out.Suggestions)
	}
}

func TestJSONOmitsOptionalFields(t *testing.T) {
	fs := source.NewFileSet()
	bag := twoFindingBag(fs)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	text := buf.String()
	if strings.Contains(text, "rationale") {
		t.Error("rationale emitted without IncludeRationale")
	}
	if strings.Contains(text, "notes") {
		t.Error("notes emitted without IncludeNotes")
	}
	if strings.Contains(text, "start_line") {
		t.Error("positions emitted without IncludePositions")
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	fs := source.NewFileSet()
	bag := twoFindingBag(fs)

	var buf bytes.Buffer
	if err := Msgpack(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("Msgpack: %v", err)
	}

	var out FindingsOutput
	dec := msgpack.NewDecoder(&buf)
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 || out.Findings[0].Code != "R6" {
		t.Errorf("round-trip mismatch: %+v", out)
	}
}
