package fuzztests

import (
	"testing"

	"rdlint/internal/diag"
	"rdlint/internal/markup"
	"rdlint/internal/source"
	"rdlint/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzMarkupParse(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.rdoc", input)
		file := fs.Get(fileID)
		span := source.Span{File: fileID, Start: 0, End: uint32(len(file.Content))}

		bag := diag.NewBag(64)
		doc := markup.Parse(file, span, markup.Options{Reporter: diag.BagReporter{Bag: bag}})
		if doc == nil {
			t.Fatal("parse returned nil document")
		}
		if err := testkit.CheckDocumentInvariants(doc, file); err != nil {
			t.Fatalf("span invariants violated: %v", err)
		}
	})
}
