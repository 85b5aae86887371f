package fuzztests

import (
	"testing"

	"rdlint/internal/diag"
	"rdlint/internal/markup"
	"rdlint/internal/section"
	"rdlint/internal/source"
)

func FuzzSegmentDocument(f *testing.F) {
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
		reporter := diag.BagReporter{Bag: bag}
		doc := markup.Parse(file, span, markup.Options{Reporter: reporter})
		m := section.Segment(fs, doc, reporter)
		if m == nil {
			t.Fatal("segment returned nil map")
		}

		// Каждый узел документа попадает максимум в одну секцию.
		seen := make(map[*markup.Node]section.Tag)
		for _, tag := range section.Tags() {
			sec, ok := m.Get(tag)
			if !ok {
				continue
			}
			for _, node := range sec.Nodes {
				if prev, dup := seen[node]; dup {
					t.Fatalf("node assigned to both %v and %v", prev, tag)
				}
				seen[node] = tag
			}
		}
	})
}
