// Package driver orchestrates the check pipeline: load documentation
// files, split them into blocks, run markup parsing, segmentation and rule
// evaluation, and aggregate the findings.
package driver

import (
	"rdlint/internal/callseq"
	"rdlint/internal/diag"
	"rdlint/internal/loader"
	"rdlint/internal/markup"
	"rdlint/internal/rules"
	"rdlint/internal/section"
	"rdlint/internal/source"
)

// DefaultMaxFindings caps the bag of one block when no limit is configured.
const DefaultMaxFindings = 200

// BlockResult is the outcome of checking one documentation block.
type BlockResult struct {
	Block    loader.Block
	Doc      *markup.Document
	Sections *section.Map
	Entries  []callseq.Entry
	Bag      *diag.Bag
}

// CheckBlock runs the full pipeline over one block. It is pure over the
// file set contents and safe to call concurrently: every invocation owns
// its bag.
func CheckBlock(fileSet *source.FileSet, block loader.Block, cfg *rules.Config, maxFindings int) BlockResult {
	if maxFindings <= 0 {
		maxFindings = DefaultMaxFindings
	}
	bag := diag.NewBag(maxFindings)
	// Повторы одной находки (код, span, сообщение) внутри блока давим на
	// входе, а не пост-фактум.
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	file := fileSet.Get(block.FileID)
	doc := markup.Parse(file, block.Span, markup.Options{Reporter: reporter})
	sections := section.Segment(fileSet, doc, reporter)

	var entries []callseq.Entry
	var problems []callseq.Problem
	if cs, ok := sections.Get(section.TagCallSeq); ok {
		entries, problems = callseq.ParseLines(cs.LineSpans, cs.RawLines)
	}

	rules.Evaluate(rules.Input{
		Sections:  sections,
		Entries:   entries,
		Problems:  problems,
		BlockSpan: block.Span,
	}, cfg, reporter)

	bag.Sort()
	return BlockResult{
		Block:    block,
		Doc:      doc,
		Sections: sections,
		Entries:  entries,
		Bag:      bag,
	}
}

// ParseBlock runs markup parsing only, for the parse and sections dump
// commands.
func ParseBlock(fileSet *source.FileSet, block loader.Block, maxFindings int) (*markup.Document, *diag.Bag) {
	if maxFindings <= 0 {
		maxFindings = DefaultMaxFindings
	}
	bag := diag.NewBag(maxFindings)
	file := fileSet.Get(block.FileID)
	doc := markup.Parse(file, block.Span, markup.Options{Reporter: diag.BagReporter{Bag: bag}})
	bag.Sort()
	return doc, bag
}
