package section

import (
	"strings"

	"rdlint/internal/callseq"
	"rdlint/internal/diag"
	"rdlint/internal/markup"
	"rdlint/internal/source"
)

// Segment partitions the document tree of one block into a section map.
// Boundaries are decided from node positions and lexical cues only; what
// cannot be decided stays Absent and is surfaced as an Info finding.
func Segment(fs *source.FileSet, doc *markup.Document, reporter diag.Reporter) *Map {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	s := &segmenter{fs: fs, doc: doc, reporter: reporter, out: &Map{}}
	s.run()
	return s.out
}

type segmenter struct {
	fs       *source.FileSet
	doc      *markup.Document
	reporter diag.Reporter
	out      *Map
}

func (s *segmenter) run() {
	nodes := s.doc.Nodes
	if len(nodes) == 0 {
		return
	}

	idx := s.detectCallSeq(nodes)
	rest := nodes[idx:]

	// A call-seq marker anywhere past the head violates the ordering
	// invariant: call-seq, when present, must be the first section.
	for _, n := range rest {
		if n.Kind == markup.KindParagraph && isCallSeqMarker(n.PlainText()) {
			diag.ReportViolation(s.reporter, diag.SegCallSeqNotFirst, n.Span,
				"call-seq must be the first section of the block").Emit()
		}
	}

	// Related-methods line: a trailing single-line paragraph starting with
	// the literal "Related:" marker.
	if n := lastNode(rest); n != nil && s.isRelatedLine(n) {
		s.out.set(&Section{Tag: TagRelatedMethods, Span: n.Span, Nodes: rest[len(rest)-1:]})
		rest = rest[:len(rest)-1]
	}
	// The same marker away from the tail is ambiguous: not a section, but
	// worth telling the author about.
	for _, n := range rest {
		if n.Kind == markup.KindParagraph && strings.HasPrefix(n.PlainText(), relatedMarker) {
			diag.ReportInfo(s.reporter, diag.SegAmbiguous, n.Span,
				"\"Related:\" line is only recognised as the final line of the block").Emit()
		}
	}

	// Synopsis: the first ordinary paragraph, with no heading before it.
	if len(rest) > 0 && rest[0].Kind == markup.KindParagraph {
		s.out.set(&Section{Tag: TagSynopsis, Span: rest[0].Span, Nodes: rest[:1]})
		rest = rest[1:]
	} else if n := misorderedSynopsis(rest); n != nil {
		diag.ReportInfo(s.reporter, diag.SegSynopsisMisorder, n.Span,
			"paragraph after a heading is not recognised as the synopsis; the synopsis must open the block").Emit()
	}

	s.classifyBody(rest)
}

// misorderedSynopsis finds a paragraph that reads like a synopsis but sits
// behind a heading, so it cannot form the Synopsis section. Corner-case
// material is not a candidate.
func misorderedSynopsis(rest []*markup.Node) *markup.Node {
	if len(rest) == 0 || rest[0].Kind != markup.KindHeading || isCornerIntro(rest[0]) {
		return nil
	}
	for _, n := range rest[1:] {
		if isCornerIntro(n) {
			return nil
		}
		if n.Kind == markup.KindParagraph {
			return n
		}
	}
	return nil
}

// classifyBody assigns the remaining nodes to Details, ArgumentDescription
// and CornerCases.
func (s *segmenter) classifyBody(rest []*markup.Node) {
	var details []*markup.Node
	var corner []*markup.Node
	detailsOpen := true

	for i := 0; i < len(rest); i++ {
		n := rest[i]

		if detailsOpen && n.Kind == markup.KindDefList && !s.out.Has(TagArgumentDescription) {
			if len(n.Entries) > 0 && TypeLike(n.Entries[0].DescText()) {
				s.out.set(&Section{Tag: TagArgumentDescription, Span: n.Span, Nodes: rest[i : i+1]})
				detailsOpen = false
				continue
			}
			// A generic definition list is ordinary details content.
			details = append(details, n)
			continue
		}

		if corner == nil && isCornerIntro(n) {
			corner = append(corner, n)
			detailsOpen = false
			continue
		}
		if corner != nil {
			corner = append(corner, n)
			continue
		}

		if detailsOpen {
			details = append(details, n)
			continue
		}

		// After the argument description and before any corner-cases
		// intro there is no section to own this node.
		if n.Kind == markup.KindDefList && len(n.Entries) > 0 && TypeLike(n.Entries[0].DescText()) {
			diag.ReportInfo(s.reporter, diag.SegDuplicateSection, n.Span,
				"duplicate argument description; only the first qualifying definition list forms the section").Emit()
			continue
		}
		diag.ReportInfo(s.reporter, diag.SegAmbiguous, n.Span,
			"content after the argument description could not be assigned to a section").Emit()
	}

	if len(details) > 0 {
		s.out.set(&Section{Tag: TagDetails, Span: coverAll(details), Nodes: details})
	}
	if len(corner) > 0 {
		s.out.set(&Section{Tag: TagCornerCases, Span: coverAll(corner), Nodes: corner})
	}
}

const callSeqMarker = "call-seq:"
const relatedMarker = "Related:"

func isCallSeqMarker(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), callSeqMarker)
}

// detectCallSeq recognises the leading call-seq section and returns the
// number of consumed nodes. Three shapes count:
//
//  1. a `call-seq:` marker paragraph followed by a verbatim block,
//  2. a leading verbatim block whose lines all look like entries,
//  3. a leading paragraph whose physical lines all look like entries and
//     carry the return arrow.
func (s *segmenter) detectCallSeq(nodes []*markup.Node) int {
	first := nodes[0]

	if first.Kind == markup.KindParagraph && isCallSeqMarker(first.PlainText()) {
		if len(nodes) > 1 && nodes[1].Kind == markup.KindVerbatim {
			lines, spans := s.rawLines(nodes[1].Span)
			s.out.set(&Section{
				Tag:       TagCallSeq,
				Span:      first.Span.Cover(nodes[1].Span),
				Nodes:     nodes[:2],
				RawLines:  lines,
				LineSpans: spans,
			})
			return 2
		}
		// Marker with nothing attached: record the section as present but
		// empty; the grammar rule will complain about the missing entries.
		s.out.set(&Section{Tag: TagCallSeq, Span: first.Span, Nodes: nodes[:1]})
		return 1
	}

	if first.Kind == markup.KindVerbatim || first.Kind == markup.KindParagraph {
		lines, spans := s.rawLines(first.Span)
		if callSeqShaped(lines, first.Kind == markup.KindParagraph) {
			s.out.set(&Section{
				Tag:       TagCallSeq,
				Span:      first.Span,
				Nodes:     nodes[:1],
				RawLines:  lines,
				LineSpans: spans,
			})
			return 1
		}
	}
	return 0
}

// callSeqShaped checks that every non-blank line looks like a call-seq
// entry. Paragraph detection additionally demands the return arrow on each
// line so a one-word opening sentence is not mistaken for a signature.
func callSeqShaped(lines []string, needArrow bool) bool {
	seen := 0
	arrows := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !callseq.LooksLikeEntry(line) {
			return false
		}
		if strings.Contains(line, "->") {
			arrows++
		} else if needArrow {
			return false
		}
		seen++
	}
	return seen > 0 && arrows > 0
}

// isRelatedLine matches the final single-line "Related: ..." paragraph.
func (s *segmenter) isRelatedLine(n *markup.Node) bool {
	if n.Kind != markup.KindParagraph {
		return false
	}
	if !strings.HasPrefix(n.PlainText(), relatedMarker) {
		return false
	}
	lines, _ := s.rawLines(n.Span)
	return len(lines) == 1
}

// isCornerIntro recognises the opening node of a corner-cases section: a
// heading from the exceptions lexicon, or a paragraph beginning with a
// "Raises" statement.
func isCornerIntro(n *markup.Node) bool {
	switch n.Kind {
	case markup.KindHeading:
		title := strings.ToLower(n.PlainText())
		return strings.Contains(title, "exception") ||
			strings.Contains(title, "corner case") ||
			strings.Contains(title, "error")
	case markup.KindParagraph:
		text := n.PlainText()
		return strings.HasPrefix(text, "Raises ") || strings.HasPrefix(text, "Raises:")
	}
	return false
}

func lastNode(nodes []*markup.Node) *markup.Node {
	if len(nodes) == 0 {
		return nil
	}
	return nodes[len(nodes)-1]
}

func coverAll(nodes []*markup.Node) source.Span {
	sp := nodes[0].Span
	for _, n := range nodes[1:] {
		sp = sp.Cover(n.Span)
	}
	return sp
}

// rawLines splits the raw text under span into physical lines with their
// spans, preserving byte offsets for precise findings.
func (s *segmenter) rawLines(span source.Span) ([]string, []source.Span) {
	text := s.fs.Text(span)
	var lines []string
	var spans []source.Span
	start := span.Start
	for len(text) > 0 {
		nl := strings.IndexByte(text, '\n')
		var line string
		if nl < 0 {
			line = text
			text = ""
		} else {
			line = text[:nl]
			text = text[nl+1:]
		}
		end := start + uint32(len(line))
		lines = append(lines, line)
		spans = append(spans, source.Span{File: span.File, Start: start, End: end})
		start = end + 1
	}
	return lines, spans
}
