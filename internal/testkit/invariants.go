// Package testkit provides structural invariant checks shared by unit and
// fuzz tests. It is not imported by production code.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rdlint/internal/markup"
	"rdlint/internal/source"
)

// CheckDocumentInvariants runs a minimal set of span invariants on a parsed
// document:
// 1) doc.Span lies within the file content bounds
// 2) every node span is non-empty and fully contained in doc.Span
// 3) node spans are ordered and non-overlapping at the top level
func CheckDocumentInvariants(doc *markup.Document, sf *source.File) error {
	if doc == nil || sf == nil {
		return fmt.Errorf("nil document or file")
	}
	if doc.File != sf.ID {
		return fmt.Errorf("document points to different file id: got=%d want=%d", doc.File, sf.ID)
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if doc.Span.End > lenContent {
		return fmt.Errorf("document span end beyond content: %d > %d", doc.Span.End, lenContent)
	}
	if doc.Span.End < doc.Span.Start {
		return fmt.Errorf("document span inverted: %v", doc.Span)
	}

	prevEnd := doc.Span.Start
	for i, node := range doc.Nodes {
		if node == nil {
			return fmt.Errorf("node %d is nil", i)
		}
		if err := checkNode(node, doc.Span); err != nil {
			return fmt.Errorf("node %d (%s): %w", i, node.Kind, err)
		}
		if node.Span.Start < prevEnd {
			return fmt.Errorf("node %d (%s) overlaps previous node: %v", i, node.Kind, node.Span)
		}
		prevEnd = node.Span.End
	}
	return nil
}

func checkNode(node *markup.Node, parent source.Span) error {
	if node.Span.Empty() {
		return fmt.Errorf("empty span: %v", node.Span)
	}
	if node.Span.File != parent.File {
		return fmt.Errorf("span crosses files: %v", node.Span)
	}
	if node.Span.Start < parent.Start || node.Span.End > parent.End {
		return fmt.Errorf("span escapes parent %v: %v", parent, node.Span)
	}

	for _, in := range node.Inlines {
		if err := checkInline(in, node.Span); err != nil {
			return err
		}
	}
	for _, item := range node.Items {
		if item == nil {
			return fmt.Errorf("nil list item")
		}
		if item.Span.Start < node.Span.Start || item.Span.End > node.Span.End {
			return fmt.Errorf("item span escapes list %v: %v", node.Span, item.Span)
		}
		for _, in := range item.Inlines {
			if err := checkInline(in, item.Span); err != nil {
				return err
			}
		}
		if item.Sublist != nil {
			if item.Sublist.Kind != markup.KindList {
				return fmt.Errorf("sublist has kind %s", item.Sublist.Kind)
			}
			if err := checkNode(item.Sublist, node.Span); err != nil {
				return fmt.Errorf("sublist: %w", err)
			}
		}
	}
	for _, entry := range node.Entries {
		if entry == nil {
			return fmt.Errorf("nil definition entry")
		}
		if entry.Span.Start < node.Span.Start || entry.Span.End > node.Span.End {
			return fmt.Errorf("entry span escapes deflist %v: %v", node.Span, entry.Span)
		}
	}
	return nil
}

func checkInline(in markup.Inline, parent source.Span) error {
	if in.Span.Empty() {
		// Inline spans may be empty for synthesized text runs.
		return nil
	}
	if in.Span.Start < parent.Start || in.Span.End > parent.End {
		return fmt.Errorf("inline %s span escapes parent %v: %v", in.Kind, parent, in.Span)
	}
	return nil
}
