package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"rdlint/internal/markup"
	"rdlint/internal/source"
)

// TreeOpts configures the document tree dump.
type TreeOpts struct {
	ShowSpans   bool
	ShowInlines bool
}

// Tree dumps a parsed document as an indented tree, one node per line.
// Используется командой parse для отладки разметки.
func Tree(w io.Writer, doc *markup.Document, fs *source.FileSet, opts TreeOpts) {
	for _, n := range doc.Nodes {
		writeNode(w, n, fs, opts, 0)
	}
}

func writeNode(w io.Writer, n *markup.Node, fs *source.FileSet, opts TreeOpts, depth int) {
	indent := strings.Repeat("  ", depth)
	label := n.Kind.String()
	switch n.Kind {
	case markup.KindHeading:
		label = fmt.Sprintf("%s(%d)", label, n.Level)
	case markup.KindList:
		if n.Ordered {
			label += "(ordered)"
		}
	case markup.KindVerbatim:
		label = fmt.Sprintf("%s(%d lines)", label, len(n.Lines))
	}
	fmt.Fprintf(w, "%s%s%s", indent, label, spanSuffix(n.Span, fs, opts))

	switch n.Kind {
	case markup.KindParagraph, markup.KindHeading:
		fmt.Fprintf(w, " %q", truncateText(n.PlainText(), 60))
	}
	fmt.Fprintln(w)

	if opts.ShowInlines {
		for _, in := range n.Inlines {
			if in.Kind != markup.InlineText {
				fmt.Fprintf(w, "%s  %s %q\n", indent, in.Kind, in.Text)
			}
		}
	}
	for _, it := range n.Items {
		fmt.Fprintf(w, "%s  item %q\n", indent, truncateText(inlineJoin(it.Inlines), 60))
		if it.Sublist != nil {
			writeNode(w, it.Sublist, fs, opts, depth+2)
		}
	}
	for _, e := range n.Entries {
		fmt.Fprintf(w, "%s  term %q :: %q\n", indent, e.TermText, truncateText(e.DescText(), 60))
	}
}

func spanSuffix(sp source.Span, fs *source.FileSet, opts TreeOpts) string {
	if !opts.ShowSpans {
		return ""
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf(" [%d:%d-%d:%d]", start.Line, start.Col, end.Line, end.Col)
}

func truncateText(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "…"
}

func inlineJoin(inlines []markup.Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		sb.WriteString(in.Text)
	}
	return sb.String()
}
