package markup

import (
	"strings"

	"rdlint/internal/source"
)

// Kind discriminates block-level document nodes.
type Kind uint8

const (
	KindParagraph Kind = iota
	KindHeading
	KindList
	KindDefList
	KindVerbatim
	KindRule // horizontal rule
)

func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindDefList:
		return "deflist"
	case KindVerbatim:
		return "verbatim"
	case KindRule:
		return "rule"
	}
	return "unknown"
}

// InlineKind discriminates inline elements inside paragraph-like text.
type InlineKind uint8

const (
	// InlineText is plain prose.
	InlineText InlineKind = iota
	// InlineMono is a monospace span (+text+).
	InlineMono
	// InlineCrossRef is a reference to another method: #name, Klass#name
	// or Klass.name.
	InlineCrossRef
)

func (k InlineKind) String() string {
	switch k {
	case InlineText:
		return "text"
	case InlineMono:
		return "mono"
	case InlineCrossRef:
		return "crossref"
	}
	return "unknown"
}

// Inline is one inline element. Text holds the content without markers;
// for cross-references it is the reference target exactly as written.
type Inline struct {
	Kind InlineKind
	Span source.Span
	Text string
}

// ListItem is one entry of an ordered or unordered list. Sublist, when
// non-nil, is a nested KindList node.
type ListItem struct {
	Span    source.Span
	Inlines []Inline
	Sublist *Node
}

// DefEntry is one `term :: description` pair of a definition list.
type DefEntry struct {
	Span     source.Span
	Term     []Inline
	TermText string
	Desc     []Inline
}

// Node is one block-level element of the parsed document tree.
// The tree is acyclic and owned by the Document that produced it.
type Node struct {
	Kind Kind
	Span source.Span

	// KindHeading
	Level int

	// KindParagraph, KindHeading
	Inlines []Inline

	// KindList
	Ordered bool
	Items   []*ListItem

	// KindDefList
	Entries []*DefEntry

	// KindVerbatim
	Lines  []string
	Fenced bool
}

// Document is the parse result for one documentation block.
type Document struct {
	File  source.FileID
	Span  source.Span
	Nodes []*Node
}

// PlainText renders the node's inline content as prose, dropping markup
// markers. Verbatim nodes join their raw lines.
func (n *Node) PlainText() string {
	if n == nil {
		return ""
	}
	if n.Kind == KindVerbatim {
		return strings.Join(n.Lines, "\n")
	}
	return inlinesText(n.Inlines)
}

// CrossRefs collects the cross-reference targets mentioned in the node,
// in document order.
func (n *Node) CrossRefs() []string {
	if n == nil {
		return nil
	}
	var refs []string
	for _, in := range n.Inlines {
		if in.Kind == InlineCrossRef {
			refs = append(refs, in.Text)
		}
	}
	for _, it := range n.Items {
		for _, in := range it.Inlines {
			if in.Kind == InlineCrossRef {
				refs = append(refs, in.Text)
			}
		}
	}
	return refs
}

func inlinesText(inlines []Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		sb.WriteString(in.Text)
	}
	return sb.String()
}

// EntryDescText renders a definition entry description as prose.
func (e *DefEntry) DescText() string {
	if e == nil {
		return ""
	}
	return inlinesText(e.Desc)
}
