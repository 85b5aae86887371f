package markup

import (
	"strings"

	"rdlint/internal/diag"
	"rdlint/internal/source"
)

// DefaultMaxListDepth bounds list nesting so pathological input cannot
// recurse without limit.
const DefaultMaxListDepth = 16

// verbatimIndent is the extra indentation (columns) relative to the block
// margin that switches a line into verbatim mode.
const verbatimIndent = 2

type Options struct {
	// Reporter receives parse findings. May be nil; parsing continues
	// either way.
	Reporter diag.Reporter
	// MaxListDepth overrides DefaultMaxListDepth when positive.
	MaxListDepth int
}

// Parser holds the state for parsing one documentation block.
type Parser struct {
	file       *source.File
	cur        *Cursor
	opts       Options
	baseIndent int
	maxDepth   int
}

// Parse builds the document tree for the given region of a file. It is
// deterministic and never panics on malformed input: problems degrade to a
// best-effort tree plus findings on the reporter.
func Parse(file *source.File, span source.Span, opts Options) *Document {
	maxDepth := opts.MaxListDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxListDepth
	}
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	p := &Parser{
		file:     file,
		cur:      NewCursor(file, span),
		opts:     opts,
		maxDepth: maxDepth,
	}

	// The block margin is the indent of the first non-blank line.
	for i := 0; ; i++ {
		line, ok := p.cur.PeekAhead(i)
		if !ok {
			break
		}
		if !line.Blank {
			p.baseIndent = line.Indent
			break
		}
	}

	doc := &Document{File: file.ID, Span: span}
	for !p.cur.EOF() {
		if p.cur.Peek().Blank {
			p.cur.Next()
			continue
		}
		node := p.parseBlock()
		if node != nil {
			doc.Nodes = append(doc.Nodes, node)
		}
	}
	return doc
}

// parseBlock dispatches on the current line. Callers ensure it is not blank.
func (p *Parser) parseBlock() *Node {
	line := p.cur.Peek()
	trimmed := strings.TrimSpace(line.Text)

	switch {
	case isFence(trimmed):
		return p.parseFencedVerbatim()
	case line.Indent >= p.baseIndent+verbatimIndent:
		return p.parseIndentedVerbatim()
	case isHeading(trimmed):
		return p.parseHeading()
	case isHRule(trimmed):
		p.cur.Next()
		return &Node{Kind: KindRule, Span: line.Span}
	case isListMarker(trimmed):
		return p.parseList(line.Indent, 1)
	case isDefEntry(trimmed):
		return p.parseDefList()
	default:
		return p.parseParagraph()
	}
}

func isHeading(trimmed string) bool {
	return strings.HasPrefix(trimmed, "=")
}

func isHRule(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != '-' {
			return false
		}
	}
	return true
}

func isFence(trimmed string) bool {
	return strings.HasPrefix(trimmed, "```")
}

// isListMarker recognises `- item`, `* item` and `1. item`.
func isListMarker(trimmed string) bool {
	if len(trimmed) >= 2 && (trimmed[0] == '-' || trimmed[0] == '*') && (trimmed[1] == ' ' || trimmed[1] == '\t') {
		// A run of dashes is a horizontal rule, not a list item.
		return !isHRule(trimmed)
	}
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	return i > 0 && i+1 < len(trimmed) && trimmed[i] == '.' && (trimmed[i+1] == ' ' || trimmed[i+1] == '\t')
}

// isDefEntry recognises `term :: description` lines. The term must be
// non-empty and must not itself be a list marker.
func isDefEntry(trimmed string) bool {
	idx := strings.Index(trimmed, " :: ")
	if idx <= 0 {
		// Also allow a dangling `term ::` at end of line.
		if strings.HasSuffix(trimmed, " ::") {
			idx = len(trimmed) - 3
		} else {
			return false
		}
	}
	term := strings.TrimSpace(trimmed[:idx])
	return term != "" && !isListMarker(term)
}

func (p *Parser) parseHeading() *Node {
	line := p.cur.Next()
	trimmed := strings.TrimSpace(line.Text)

	level := 0
	for level < len(trimmed) && trimmed[level] == '=' {
		level++
	}
	text := strings.TrimSpace(trimmed[level:])
	if text == "" {
		diag.ReportSuggestion(p.opts.Reporter, diag.MarkupBareHeading, line.Span,
			"heading marker without text").Emit()
	}

	// Inline offsets need the position of the text within the raw line.
	textStart := strings.Index(line.Text, text)
	var inlines []Inline
	if text != "" && textStart >= 0 {
		inlines = p.parseInlines(subSpan(line.Span, textStart, textStart+len(text)), text)
	}

	return &Node{
		Kind:    KindHeading,
		Span:    line.Span,
		Level:   level,
		Inlines: inlines,
	}
}

func (p *Parser) parseParagraph() *Node {
	first := p.cur.Next()
	node := &Node{Kind: KindParagraph, Span: first.Span}
	node.Inlines = p.parseInlines(p.contentSpan(first), strings.TrimSpace(first.Text))

	for !p.cur.EOF() {
		line := p.cur.Peek()
		trimmed := strings.TrimSpace(line.Text)
		if line.Blank || isHeading(trimmed) || isHRule(trimmed) || isFence(trimmed) ||
			isListMarker(trimmed) || isDefEntry(trimmed) ||
			line.Indent >= p.baseIndent+verbatimIndent {
			break
		}
		p.cur.Next()
		node.Span = node.Span.Cover(line.Span)
		// Склеиваем физические строки в один прозаический блок.
		node.Inlines = append(node.Inlines, Inline{
			Kind: InlineText,
			Span: source.Span{File: line.Span.File, Start: line.Span.Start, End: line.Span.Start},
			Text: " ",
		})
		node.Inlines = append(node.Inlines, p.parseInlines(p.contentSpan(line), trimmed)...)
	}
	return node
}

// contentSpan narrows a line span to its non-whitespace content.
func (p *Parser) contentSpan(line Line) source.Span {
	text := line.Text
	start := 0
	for start < len(text) && (text[start] == ' ' || text[start] == '\t') {
		start++
	}
	end := len(text)
	for end > start && (text[end-1] == ' ' || text[end-1] == '\t') {
		end--
	}
	return subSpan(line.Span, start, end)
}

func (p *Parser) parseList(indent, depth int) *Node {
	first := p.cur.Peek()
	node := &Node{
		Kind:    KindList,
		Span:    first.Span,
		Ordered: isOrderedMarker(strings.TrimSpace(first.Text)),
	}

	for !p.cur.EOF() {
		line := p.cur.Peek()
		trimmed := strings.TrimSpace(line.Text)

		if line.Blank {
			// A blank line ends the list unless another item follows at
			// the same indent.
			next, ok := p.cur.PeekAhead(1)
			if !ok || next.Blank || !isListMarker(strings.TrimSpace(next.Text)) || next.Indent != indent {
				break
			}
			p.cur.Next()
			continue
		}
		if !isListMarker(trimmed) {
			break
		}

		switch {
		case line.Indent > indent:
			// Nested list under the last item.
			if len(node.Items) == 0 {
				// Malformed: a deeper bullet with no parent item.
				// Parse it as a sibling run.
				node.Items = append(node.Items, p.parseListItem(line.Indent))
				continue
			}
			if depth >= p.maxDepth {
				diag.ReportViolation(p.opts.Reporter, diag.MarkupListTooDeep, line.Span,
					"list nesting exceeds the maximum depth").Emit()
				// Flatten: treat the deeper item as a sibling.
				node.Items = append(node.Items, p.parseListItem(line.Indent))
				continue
			}
			last := node.Items[len(node.Items)-1]
			last.Sublist = p.parseList(line.Indent, depth+1)
			last.Span = last.Span.Cover(last.Sublist.Span)
			node.Span = node.Span.Cover(last.Sublist.Span)
		case line.Indent < indent:
			// Belongs to an outer list.
			return node
		default:
			item := p.parseListItem(indent)
			node.Items = append(node.Items, item)
			node.Span = node.Span.Cover(item.Span)
		}
	}
	return node
}

func isOrderedMarker(trimmed string) bool {
	return len(trimmed) > 0 && trimmed[0] >= '0' && trimmed[0] <= '9'
}

// parseListItem consumes one bullet line plus its continuation lines.
func (p *Parser) parseListItem(indent int) *ListItem {
	line := p.cur.Next()
	trimmed := strings.TrimSpace(line.Text)

	markerLen := listMarkerLen(trimmed)
	content := strings.TrimSpace(trimmed[markerLen:])
	contentStart := strings.Index(line.Text, trimmed) + markerLen
	for contentStart < len(line.Text) && (line.Text[contentStart] == ' ' || line.Text[contentStart] == '\t') {
		contentStart++
	}

	item := &ListItem{Span: line.Span}
	item.Inlines = p.parseInlines(subSpan(line.Span, contentStart, contentStart+len(content)), content)

	// Continuation lines: indented past the bullet, not new items.
	for !p.cur.EOF() {
		next := p.cur.Peek()
		if next.Blank || next.Indent <= indent || isListMarker(strings.TrimSpace(next.Text)) {
			break
		}
		p.cur.Next()
		item.Span = item.Span.Cover(next.Span)
		item.Inlines = append(item.Inlines, Inline{
			Kind: InlineText,
			Span: source.Span{File: next.Span.File, Start: next.Span.Start, End: next.Span.Start},
			Text: " ",
		})
		item.Inlines = append(item.Inlines, p.parseInlines(p.contentSpan(next), strings.TrimSpace(next.Text))...)
	}
	return item
}

func listMarkerLen(trimmed string) int {
	if trimmed[0] == '-' || trimmed[0] == '*' {
		return 1
	}
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	return i + 1 // digits plus the dot
}

func (p *Parser) parseDefList() *Node {
	first := p.cur.Peek()
	node := &Node{Kind: KindDefList, Span: first.Span}

	for !p.cur.EOF() {
		line := p.cur.Peek()
		trimmed := strings.TrimSpace(line.Text)
		if line.Blank || !isDefEntry(trimmed) {
			break
		}
		p.cur.Next()

		entry := p.parseDefEntry(line, trimmed)

		// Continuation lines extend the description.
		for !p.cur.EOF() {
			next := p.cur.Peek()
			nextTrimmed := strings.TrimSpace(next.Text)
			if next.Blank || next.Indent <= line.Indent || isDefEntry(nextTrimmed) || isListMarker(nextTrimmed) {
				break
			}
			p.cur.Next()
			entry.Span = entry.Span.Cover(next.Span)
			entry.Desc = append(entry.Desc, Inline{
				Kind: InlineText,
				Span: source.Span{File: next.Span.File, Start: next.Span.Start, End: next.Span.Start},
				Text: " ",
			})
			entry.Desc = append(entry.Desc, p.parseInlines(p.contentSpan(next), nextTrimmed)...)
		}

		if strings.TrimSpace(entry.DescText()) == "" {
			diag.ReportSuggestion(p.opts.Reporter, diag.MarkupDanglingTerm, entry.Span,
				"definition term without a description").Emit()
		}

		node.Entries = append(node.Entries, entry)
		node.Span = node.Span.Cover(entry.Span)
	}
	return node
}

func (p *Parser) parseDefEntry(line Line, trimmed string) *DefEntry {
	idx := strings.Index(trimmed, " :: ")
	descStart := idx + 4
	if idx < 0 {
		idx = len(trimmed) - 3 // dangling "term ::"
		descStart = len(trimmed)
	}
	term := strings.TrimSpace(trimmed[:idx])
	desc := strings.TrimSpace(trimmed[descStart:])

	lineOffset := strings.Index(line.Text, trimmed)
	termStart := lineOffset
	descOffset := lineOffset + descStart

	entry := &DefEntry{Span: line.Span}
	entry.Term = p.parseInlines(subSpan(line.Span, termStart, termStart+len(term)), term)
	entry.TermText = stripMono(term)
	if desc != "" {
		entry.Desc = p.parseInlines(subSpan(line.Span, descOffset, descOffset+len(desc)), desc)
	}
	return entry
}

// stripMono removes +...+ markers from a term so +obj+ and obj compare equal.
func stripMono(term string) string {
	if len(term) >= 3 && term[0] == '+' && term[len(term)-1] == '+' {
		return term[1 : len(term)-1]
	}
	return term
}

func (p *Parser) parseFencedVerbatim() *Node {
	open := p.cur.Next()
	node := &Node{Kind: KindVerbatim, Span: open.Span, Fenced: true}

	closed := false
	for !p.cur.EOF() {
		line := p.cur.Next()
		node.Span = node.Span.Cover(line.Span)
		if isFence(strings.TrimSpace(line.Text)) {
			closed = true
			break
		}
		node.Lines = append(node.Lines, line.Text)
	}
	if !closed {
		diag.ReportViolation(p.opts.Reporter, diag.MarkupUnclosedFence, open.Span,
			"verbatim fence is never closed").Emit()
	}
	return node
}

func (p *Parser) parseIndentedVerbatim() *Node {
	first := p.cur.Peek()
	node := &Node{Kind: KindVerbatim, Span: first.Span}
	threshold := p.baseIndent + verbatimIndent

	minIndent := first.Indent
	var raw []Line
	for !p.cur.EOF() {
		line := p.cur.Peek()
		if line.Blank {
			// Blank lines stay inside the verbatim block when more
			// indented content follows.
			next, ok := p.cur.PeekAhead(1)
			if !ok || next.Blank || next.Indent < threshold {
				break
			}
			raw = append(raw, p.cur.Next())
			continue
		}
		if line.Indent < threshold {
			break
		}
		if line.Indent < minIndent {
			minIndent = line.Indent
		}
		raw = append(raw, p.cur.Next())
		node.Span = node.Span.Cover(line.Span)
	}

	for _, line := range raw {
		node.Lines = append(node.Lines, stripIndent(line.Text, minIndent))
	}
	return node
}

// stripIndent removes up to width columns of leading whitespace.
func stripIndent(text string, width int) string {
	col := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ':
			col++
		case '\t':
			col += tabWidth - col%tabWidth
		default:
			return text[i:]
		}
		if col >= width {
			return text[i+1:]
		}
	}
	return ""
}
