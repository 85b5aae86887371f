package markup

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"rdlint/internal/source"
)

// Line is one physical line of the block being parsed.
type Line struct {
	Span   source.Span // line content without the trailing newline
	Text   string
	Indent int // leading whitespace width, tab counts as tabWidth
	Blank  bool
}

const tabWidth = 8

// Cursor walks the lines of one documentation block. Splitting happens once
// up front, so the parser is a plain index walk over an immutable slice.
type Cursor struct {
	lines []Line
	pos   int
}

// NewCursor slices the given region of the file into lines.
func NewCursor(f *source.File, span source.Span) *Cursor {
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	start, end := span.Start, span.End
	if start > lenContent {
		start = lenContent
	}
	if end > lenContent {
		end = lenContent
	}

	var lines []Line
	lineStart := start
	for off := start; off <= end; off++ {
		if off == end || f.Content[off] == '\n' {
			text := string(f.Content[lineStart:off])
			lines = append(lines, Line{
				Span:   source.Span{File: f.ID, Start: lineStart, End: off},
				Text:   text,
				Indent: measureIndent(text),
				Blank:  strings.TrimSpace(text) == "",
			})
			lineStart = off + 1
		}
	}
	// A trailing newline produces a phantom empty line; drop it.
	if n := len(lines); n > 0 && lines[n-1].Blank && lines[n-1].Span.Empty() && end > start && f.Content[end-1] == '\n' {
		lines = lines[:n-1]
	}
	return &Cursor{lines: lines}
}

func measureIndent(text string) int {
	indent := 0
	for _, r := range text {
		switch r {
		case ' ':
			indent++
		case '\t':
			indent += tabWidth - indent%tabWidth
		default:
			return indent
		}
	}
	return indent
}

func (c *Cursor) EOF() bool {
	return c.pos >= len(c.lines)
}

// Peek returns the current line without consuming it.
func (c *Cursor) Peek() Line {
	if c.EOF() {
		return Line{Blank: true}
	}
	return c.lines[c.pos]
}

// PeekAhead returns the line n positions ahead of the current one.
func (c *Cursor) PeekAhead(n int) (Line, bool) {
	if c.pos+n >= len(c.lines) {
		return Line{Blank: true}, false
	}
	return c.lines[c.pos+n], true
}

// Next consumes and returns the current line.
func (c *Cursor) Next() Line {
	line := c.Peek()
	if !c.EOF() {
		c.pos++
	}
	return line
}

// Len returns the total number of lines.
func (c *Cursor) Len() int {
	return len(c.lines)
}
