// Package section partitions a parsed documentation block into its named
// sections using positional and lexical heuristics. Ambiguous or missing
// sections stay Absent; the segmenter never infers.
package section

import (
	"rdlint/internal/markup"
	"rdlint/internal/source"
)

// Tag names one of the recognised block sections. The enum order is the
// canonical section order within a block.
type Tag uint8

const (
	TagCallSeq Tag = iota
	TagSynopsis
	TagDetails
	TagArgumentDescription
	TagCornerCases
	TagRelatedMethods

	tagCount
)

func (t Tag) String() string {
	switch t {
	case TagCallSeq:
		return "call-seq"
	case TagSynopsis:
		return "synopsis"
	case TagDetails:
		return "details"
	case TagArgumentDescription:
		return "argument-description"
	case TagCornerCases:
		return "corner-cases"
	case TagRelatedMethods:
		return "related-methods"
	}
	return "unknown"
}

// Tags lists all tags in canonical order.
func Tags() []Tag {
	out := make([]Tag, 0, tagCount)
	for t := Tag(0); t < tagCount; t++ {
		out = append(out, t)
	}
	return out
}

// Section is one contiguous node range with its tag.
type Section struct {
	Tag   Tag
	Span  source.Span
	Nodes []*markup.Node

	// Call-seq only: the raw signature lines with their spans, extracted
	// during detection so the grammar is applied exactly once.
	RawLines  []string
	LineSpans []source.Span
}

// Map is the enum-keyed section map. Uniqueness of each tag is structural:
// one optional slot per tag.
type Map struct {
	sections [tagCount]*Section
}

// Get returns the section for a tag, or (nil, false) when absent.
func (m *Map) Get(tag Tag) (*Section, bool) {
	if m == nil || tag >= tagCount || m.sections[tag] == nil {
		return nil, false
	}
	return m.sections[tag], true
}

// Has reports whether the tag is present.
func (m *Map) Has(tag Tag) bool {
	_, ok := m.Get(tag)
	return ok
}

// set stores a section; the first occupant of a slot wins.
func (m *Map) set(s *Section) bool {
	if m.sections[s.Tag] != nil {
		return false
	}
	m.sections[s.Tag] = s
	return true
}

// Present lists the present sections in canonical order.
func (m *Map) Present() []*Section {
	var out []*Section
	for t := Tag(0); t < tagCount; t++ {
		if m.sections[t] != nil {
			out = append(out, m.sections[t])
		}
	}
	return out
}
