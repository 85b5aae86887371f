package diag

import (
	"fmt"
	"sort"
)

// Bag collects findings for one documentation block (or a merged batch),
// bounded by a maximum capacity.
type Bag struct {
	items []Finding
	max   int
}

func NewBag(max int) *Bag {
	if max <= 0 {
		max = 1
	}
	return &Bag{
		items: make([]Finding, 0, min(max, 64)),
		max:   max,
	}
}

// Add appends a finding, honoring the capacity limit.
// Returns false when the finding was dropped.
func (b *Bag) Add(f Finding) bool {
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, f)
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

// HasViolations returns true if at least one finding has Violation severity.
func (b *Bag) HasViolations() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevViolation {
			return true
		}
	}
	return false
}

// HasSuggestions returns true if at least one finding has Suggestion severity or above.
func (b *Bag) HasSuggestions() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevSuggestion {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// CountBySeverity returns the number of findings per severity.
func (b *Bag) CountBySeverity() (violations, suggestions, infos int) {
	for i := range b.items {
		switch b.items[i].Severity {
		case SevViolation:
			violations++
		case SevSuggestion:
			suggestions++
		default:
			infos++
		}
	}
	return
}

// Items returns a read-only view of the findings.
// Callers must not modify the returned slice.
func (b *Bag) Items() []Finding {
	return b.items
}

// Merge appends findings from another Bag, growing max when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	newTotal := len(b.items) + len(other.items)
	if newTotal > b.max {
		b.max = newTotal
	}
	b.items = append(b.items, other.items...)
}

// Sort orders findings by: file, severity (desc), start, end, code.
// Within one block this yields the report order the CLI prints:
// violations first, then suggestions, each in source order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		fi, fj := b.items[i], b.items[j]
		if fi.Primary.File != fj.Primary.File {
			return fi.Primary.File < fj.Primary.File
		}
		if fi.Severity != fj.Severity {
			return fi.Severity > fj.Severity
		}
		if fi.Primary.Start != fj.Primary.Start {
			return fi.Primary.Start < fj.Primary.Start
		}
		if fi.Primary.End != fj.Primary.End {
			return fi.Primary.End < fj.Primary.End
		}
		return fi.Code < fj.Code
	})
}

// DropSuggestions removes every finding below Violation severity.
// Used by the CLI when the operator asked for hard failures only.
func (b *Bag) DropSuggestions() {
	kept := b.items[:0]
	for _, f := range b.items {
		if f.Severity >= SevViolation {
			kept = append(kept, f)
		}
	}
	b.items = kept
}

// PromoteSuggestions upgrades every Suggestion finding to a Violation.
// Infos are left alone. Callers should re-Sort afterwards.
func (b *Bag) PromoteSuggestions() {
	for i := range b.items {
		if b.items[i].Severity == SevSuggestion {
			b.items[i].Severity = SevViolation
		}
	}
}

// Dedup drops findings that repeat an earlier (code, span) pair.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	newitems := make([]Finding, 0, len(b.items))
	for _, f := range b.items {
		key := fmt.Sprintf("%d:%s", f.Code, f.Primary.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, f)
	}
	b.items = newitems
}
