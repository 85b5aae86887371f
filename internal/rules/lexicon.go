package rules

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"rdlint/internal/markup"
	"rdlint/internal/section"
)

// The conditional rules of the policy ("only flag when the details state
// divergent behavior") cannot understand prose. This file implements them
// as lexical pattern matchers over normalized text: a documented heuristic
// with known false-negative risk, never a guarantee.

// blockPositive marks prose that describes block-given behavior.
var blockPositive = []string{
	"with a block",
	"if a block is given",
	"when a block is given",
	"if the block is given",
	"given a block",
}

// blockNegative marks prose that describes behavior without a block.
var blockNegative = []string{
	"without a block",
	"with no block",
	"if no block is given",
	"when no block is given",
	"if the block is omitted",
}

// omittedArgument marks prose describing divergent behavior for an omitted
// argument.
var omittedArgument = []string{
	"with no argument",
	"without an argument",
	"if the argument is omitted",
	"when the argument is omitted",
	"if no argument is given",
	"when no argument is given",
	"if omitted",
	"when omitted",
}

// typeMismatchExceptions is the family of exception names that follow
// directly from an argument-type constraint.
var typeMismatchExceptions = []string{
	"TypeError",
	"ArgumentError",
}

// normalizeProse lowercases and NFC-normalizes text for matching, so
// typographically different spellings of the same phrase compare equal.
func normalizeProse(text string) string {
	return strings.ToLower(norm.NFC.String(text))
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// statesBlockDivergence reports whether prose states both block-given and
// block-less behavior.
func statesBlockDivergence(text string) bool {
	n := normalizeProse(text)
	return containsAny(n, blockPositive) && containsAny(n, blockNegative)
}

// statesOmittedDivergence reports whether prose states separate behavior
// for an omitted argument.
func statesOmittedDivergence(text string) bool {
	return containsAny(normalizeProse(text), omittedArgument)
}

// sectionText joins the plain text of all nodes of a section.
func sectionText(sec *section.Section) string {
	if sec == nil {
		return ""
	}
	var sb strings.Builder
	for _, n := range sec.Nodes {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(n.PlainText())
	}
	return sb.String()
}

// hasRaiseExample reports whether any verbatim node in the given sections
// demonstrates raising the named exception.
func hasRaiseExample(secs []*section.Section, exception string) bool {
	needle := strings.ToLower(exception)
	for _, sec := range secs {
		if sec == nil {
			continue
		}
		for _, n := range sec.Nodes {
			if n.Kind != markup.KindVerbatim {
				continue
			}
			text := strings.ToLower(strings.Join(n.Lines, "\n"))
			if strings.Contains(text, needle) || strings.Contains(text, "raise") {
				return true
			}
		}
	}
	return false
}

// prose tokenization for the redundancy overlap check

var stopwords = map[string]bool{
	"the": true, "and": true, "that": true, "this": true, "with": true,
	"from": true, "into": true, "when": true, "then": true, "than": true,
	"returns": true, "return": true, "given": true, "method": true,
	"value": true, "values": true, "element": true, "elements": true,
	"object": true, "objects": true,
}

// significantTokens extracts the lowercase content words of prose text.
func significantTokens(text string) []string {
	n := normalizeProse(text)
	fields := strings.FieldsFunc(n, func(r rune) bool {
		return !(r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= 3 || stopwords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// tokenOverlapPercent computes how many of the base tokens also occur in
// other, in percent of the base token count.
func tokenOverlapPercent(base, other []string) int {
	if len(base) == 0 {
		return 0
	}
	set := make(map[string]bool, len(other))
	for _, t := range other {
		set[t] = true
	}
	hits := 0
	for _, t := range base {
		if set[t] {
			hits++
		}
	}
	return hits * 100 / len(base)
}

// countSentences estimates the number of sentences in prose text.
func countSentences(text string) int {
	count := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
				count++
			}
		}
	}
	if count == 0 && strings.TrimSpace(text) != "" {
		count = 1
	}
	return count
}
