package section

import (
	"strings"
)

// typeWords is the lexicon of type labels that mark a definition-list
// description as an argument description. Matching is a heuristic over
// words, not semantic knowledge of the documented method.
var typeWords = map[string]bool{
	"Integer":    true,
	"Float":      true,
	"Numeric":    true,
	"String":     true,
	"Symbol":     true,
	"Array":      true,
	"Hash":       true,
	"Range":      true,
	"Proc":       true,
	"Object":     true,
	"Boolean":    true,
	"Enumerator": true,
	"Comparable": true,
	"Enumerable": true,
	"IO":         true,
	"Time":       true,
	"Regexp":     true,
	"nil":        true,
	"true":       true,
	"false":      true,
	"self":       true,
}

// TypeLike reports whether a description text contains a type-like lexical
// pattern: a known type word, a `TypeA or TypeB` disjunction, or an
// explicit `A | B` alternative.
func TypeLike(desc string) bool {
	words := fieldsWithoutPunct(desc)
	for i, w := range words {
		if typeWords[w] {
			return true
		}
		// `Foo or Bar` / `Foo | Bar` between two capitalized words reads
		// as a type disjunction even when the words are project types.
		if (w == "or" || w == "|") && i > 0 && i+1 < len(words) {
			if isCapitalized(words[i-1]) && isCapitalized(words[i+1]) {
				return true
			}
		}
	}
	return false
}

func fieldsWithoutPunct(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:()[]")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func isCapitalized(w string) bool {
	return len(w) > 0 && w[0] >= 'A' && w[0] <= 'Z'
}
