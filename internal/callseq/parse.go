package callseq

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"rdlint/internal/source"
)

// LooksLikeEntry reports whether a line has the shape of a call-seq entry:
// an optional receiver label, a method name, optional argument and block
// groups. The return-type arrow is not required here — its absence is a
// grammar violation (R6) on a detected entry, not a reason to miss the
// section.
func LooksLikeEntry(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	head := trimmed
	if idx := strings.Index(head, "->"); idx >= 0 {
		head = strings.TrimSpace(head[:idx])
		if head == "" {
			return false
		}
	}
	recv, method, rest := splitInvocation(head)
	if method == "" {
		return false
	}
	if recv != "" && !isIdent(recv) {
		return false
	}
	if !isMethodName(method) {
		return false
	}
	rest = strings.TrimSpace(rest)
	for rest != "" {
		switch rest[0] {
		case '(':
			end := matchGroup(rest, '(', ')')
			if end < 0 {
				return false
			}
			rest = strings.TrimSpace(rest[end+1:])
		case '{':
			end := matchGroup(rest, '{', '}')
			if end < 0 {
				return false
			}
			rest = strings.TrimSpace(rest[end+1:])
		default:
			return false
		}
	}
	return true
}

// ParseLine parses one call-seq line into an Entry plus any grammar
// problems. Parsing is best-effort: a malformed line still yields an entry
// with whatever could be extracted.
func ParseLine(span source.Span, text string) (Entry, []Problem) {
	trimmed := strings.TrimSpace(text)
	entry := Entry{Span: span, Raw: trimmed}
	var problems []Problem

	head := trimmed
	if idx := strings.Index(trimmed, "->"); idx >= 0 {
		head = strings.TrimSpace(trimmed[:idx])
		entry.Returns = parseReturns(trimmed[idx+2:])
		if len(entry.Returns) == 0 {
			problems = append(problems, Problem{Span: span, Msg: "return-type field is empty"})
		}
	} else {
		problems = append(problems, Problem{Span: span, Msg: "return-type field is absent (expected `-> type`)"})
	}

	recv, method, rest := splitInvocation(head)
	entry.Receiver = recv
	entry.Method = method
	if method == "" {
		problems = append(problems, Problem{Span: span, Msg: "cannot find a method name"})
		return entry, problems
	}

	rest = strings.TrimSpace(rest)
	for rest != "" {
		switch rest[0] {
		case '(':
			end := matchGroup(rest, '(', ')')
			if end < 0 {
				problems = append(problems, Problem{Span: span, Msg: "unclosed argument list"})
				rest = ""
				continue
			}
			entry.HasParens = true
			entry.Args = parseArgs(rest[1:end])
			rest = strings.TrimSpace(rest[end+1:])
		case '{':
			end := matchGroup(rest, '{', '}')
			if end < 0 {
				problems = append(problems, Problem{Span: span, Msg: "unclosed block form"})
				rest = ""
				continue
			}
			entry.Block = parseBlock(rest[1:end])
			rest = strings.TrimSpace(rest[end+1:])
		default:
			problems = append(problems, Problem{Span: span, Msg: fmt.Sprintf("unexpected %q after the invocation", rest)})
			rest = ""
		}
	}

	// Parenthesized arguments alongside a block demand the {|...|} form so
	// the reader can tell block parameters from positional ones.
	if entry.HasParens && len(entry.Args) > 0 && entry.Block != nil && !entry.Block.HasPipes {
		problems = append(problems, Problem{Span: span, Msg: "block form next to an argument list must use {|...|}"})
	}

	return entry, problems
}

// ParseLines parses a run of call-seq lines. Blank lines are skipped; spans
// are derived from lineSpans which must parallel lines.
func ParseLines(lineSpans []source.Span, lines []string) ([]Entry, []Problem) {
	var entries []Entry
	var problems []Problem
	for i, text := range lines {
		if strings.TrimSpace(text) == "" {
			continue
		}
		var sp source.Span
		if i < len(lineSpans) {
			sp = lineSpans[i]
		}
		entry, probs := ParseLine(sp, text)
		entries = append(entries, entry)
		problems = append(problems, probs...)
	}
	return entries, problems
}

// splitInvocation splits the pre-arrow head into receiver label, method
// name and the remainder (argument/block groups).
func splitInvocation(head string) (recv, method, rest string) {
	head = strings.TrimSpace(head)
	stop := len(head)
	for i := 0; i < len(head); i++ {
		if head[i] == '(' || head[i] == '{' || head[i] == ' ' || head[i] == '\t' {
			stop = i
			break
		}
	}
	name := head[:stop]
	rest = head[stop:]

	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		return name[:dot], name[dot+1:], rest
	}
	return "", name, rest
}

// matchGroup returns the index of the closer matching the opener at s[0],
// or -1 when the group never closes.
func matchGroup(s string, open, close byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseArgs(inner string) []Arg {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return nil
	}
	parts := splitTopLevel(inner, ',')
	args := make([]Arg, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		arg := Arg{Name: part}
		if eq := strings.Index(part, "="); eq >= 0 {
			arg.Name = strings.TrimSpace(part[:eq])
			arg.Default = strings.TrimSpace(part[eq+1:])
			arg.HasDefault = true
		}
		args = append(args, arg)
	}
	return args
}

func parseBlock(inner string) *Block {
	inner = strings.TrimSpace(inner)
	block := &Block{}
	if strings.HasPrefix(inner, "|") {
		if end := strings.Index(inner[1:], "|"); end >= 0 {
			block.HasPipes = true
			for _, p := range strings.Split(inner[1:1+end], ",") {
				p = strings.TrimSpace(p)
				if p != "" {
					block.Params = append(block.Params, p)
				}
			}
		}
	}
	return block
}

func parseReturns(tail string) []string {
	tail = strings.TrimSpace(tail)
	if tail == "" {
		return nil
	}
	// A disjunction either uses the word "or" or commas.
	tail = strings.ReplaceAll(tail, " or ", ",")
	parts := splitTopLevel(tail, ',')
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// splitTopLevel splits on sep outside any bracket group.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		ok := b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
		if !ok {
			// Namespaced receiver labels like Foo::Bar are allowed.
			if b == ':' && i+1 < len(s) && s[i+1] == ':' {
				i++
				continue
			}
			return false
		}
	}
	first := s[0]
	return first == '_' || (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')
}

func isMethodName(s string) bool {
	if s == "" {
		return false
	}
	base := s
	switch {
	case strings.HasSuffix(base, "?"), strings.HasSuffix(base, "!"), strings.HasSuffix(base, "="):
		base = base[:len(base)-1]
	case base == "[]", base == "[]=", base == "<=>", base == "==", base == "+", base == "-", base == "*", base == "/", base == "<<":
		return true
	}
	return isIdent(base)
}

// SubLineSpans derives per-line spans for a multi-line region, used when a
// call-seq section arrives as one verbatim node.
func SubLineSpans(base source.Span, lines []string) []source.Span {
	spans := make([]source.Span, len(lines))
	off := base.Start
	for i, line := range lines {
		lineLen, err := safecast.Conv[uint32](len(line))
		if err != nil {
			panic(fmt.Errorf("line length overflow: %w", err))
		}
		end := off + lineLen
		if end > base.End {
			end = base.End
		}
		spans[i] = source.Span{File: base.File, Start: off, End: end}
		off = end + 1 // skip the newline
		if off > base.End {
			off = base.End
		}
	}
	return spans
}
