package markup

import (
	"fmt"

	"fortio.org/safecast"

	"rdlint/internal/diag"
	"rdlint/internal/source"
)

// parseInlines splits one line of prose into inline elements: plain text,
// +mono+ spans and cross-references. Markers are ASCII, so the scan is
// byte-oriented; multi-byte runes only ever land inside plain text runs.
func (p *Parser) parseInlines(lineSpan source.Span, text string) []Inline {
	var out []Inline
	runStart := 0

	flush := func(upto int) {
		if upto > runStart {
			out = append(out, Inline{
				Kind: InlineText,
				Span: subSpan(lineSpan, runStart, upto),
				Text: text[runStart:upto],
			})
		}
	}

	i := 0
	for i < len(text) {
		b := text[i]

		switch {
		case b == '+' && p.monoOpens(text, i):
			if end, ok := monoClose(text, i); ok {
				flush(i)
				out = append(out, Inline{
					Kind: InlineMono,
					Span: subSpan(lineSpan, i, end+1),
					Text: text[i+1 : end],
				})
				i = end + 1
				runStart = i
				continue
			}
			diag.ReportSuggestion(p.opts.Reporter, diag.MarkupUnterminatedMono,
				subSpan(lineSpan, i, i+1),
				"monospace span opened with '+' is never closed on this line").Emit()
			i++

		case b == '#' && atWordBreak(text, i) && i+1 < len(text) && isMethodStart(text[i+1]):
			end := scanMethodName(text, i+1)
			flush(i)
			out = append(out, Inline{
				Kind: InlineCrossRef,
				Span: subSpan(lineSpan, i, end),
				Text: text[i:end],
			})
			i = end
			runStart = i

		case b >= 'A' && b <= 'Z' && atWordBreak(text, i):
			if end, ok := scanQualifiedRef(text, i); ok {
				flush(i)
				out = append(out, Inline{
					Kind: InlineCrossRef,
					Span: subSpan(lineSpan, i, end),
					Text: text[i:end],
				})
				i = end
				runStart = i
				continue
			}
			i++

		default:
			i++
		}
	}
	flush(len(text))
	return out
}

// monoOpens reports whether a '+' at position i can open a monospace span:
// it must sit on a word break and be followed by a non-space character.
func (p *Parser) monoOpens(text string, i int) bool {
	if !atWordBreak(text, i) {
		return false
	}
	if i+1 >= len(text) {
		return false
	}
	next := text[i+1]
	return next != ' ' && next != '\t' && next != '+'
}

// monoClose finds the closing '+' for a span opened at position open.
// The closing marker must not follow whitespace and must end on a word break.
func monoClose(text string, open int) (int, bool) {
	for j := open + 2; j < len(text); j++ {
		if text[j] != '+' {
			continue
		}
		prev := text[j-1]
		if prev == ' ' || prev == '\t' {
			continue
		}
		if j+1 < len(text) && isWordByte(text[j+1]) {
			continue
		}
		return j, true
	}
	return 0, false
}

// atWordBreak reports whether position i starts a new word: begin of line
// or preceded by whitespace or an opening delimiter.
func atWordBreak(text string, i int) bool {
	if i == 0 {
		return true
	}
	switch text[i-1] {
	case ' ', '\t', '(', '[', '{', ',', ';':
		return true
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isMethodStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z')
}

// scanMethodName consumes a method identifier starting at i and returns the
// position just past it. Ruby-style trailing '?', '!' or '=' belongs to the
// name.
func scanMethodName(text string, i int) int {
	for i < len(text) && isWordByte(text[i]) {
		i++
	}
	if i < len(text) && (text[i] == '?' || text[i] == '!' || text[i] == '=') {
		// '=' only counts when not part of '==' prose
		if text[i] != '=' || i+1 >= len(text) || text[i+1] != '=' {
			i++
		}
	}
	return i
}

// scanQualifiedRef tries to consume `Klass#meth` or `Klass.meth` starting at
// an uppercase letter. Returns (end, true) on success.
func scanQualifiedRef(text string, i int) (int, bool) {
	j := i
	for {
		// constant segment
		if j >= len(text) || !(text[j] >= 'A' && text[j] <= 'Z') {
			return 0, false
		}
		j++
		for j < len(text) && isWordByte(text[j]) {
			j++
		}
		// namespace separator
		if j+1 < len(text) && text[j] == ':' && text[j+1] == ':' {
			j += 2
			continue
		}
		break
	}
	if j >= len(text) {
		return 0, false
	}
	sep := text[j]
	if sep != '#' && sep != '.' {
		return 0, false
	}
	if j+1 >= len(text) || !isMethodStart(text[j+1]) {
		return 0, false
	}
	end := scanMethodName(text, j+1)
	return end, true
}

// subSpan narrows a line span to the byte range [from, to) within the line.
func subSpan(lineSpan source.Span, from, to int) source.Span {
	f, err := safecast.Conv[uint32](from)
	if err != nil {
		panic(fmt.Errorf("inline offset overflow: %w", err))
	}
	t, err := safecast.Conv[uint32](to)
	if err != nil {
		panic(fmt.Errorf("inline offset overflow: %w", err))
	}
	return source.Span{
		File:  lineSpan.File,
		Start: lineSpan.Start + f,
		End:   lineSpan.Start + t,
	}
}
