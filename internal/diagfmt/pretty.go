package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rdlint/internal/diag"
	"rdlint/internal/source"
)

// Pretty форматирует находки в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждой находки печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и
// Rationale. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, f := range bag.Items() {
		prettyFinding(w, f, fs, opts)
	}
}

func prettyFinding(w io.Writer, f diag.Finding, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(f.Primary.File)
	start, _ := fs.Resolve(f.Primary)
	path := file.FormatPath(opts.PathMode.mode(), fs.BaseDir())

	sev := f.Severity.String()
	code := f.Code.ID()
	if opts.Color {
		sev = severityColor(f.Severity).Sprint(sev)
		code = color.New(color.Bold).Sprint(code)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, code, f.Message)

	if opts.ShowContext {
		prettyContext(w, file, f.Primary, start, f.Severity, opts)
	}
	if opts.ShowNotes {
		for _, n := range f.Notes {
			nfile := fs.Get(n.Span.File)
			nstart, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  note: %s (%s:%d:%d)\n",
				n.Msg, nfile.FormatPath(opts.PathMode.mode(), fs.BaseDir()), nstart.Line, nstart.Col)
		}
	}
	if opts.ShowRationale && f.Rationale != "" {
		fmt.Fprintf(w, "  rationale: %s\n", f.Rationale)
	}
}

// prettyContext печатает исходную строку и подчёркивание ^~~~ под span.
func prettyContext(w io.Writer, file *source.File, span source.Span, start source.LineCol, sev diag.Severity, opts PrettyOpts) {
	line := strings.TrimRight(file.GetLine(start.Line), "\n")
	if line == "" {
		return
	}
	shown := line
	if opts.Width > 0 {
		shown = runewidth.Truncate(shown, int(opts.Width), "…")
	}
	fmt.Fprintf(w, "    %s\n", shown)

	// Ширины считаем по руноширине, чтобы каретка вставала под нужные
	// колонки и при широких символах.
	col := int(start.Col) - 1
	if col < 0 || col > len(line) {
		return
	}
	prefix := runewidth.StringWidth(line[:col])
	spanLen := int(span.End - span.Start)
	rest := line[col:]
	if spanLen > len(rest) {
		spanLen = len(rest)
	}
	width := runewidth.StringWidth(rest[:spanLen])
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = severityColor(sev).Sprint(marker)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", prefix), marker)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevViolation:
		return color.New(color.FgRed, color.Bold)
	case diag.SevSuggestion:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}
