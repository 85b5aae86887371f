package diag

import (
	"fmt"
	"sort"
	"strings"

	"rdlint/internal/source"
)

type shortFinding struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortFindings renders findings into a stable, single-line-per-entry
// representation used for CLI short output and golden tests. Entries are
// sorted deterministically and returned as a single string (empty when there
// is nothing to print).
func FormatShortFindings(findings []Finding, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(findings) == 0 {
		return ""
	}

	rendered := make([]shortFinding, 0, len(findings))
	for _, f := range findings {
		start, _ := fs.Resolve(f.Primary)
		rendered = append(rendered, shortFinding{
			Severity: f.Severity.String(),
			Code:     f.Code.ID(),
			Path:     fs.Get(f.Primary.File).FormatPath("relative", fs.BaseDir()),
			Line:     start.Line,
			Column:   start.Col,
			Message:  f.Message,
		})
		if includeNotes {
			for _, n := range f.Notes {
				nstart, _ := fs.Resolve(n.Span)
				rendered = append(rendered, shortFinding{
					Severity: "NOTE",
					Code:     f.Code.ID(),
					Path:     fs.Get(n.Span.File).FormatPath("relative", fs.BaseDir()),
					Line:     nstart.Line,
					Column:   nstart.Col,
					Message:  n.Msg,
				})
			}
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		fi, fj := rendered[i], rendered[j]
		if fi.Path != fj.Path {
			return fi.Path < fj.Path
		}
		if fi.Line != fj.Line {
			return fi.Line < fj.Line
		}
		if fi.Column != fj.Column {
			return fi.Column < fj.Column
		}
		if fi.Severity != fj.Severity {
			return fi.Severity < fj.Severity
		}
		if fi.Code != fj.Code {
			return fi.Code < fj.Code
		}
		return fi.Message < fj.Message
	})

	var sb strings.Builder
	for _, r := range rendered {
		fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s\n", r.Path, r.Line, r.Column, r.Severity, r.Code, r.Message)
	}
	return sb.String()
}
