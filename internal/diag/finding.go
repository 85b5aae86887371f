package diag

import (
	"rdlint/internal/source"
)

// Note is a secondary span with context for a finding.
type Note struct {
	Span source.Span
	Msg  string
}

// Finding is one diagnostic produced by the pipeline: a markup parse
// problem, a segmentation notice, or a conformance rule result.
type Finding struct {
	Severity  Severity
	Code      Code
	Message   string
	Primary   source.Span
	Notes     []Note
	Rationale string
}

func New(sev Severity, code Code, primary source.Span, msg string) Finding {
	return Finding{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewViolation(code Code, primary source.Span, msg string) Finding {
	return New(SevViolation, code, primary, msg)
}

func NewSuggestion(code Code, primary source.Span, msg string) Finding {
	return New(SevSuggestion, code, primary, msg)
}

func (f Finding) WithNote(sp source.Span, msg string) Finding {
	f.Notes = append(f.Notes, Note{Span: sp, Msg: msg})
	return f
}

func (f Finding) WithRationale(text string) Finding {
	f.Rationale = text
	return f
}
