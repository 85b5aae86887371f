package diag

import "rdlint/internal/source"

// ReportBuilder accumulates finding details before emitting to a Reporter.
type ReportBuilder struct {
	reporter Reporter
	finding  Finding
	emitted  bool
}

// NewReportBuilder constructs a builder bound to a Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		finding: Finding{
			Severity: sev,
			Code:     code,
			Message:  msg,
			Primary:  primary,
		},
	}
}

// ReportViolation is a shortcut for SevViolation findings.
func ReportViolation(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevViolation, code, primary, msg)
}

// ReportSuggestion is a shortcut for SevSuggestion findings.
func ReportSuggestion(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevSuggestion, code, primary, msg)
}

// ReportInfo is a shortcut for SevInfo findings.
func ReportInfo(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, primary, msg)
}

// WithNote appends a note to the finding.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.finding.Notes = append(b.finding.Notes, Note{Span: sp, Msg: msg})
	return b
}

// WithRationale sets the free-form rationale text.
func (b *ReportBuilder) WithRationale(text string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.finding.Rationale = text
	return b
}

// Emit sends the finding to the underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.finding.Code, b.finding.Severity, b.finding.Primary, b.finding.Message, b.finding.Notes, b.finding.Rationale)
	}
	b.emitted = true
}

// Finding returns the accumulated finding without emitting.
func (b *ReportBuilder) Finding() Finding {
	if b == nil {
		return Finding{}
	}
	return b.finding
}
