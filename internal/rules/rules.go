package rules

import (
	"fmt"
	"strings"

	"rdlint/internal/callseq"
	"rdlint/internal/diag"
	"rdlint/internal/markup"
	"rdlint/internal/section"
	"rdlint/internal/source"
)

// Input is everything a rule may look at. Rules never mutate it.
type Input struct {
	Sections  *section.Map
	Entries   []callseq.Entry
	Problems  []callseq.Problem
	BlockSpan source.Span
}

type ruleFunc func(in Input, cfg *Config) []diag.Finding

// ruleTable is the fixed evaluation order. It is immutable: configuration
// decides what is enabled, never this table.
var ruleTable = [...]struct {
	number int
	code   diag.Code
	fn     ruleFunc
}{
	{1, diag.RuleArgsNotAccepted, ruleArgsNotAccepted},
	{2, diag.RuleBlockFormMismatch, ruleBlockFormMismatch},
	{3, diag.RuleSynopsisRedundant, ruleSynopsisRedundant},
	{4, diag.RuleTooManyRelated, ruleTooManyRelated},
	{5, diag.RuleObviousException, ruleObviousException},
	{6, diag.RuleCallSeqGrammar, ruleCallSeqGrammar},
	{7, diag.RuleHeadingOverkill, ruleHeadingOverkill},
	{8, diag.RuleDefaultSplit, ruleDefaultSplit},
}

// Evaluate runs every enabled rule in fixed order and emits the findings,
// with configured severities applied.
func Evaluate(in Input, cfg *Config, reporter diag.Reporter) {
	if reporter == nil {
		return
	}
	for _, entry := range ruleTable {
		setting := cfg.Rule(entry.number)
		if !setting.Enabled {
			continue
		}
		for _, f := range entry.fn(in, cfg) {
			b := diag.NewReportBuilder(reporter, setting.Severity, f.Code, f.Primary, f.Message)
			for _, n := range f.Notes {
				b.WithNote(n.Span, n.Msg)
			}
			if f.Rationale != "" {
				b.WithRationale(f.Rationale)
			}
			b.Emit()
		}
	}
}

// R1: a block with no argument-accepting and no block-accepting entries
// must not carry an argument description.
func ruleArgsNotAccepted(in Input, _ *Config) []diag.Finding {
	argDesc, ok := in.Sections.Get(section.TagArgumentDescription)
	if !ok {
		return nil
	}
	if len(in.Entries) == 0 {
		// No call-seq to compare against; stay silent rather than guess.
		return nil
	}
	for _, e := range in.Entries {
		if e.AcceptsArguments() || e.AcceptsBlock() {
			return nil
		}
	}
	return []diag.Finding{
		diag.NewViolation(diag.RuleArgsNotAccepted, argDesc.Span,
			"argument description present, but no call-seq entry accepts an argument or a block").
			WithRationale("there is nothing for the description to describe"),
	}
}

// R2: the details state block-given vs block-less divergence, yet the
// call-seq documents only one of the two forms.
func ruleBlockFormMismatch(in Input, _ *Config) []diag.Finding {
	details, ok := in.Sections.Get(section.TagDetails)
	if !ok || len(in.Entries) == 0 {
		return nil
	}
	if !statesBlockDivergence(sectionText(details)) {
		return nil
	}
	hasBlockForm := false
	hasPlainForm := false
	for _, e := range in.Entries {
		if e.AcceptsBlock() {
			hasBlockForm = true
		} else {
			hasPlainForm = true
		}
	}
	if hasBlockForm && hasPlainForm {
		return nil
	}
	missing := "block"
	if hasBlockForm {
		missing = "block-less"
	}
	cs, _ := in.Sections.Get(section.TagCallSeq)
	sp := details.Span
	if cs != nil {
		sp = cs.Span
	}
	return []diag.Finding{
		diag.NewViolation(diag.RuleBlockFormMismatch, sp,
			fmt.Sprintf("details describe divergent block behavior, but the %s form is not documented in call-seq", missing)).
			WithNote(details.Span, "divergent behavior stated here"),
	}
}

// R3: an overlong multi-sentence synopsis whose facts the details restate.
func ruleSynopsisRedundant(in Input, cfg *Config) []diag.Finding {
	synopsis, ok := in.Sections.Get(section.TagSynopsis)
	if !ok {
		return nil
	}
	details, ok := in.Sections.Get(section.TagDetails)
	if !ok {
		return nil
	}
	setting := cfg.Rule(3)
	maxChars := setting.threshold(DefaultSynopsisMaxChars)

	text := sectionText(synopsis)
	if len(text) <= maxChars || countSentences(text) <= 1 {
		return nil
	}
	overlap := tokenOverlapPercent(significantTokens(text), significantTokens(sectionText(details)))
	if overlap < DefaultRedundancyOverlap {
		return nil
	}
	return []diag.Finding{
		diag.NewSuggestion(diag.RuleSynopsisRedundant, synopsis.Span,
			fmt.Sprintf("synopsis is %d characters over several sentences and the details restate it (%d%% token overlap)", len(text), overlap)).
			WithRationale("the synopsis should be a single short sentence; depth belongs to the details"),
	}
}

// R4: more than the allowed number of cross-references on the Related line.
func ruleTooManyRelated(in Input, cfg *Config) []diag.Finding {
	related, ok := in.Sections.Get(section.TagRelatedMethods)
	if !ok || len(related.Nodes) == 0 {
		return nil
	}
	maxRefs := cfg.Rule(4).threshold(DefaultMaxRelatedMethods)

	node := related.Nodes[0]
	count := len(node.CrossRefs())
	if count == 0 {
		// No parseable references; fall back to the comma-separated items
		// after the marker.
		rest := strings.TrimPrefix(node.PlainText(), "Related:")
		for _, item := range strings.FieldsFunc(rest, func(r rune) bool { return r == ',' || r == ' ' }) {
			if strings.TrimSpace(item) != "" {
				count++
			}
		}
	}
	if count <= maxRefs {
		return nil
	}
	return []diag.Finding{
		diag.NewViolation(diag.RuleTooManyRelated, related.Span,
			fmt.Sprintf("related-methods line lists %d cross-references; at most %d are allowed", count, maxRefs)),
	}
}

// R5: an exception of the type-mismatch family is documented although it
// follows directly from an argument-type constraint, and no raise example
// backs it up.
func ruleObviousException(in Input, _ *Config) []diag.Finding {
	argDesc, ok := in.Sections.Get(section.TagArgumentDescription)
	if !ok {
		return nil
	}
	constrained := false
	for _, n := range argDesc.Nodes {
		for _, e := range n.Entries {
			if section.TypeLike(e.DescText()) {
				constrained = true
			}
		}
	}
	if !constrained {
		return nil
	}

	details, _ := in.Sections.Get(section.TagDetails)
	corner, _ := in.Sections.Get(section.TagCornerCases)
	prose := sectionText(details) + " " + sectionText(corner)

	var out []diag.Finding
	for _, exc := range typeMismatchExceptions {
		if !strings.Contains(prose, exc) {
			continue
		}
		if hasRaiseExample([]*section.Section{details, corner}, exc) {
			continue
		}
		sp := argDesc.Span
		if corner != nil {
			sp = corner.Span
		} else if details != nil {
			sp = details.Span
		}
		out = append(out, diag.NewSuggestion(diag.RuleObviousException, sp,
			fmt.Sprintf("%s is an obvious consequence of the stated argument-type constraint", exc)).
			WithRationale("documenting the obvious dilutes the corner cases worth reading"))
	}
	return out
}

// R6: call-seq grammar violations collected during entry parsing, plus a
// marker section without any entries.
func ruleCallSeqGrammar(in Input, _ *Config) []diag.Finding {
	var out []diag.Finding
	for _, p := range in.Problems {
		out = append(out, diag.NewViolation(diag.RuleCallSeqGrammar, p.Span, p.Msg))
	}
	if cs, ok := in.Sections.Get(section.TagCallSeq); ok && len(in.Entries) == 0 && len(in.Problems) == 0 {
		out = append(out, diag.NewViolation(diag.RuleCallSeqGrammar, cs.Span,
			"call-seq section declares no invocation signature"))
	}
	return out
}

// R7: headings and horizontal rules are reserved for long documentation.
func ruleHeadingOverkill(in Input, cfg *Config) []diag.Finding {
	details, ok := in.Sections.Get(section.TagDetails)
	if !ok {
		return nil
	}
	minChars := cfg.Rule(7).threshold(DefaultHeadingMinDetails)
	if len(sectionText(details)) >= minChars {
		return nil
	}
	for _, n := range details.Nodes {
		if n.Kind == markup.KindHeading || n.Kind == markup.KindRule {
			construct := "heading"
			if n.Kind == markup.KindRule {
				construct = "horizontal rule"
			}
			return []diag.Finding{
				diag.NewSuggestion(diag.RuleHeadingOverkill, n.Span,
					fmt.Sprintf("%s used although the details run under %d characters", construct, minChars)).
					WithRationale("headings are reserved for long, complex documentation"),
			}
		}
	}
	return nil
}

// R8: a single entry hides divergent omitted-vs-explicit behavior behind a
// default-value marker. Heuristic: fires only when the details state the
// divergence, and only ever as a soft warning.
func ruleDefaultSplit(in Input, _ *Config) []diag.Finding {
	details, ok := in.Sections.Get(section.TagDetails)
	if !ok {
		return nil
	}
	if !statesOmittedDivergence(sectionText(details)) {
		return nil
	}
	for _, e := range in.Entries {
		for _, a := range e.Args {
			if !a.HasDefault {
				continue
			}
			return []diag.Finding{
				diag.NewSuggestion(diag.RuleDefaultSplit, e.Span,
					fmt.Sprintf("argument %q uses a default marker while the details state divergent behavior when it is omitted; split into two call-seq entries", a.Name)).
					WithNote(details.Span, "divergent behavior stated here").
					WithRationale("omitted and explicit-default behavior that differ deserve separate entries"),
			}
		}
	}
	return nil
}
