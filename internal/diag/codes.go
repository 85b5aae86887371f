package diag

import (
	"fmt"
)

// Code is a compact numeric identifier for a finding kind. Codes are grouped
// by pipeline phase: 1000 markup parsing, 2000 segmentation, 3000 rules,
// 4000 IO. Rule codes have stable short IDs "R1".."R8" used in configuration
// and reports.
type Code uint16

const (
	UnknownCode Code = 0

	// Markup parsing (recovered locally, never fatal).
	MarkupInfo             Code = 1000
	MarkupUnterminatedMono Code = 1001
	MarkupUnclosedFence    Code = 1002
	MarkupListTooDeep      Code = 1003
	MarkupDanglingTerm     Code = 1004
	MarkupBareHeading      Code = 1005

	// Segmentation.
	SegInfo             Code = 2000
	SegAmbiguous        Code = 2001
	SegCallSeqNotFirst  Code = 2002
	SegSynopsisMisorder Code = 2003
	SegDuplicateSection Code = 2004

	// Conformance rules. The numeric offset is the rule number.
	RuleArgsNotAccepted   Code = 3001 // R1
	RuleBlockFormMismatch Code = 3002 // R2
	RuleSynopsisRedundant Code = 3003 // R3
	RuleTooManyRelated    Code = 3004 // R4
	RuleObviousException  Code = 3005 // R5
	RuleCallSeqGrammar    Code = 3006 // R6
	RuleHeadingOverkill   Code = 3007 // R7
	RuleDefaultSplit      Code = 3008 // R8

	// IO (block loading).
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown finding",

	MarkupInfo:             "markup notice",
	MarkupUnterminatedMono: "unterminated monospace span",
	MarkupUnclosedFence:    "unclosed verbatim fence",
	MarkupListTooDeep:      "list nesting exceeds maximum depth",
	MarkupDanglingTerm:     "definition term without description",
	MarkupBareHeading:      "heading marker without text",

	SegInfo:             "segmentation notice",
	SegAmbiguous:        "ambiguous section boundary",
	SegCallSeqNotFirst:  "call-seq is not the first section",
	SegSynopsisMisorder: "synopsis does not precede details",
	SegDuplicateSection: "duplicate section",

	RuleArgsNotAccepted:   "argument description without arguments",
	RuleBlockFormMismatch: "block form documented inconsistently",
	RuleSynopsisRedundant: "synopsis redundant with details",
	RuleTooManyRelated:    "too many related methods",
	RuleObviousException:  "obvious exception documented",
	RuleCallSeqGrammar:    "call-seq grammar violation",
	RuleHeadingOverkill:   "heading in short details",
	RuleDefaultSplit:      "default marker hides divergent behavior",

	IOLoadFileError: "failed to load documentation file",
}

// IsRule reports whether the code belongs to the conformance-rule group.
func (c Code) IsRule() bool {
	return c > 3000 && c < 4000
}

// RuleNumber returns the rule ordinal for rule codes and 0 otherwise.
func (c Code) RuleNumber() int {
	if !c.IsRule() {
		return 0
	}
	return int(c) - 3000
}

// ID returns the stable short identifier used in reports and configuration.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("MRK%04d", ic)
	case ic > 3000 && ic < 4000:
		return fmt.Sprintf("R%d", ic-3000)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SEG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Title returns the short human description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// RuleCodeByID resolves a configuration identifier ("R1".."R8") to its Code.
func RuleCodeByID(id string) (Code, bool) {
	var n int
	if _, err := fmt.Sscanf(id, "R%d", &n); err != nil {
		return UnknownCode, false
	}
	c := Code(3000 + n)
	if !c.IsRule() {
		return UnknownCode, false
	}
	if _, ok := codeDescription[c]; !ok {
		return UnknownCode, false
	}
	return c, true
}
