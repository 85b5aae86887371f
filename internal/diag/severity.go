package diag

// Severity defines the importance of a finding.
type Severity uint8

const (
	// SevInfo is for informational findings (e.g. segmentation ambiguity).
	SevInfo Severity = iota
	// SevSuggestion is a soft style recommendation; never fails a check.
	SevSuggestion
	// SevViolation is a hard rule breach that fails a conformance check.
	SevViolation
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevSuggestion:
		return "SUGGESTION"
	case SevViolation:
		return "VIOLATION"
	}
	return "UNKNOWN"
}

// ParseSeverity maps a configuration string to a Severity.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "info", "INFO":
		return SevInfo, true
	case "suggestion", "SUGGESTION":
		return SevSuggestion, true
	case "violation", "VIOLATION":
		return SevViolation, true
	}
	return SevInfo, false
}
