// Package rules applies the conformance rule set to a segmented
// documentation block. Every rule is a pure function of (section map,
// call-seq entries, configuration); there is no global registry state, so
// concurrent evaluations may share one Config by reference.
package rules

import (
	"fmt"

	"rdlint/internal/diag"
)

// Rule numbers.
const (
	ruleMin = 1
	ruleMax = 8
)

// Default thresholds.
const (
	DefaultSynopsisMaxChars  = 140
	DefaultHeadingMinDetails = 300
	DefaultMaxRelatedMethods = 3
	DefaultRedundancyOverlap = 70 // percent of synopsis tokens found in details
)

// Setting is the configuration of one rule.
type Setting struct {
	Enabled bool
	// Severity is the effective severity the rule reports with. Soft
	// heuristics default to Suggestion; configuration may override, but
	// the engine itself never upgrades them.
	Severity diag.Severity
	// Threshold is the rule-specific numeric parameter (characters for
	// R3/R7, reference count for R4, overlap percent for the redundancy
	// check). Zero means the built-in default.
	Threshold int
}

// Config holds the settings of all rules, indexed by rule number.
type Config struct {
	settings [ruleMax + 1]Setting
}

// DefaultConfig enables every rule with the severities the policy assigns.
func DefaultConfig() Config {
	var c Config
	set := func(n int, sev diag.Severity, threshold int) {
		c.settings[n] = Setting{Enabled: true, Severity: sev, Threshold: threshold}
	}
	set(1, diag.SevViolation, 0)
	set(2, diag.SevViolation, 0)
	set(3, diag.SevSuggestion, DefaultSynopsisMaxChars)
	set(4, diag.SevViolation, DefaultMaxRelatedMethods)
	set(5, diag.SevSuggestion, 0)
	set(6, diag.SevViolation, 0)
	set(7, diag.SevSuggestion, DefaultHeadingMinDetails)
	set(8, diag.SevSuggestion, 0)
	return c
}

// Rule returns the setting for rule number n; unknown numbers come back
// disabled.
func (c *Config) Rule(n int) Setting {
	if n < ruleMin || n > ruleMax {
		return Setting{}
	}
	return c.settings[n]
}

// SetEnabled flips one rule on or off.
func (c *Config) SetEnabled(id string, enabled bool) error {
	n, err := ruleNumber(id)
	if err != nil {
		return err
	}
	c.settings[n].Enabled = enabled
	return nil
}

// SetSeverity overrides the reporting severity of one rule.
func (c *Config) SetSeverity(id string, severity string) error {
	n, err := ruleNumber(id)
	if err != nil {
		return err
	}
	sev, ok := diag.ParseSeverity(severity)
	if !ok {
		return fmt.Errorf("unknown severity %q for rule %s", severity, id)
	}
	c.settings[n].Severity = sev
	return nil
}

// SetThreshold overrides the numeric parameter of one rule.
func (c *Config) SetThreshold(id string, threshold int) error {
	n, err := ruleNumber(id)
	if err != nil {
		return err
	}
	if threshold < 0 {
		return fmt.Errorf("negative threshold for rule %s", id)
	}
	c.settings[n].Threshold = threshold
	return nil
}

func ruleNumber(id string) (int, error) {
	code, ok := diag.RuleCodeByID(id)
	if !ok {
		return 0, fmt.Errorf("unknown rule identifier %q", id)
	}
	return code.RuleNumber(), nil
}

// threshold returns the configured threshold or the fallback default.
func (s Setting) threshold(def int) int {
	if s.Threshold > 0 {
		return s.Threshold
	}
	return def
}
