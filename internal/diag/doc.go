// Package diag defines the finding model shared by all pipeline phases.
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced by the markup parser, the block segmenter and the
//     rule evaluator.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     findings without coupling to concrete storage or formatting layers.
//
// Finding is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Suggestion, Violation).
//   - Code – compact numeric identifier (see codes.go) with stable string
//     form; conformance rules render as "R1".."R8".
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Rationale – free-form explanation of why the rule exists.
//
// Findings are immutable value objects: producers build them, a Bag collects
// them, and internal/diagfmt renders them. The package performs no IO and
// holds no global state, so concurrent block evaluations can each own a Bag
// and merge deterministically afterwards.
package diag
