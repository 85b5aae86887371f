// Package callseq parses declared invocation signatures of the form
//
//	receiver.method(arg, opt = default) {|elem| ... } -> type or other
//
// The same grammar backs both section detection (is this line a call-seq
// entry at all?) and entry extraction for the rule evaluator.
package callseq

import (
	"rdlint/internal/source"
)

// Arg is one argument descriptor of a call-seq entry.
type Arg struct {
	Name       string
	HasDefault bool
	Default    string
}

// Block describes a declared block argument. HasPipes reports whether the
// block was rendered with the {|...|} parameter form.
type Block struct {
	Params   []string
	HasPipes bool
}

// Entry is one parsed invocation signature.
type Entry struct {
	Span source.Span
	Raw  string

	// Receiver is the receiver-type label, "" for entries written without
	// one (non-foreign-binding methods).
	Receiver string
	Method   string

	HasParens bool
	Args      []Arg
	Block     *Block

	// Returns holds the return-type labels of the disjunction, in order.
	// The sentinels "self", "object" and "nil" pass through verbatim.
	Returns []string
}

// AcceptsArguments reports whether the entry declares at least one argument.
func (e *Entry) AcceptsArguments() bool {
	return len(e.Args) > 0
}

// AcceptsBlock reports whether the entry declares a block argument.
func (e *Entry) AcceptsBlock() bool {
	return e.Block != nil
}

// Problem is one grammar defect found while parsing an entry. The rule
// evaluator surfaces problems as R6 violations.
type Problem struct {
	Span source.Span
	Msg  string
}
