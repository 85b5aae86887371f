// Package diagfmt renders finding bags into the supported output formats:
// pretty terminal text, a one-line-per-finding short form, JSON, SARIF and
// msgpack. Formatting is read-only over the bag; callers sort the bag first
// when a stable order matters.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) mode() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of findings.
type PrettyOpts struct {
	Color         bool
	PathMode      PathMode
	Width         uint8 // максимальная ширина строки, 0 - не ограничено
	ShowContext   bool  // печатать строку источника с подчёркиванием
	ShowNotes     bool
	ShowRationale bool
}

// JSONOpts configures JSON and msgpack output of findings.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeRationale bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}
