package diagfmt

import (
	"io"

	"rdlint/internal/diag"
	"rdlint/internal/source"
)

// Short renders one line per finding in the stable golden-test form:
// <path>:<line>:<col>: <SEV> <CODE>: <message>
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	_, err := io.WriteString(w, diag.FormatShortFindings(bag.Items(), fs, includeNotes))
	return err
}
