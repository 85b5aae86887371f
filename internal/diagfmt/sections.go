package diagfmt

import (
	"fmt"
	"io"

	"rdlint/internal/section"
	"rdlint/internal/source"
)

// Sections dumps a section map, one line per canonical section in the
// canonical order, marking the absent ones.
func Sections(w io.Writer, m *section.Map, fs *source.FileSet) {
	for _, tag := range section.Tags() {
		sec, ok := m.Get(tag)
		if !ok {
			fmt.Fprintf(w, "%-22s absent\n", tag.String())
			continue
		}
		start, end := fs.Resolve(sec.Span)
		fmt.Fprintf(w, "%-22s lines %d-%d, %d node(s)\n",
			tag.String(), start.Line, end.Line, len(sec.Nodes))
	}
}
