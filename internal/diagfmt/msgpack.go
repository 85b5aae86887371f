package diagfmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"rdlint/internal/diag"
	"rdlint/internal/source"
)

// Msgpack writes the same structure as JSON in msgpack encoding, for
// machine consumers that stream many reports.
func Msgpack(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	output := BuildFindingsOutput(bag, fs, opts)
	enc := msgpack.NewEncoder(w)
	// JSON-теги переиспользуются, чтобы оба формата имели одни имена полей.
	enc.SetCustomStructTag("json")
	return enc.Encode(output)
}
