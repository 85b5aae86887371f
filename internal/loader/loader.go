// Package loader discovers documentation files and splits them into
// per-method blocks for the check pipeline. A file either carries
// `== method: <name>` delimiters, one per documented method, or is treated
// as a single anonymous block.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fortio.org/safecast"

	"rdlint/internal/source"
)

// DocExt is the extension of documentation files the tool checks.
const DocExt = ".rdoc"

const methodDelimiter = "== method:"

// Block is one documentation block: the unit the pipeline checks.
type Block struct {
	// Method is the documented method name as written after the delimiter
	// ("Array#count"), or the file base name for delimiter-less files.
	Method string
	FileID source.FileID
	Span   source.Span
}

// Discover walks the given roots and returns every documentation file in
// deterministic (lexical) order. A root that is itself a file is accepted
// as-is when it carries the right extension.
func Discover(roots []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", root, err)
		}
		if !info.IsDir() {
			if filepath.Ext(root) != DocExt {
				return nil, fmt.Errorf("%q is not a %s file", root, DocExt)
			}
			if !seen[root] {
				seen[root] = true
				out = append(out, root)
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// Скрытые каталоги не сканируем.
				if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != DocExt {
				return nil
			}
			if !seen[path] {
				seen[path] = true
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %q: %w", root, err)
		}
	}

	sort.Strings(out)
	return out, nil
}

// ErrNoBlocks indicates a documentation file with no content to check.
var ErrNoBlocks = errors.New("no documentation blocks")

// LoadFile loads one documentation file into the file set and extracts its
// blocks.
func LoadFile(fileSet *source.FileSet, path string) ([]Block, error) {
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}
	blocks := ExtractBlocks(fileSet.Get(id))
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoBlocks)
	}
	return blocks, nil
}

// ExtractBlocks splits a loaded file into method blocks. Content before the
// first delimiter is ignored (a file preamble); a file without delimiters
// becomes one block named after the file.
func ExtractBlocks(f *source.File) []Block {
	content := f.Content
	lenContent, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	var blocks []Block

	var current *Block
	lineStart := uint32(0)
	flush := func(end uint32) {
		if current == nil {
			return
		}
		current.Span.End = end
		if !current.Span.Empty() {
			blocks = append(blocks, *current)
		}
		current = nil
	}

	for lineStart < lenContent {
		lineEnd := lineStart
		for lineEnd < lenContent && content[lineEnd] != '\n' {
			lineEnd++
		}
		line := string(content[lineStart:lineEnd])

		if method, ok := parseDelimiter(line); ok {
			flush(lineStart)
			next := lineEnd
			if next < lenContent {
				next++ // съесть перевод строки
			}
			current = &Block{
				Method: method,
				FileID: f.ID,
				Span:   source.Span{File: f.ID, Start: next, End: next},
			}
		}

		lineStart = lineEnd
		if lineStart < lenContent {
			lineStart++
		}
	}
	flush(lenContent)

	if len(blocks) == 0 && len(content) > 0 && hasText(content) {
		name := strings.TrimSuffix(filepath.Base(f.Path), DocExt)
		blocks = append(blocks, Block{
			Method: name,
			FileID: f.ID,
			Span:   source.Span{File: f.ID, Start: 0, End: lenContent},
		})
	}
	return blocks
}

// parseDelimiter matches a `== method: <name>` line and returns the name.
func parseDelimiter(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, methodDelimiter) {
		return "", false
	}
	name := strings.TrimSpace(trimmed[len(methodDelimiter):])
	if name == "" {
		return "", false
	}
	return name, true
}

func hasText(content []byte) bool {
	for _, b := range content {
		switch b {
		case ' ', '\t', '\n', '\r':
		default:
			return true
		}
	}
	return false
}
