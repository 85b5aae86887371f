package source

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	baseDir := t.TempDir()
	target := filepath.Join(baseDir, "docs", "array.rdoc")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if got != "docs/array.rdoc" {
		t.Errorf("RelativePath = %q, want %q", got, "docs/array.rdoc")
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	baseDir := t.TempDir()
	outside := t.TempDir()
	target := filepath.Join(outside, "array.rdoc")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if strings.HasPrefix(got, "..") {
		t.Errorf("RelativePath escaped base with %q, want absolute fallback", got)
	}
	if !filepath.IsAbs(filepath.FromSlash(got)) {
		t.Errorf("RelativePath = %q, want absolute path", got)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		changed bool
	}{
		{"no carriage returns", "a\nb\n", "a\nb\n", false},
		{"windows endings", "a\r\nb\r\n", "a\nb\n", true},
		{"lone cr preserved", "a\rb\n", "a\rb\n", false},
		{"mixed", "a\r\nb\rc\n", "a\nb\rc\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, changed := normalizeCRLF([]byte(tt.in))
			if string(out) != tt.want || changed != tt.changed {
				t.Errorf("normalizeCRLF(%q) = %q,%v want %q,%v", tt.in, out, changed, tt.want, tt.changed)
			}
		})
	}
}

func TestToLineCol(t *testing.T) {
	idx := buildLineIndex([]byte("ab\ncde\n\nf"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}},
		{3, LineCol{Line: 2, Col: 1}},
		{6, LineCol{Line: 2, Col: 4}},
		{7, LineCol{Line: 3, Col: 1}},
		{8, LineCol{Line: 4, Col: 1}},
	}
	for _, tt := range tests {
		if got := toLineCol(idx, tt.off); got != tt.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}
