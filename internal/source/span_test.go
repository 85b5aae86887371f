package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		other    Span
		expected Span
	}{
		{
			name:     "disjoint spans merge to hull",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "contained span is a no-op",
			span:     Span{File: 1, Start: 10, End: 40},
			other:    Span{File: 1, Start: 15, End: 20},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "other extends to the left",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 2, End: 12},
			expected: Span{File: 1, Start: 2, End: 20},
		},
		{
			name:     "different file is ignored",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "empty span covered by other",
			span:     Span{File: 1, Start: 10, End: 10},
			other:    Span{File: 1, Start: 5, End: 8},
			expected: Span{File: 1, Start: 5, End: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.span.Cover(tt.other)
			if result != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	sp := Span{File: 1, Start: 10, End: 20}
	cases := []struct {
		off  uint32
		want bool
	}{
		{9, false},
		{10, true},
		{19, true},
		{20, false},
	}
	for _, c := range cases {
		if got := sp.Contains(c.off); got != c.want {
			t.Errorf("Contains(%d) = %v, want %v", c.off, got, c.want)
		}
	}
}

func TestSpan_EmptyAndLen(t *testing.T) {
	if !(Span{File: 1, Start: 5, End: 5}).Empty() {
		t.Error("zero-length span should be empty")
	}
	if (Span{File: 1, Start: 5, End: 9}).Len() != 4 {
		t.Error("Len() should be 4")
	}
}
