package source

import (
	"slices"
	"testing"
)

func TestBuildLineIndex(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []uint32
	}{
		{"empty", "", []uint32{0}},
		{"one line no newline", "abc", []uint32{0}},
		{"one line with newline", "abc\n", []uint32{0, 4}},
		{"two lines", "a\nb", []uint32{0, 2}},
		{"blank lines", "\n\n", []uint32{0, 1, 2}},
		{"crlf", "a\r\nb", []uint32{0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildLineIndex([]byte(tt.content))
			if !slices.Equal(got, tt.want) {
				t.Errorf("buildLineIndex(%q) = %v, ожидали %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestLineForOffset(t *testing.T) {
	// "aa\nbb\ncc" -> строки с 0, 3, 6
	idx := buildLineIndex([]byte("aa\nbb\ncc"))

	tests := []struct {
		off  uint32
		want uint32
	}{
		{0, 1}, {1, 1}, {2, 1}, // '\n' принадлежит первой строке
		{3, 2}, {5, 2},
		{6, 3}, {8, 3}, // EOF-смещение на последней строке
	}
	for _, tt := range tests {
		if got := lineForOffset(idx, tt.off); got != tt.want {
			t.Errorf("lineForOffset(%d) = %d, ожидали %d", tt.off, got, tt.want)
		}
	}
}

func TestLineIndexStrictlyIncreasing(t *testing.T) {
	idx := buildLineIndex([]byte("x\ny\n\nzz\n"))
	if idx[0] != 0 {
		t.Fatalf("первый офсет должен быть 0, получили %d", idx[0])
	}
	for i := 1; i < len(idx); i++ {
		if idx[i] <= idx[i-1] {
			t.Fatalf("офсеты должны строго расти: %v", idx)
		}
	}
}
