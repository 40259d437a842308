package source

import (
	"fmt"
	"path/filepath"
	"sort"

	"fortio.org/safecast"
)

// buildLineIndex returns the byte offsets at which each line begins.
// Offset 0 is always present; every byte after a '\n' starts a new line.
// len(result) == line count == 1 + number of '\n' bytes.
func buildLineIndex(content []byte) []uint32 {
	offsets := make([]uint32, 0, len(content)/40+16)
	offsets = append(offsets, 0)
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i + 1)
			if err != nil {
				panic(fmt.Errorf("line offset overflow: %w", err))
			}
			offsets = append(offsets, off)
		}
	}
	return offsets
}

// lineForOffset returns the 1-based line owning the byte offset:
// the largest index i with lineOffsets[i] <= off, plus one.
func lineForOffset(lineOffsets []uint32, off uint32) uint32 {
	// sort.Search находит первый индекс с lineOffsets[i] > off.
	idx := sort.Search(len(lineOffsets), func(i int) bool {
		return lineOffsets[i] > off
	})
	return mustUint32(idx) // idx >= 1, так как lineOffsets[0] == 0
}

func mustUint32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("uint32 overflow: %w", err))
	}
	return v
}

// canonicalPath normalizes a path for use as a cache key: absolute,
// cleaned, slash-separated. Symlinks are resolved when possible so two
// spellings of one file share an entry.
func canonicalPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.ToSlash(filepath.Clean(path))
}
