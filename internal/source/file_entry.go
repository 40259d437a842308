package source

import (
	"time"

	"mica/internal/intern"
)

// FileEntry is the immutable in-memory form of one loaded file. The buffer
// carries a trailing NUL so scanners may read one byte past the content
// without a bounds check. Entries are shared between the FileManager cache
// and any SourceManager file table; whoever holds the pointer last keeps
// the buffer alive.
type FileEntry struct {
	filename intern.Handle // canonical path
	data     []byte        // size+1 bytes, data[size] == 0
	size     uint32
	modTime  time.Time
}

// NewFileEntry builds an entry from raw content. content is copied into a
// NUL-terminated buffer. Intended for virtual files (tests, stdin); disk
// files come from a FileManager.
func NewFileEntry(filename intern.Handle, content []byte, modTime time.Time) *FileEntry {
	buf := make([]byte, len(content)+1)
	copy(buf, content)
	return &FileEntry{
		filename: filename,
		data:     buf,
		size:     mustUint32(len(content)),
		modTime:  modTime,
	}
}

// Filename returns the interned canonical path.
func (e *FileEntry) Filename() intern.Handle { return e.filename }

// Name returns the canonical path as a string.
func (e *FileEntry) Name() string { return e.filename.String() }

// Size returns the content size in bytes, excluding the NUL.
func (e *FileEntry) Size() uint32 { return e.size }

// ModTime returns the file's modification time at load.
func (e *FileEntry) ModTime() time.Time { return e.modTime }

// Bytes returns the content without the trailing NUL.
func (e *FileEntry) Bytes() []byte { return e.data[:e.size] }

// Buffer returns the full NUL-terminated buffer (size+1 bytes).
func (e *FileEntry) Buffer() []byte { return e.data }
