package arena

const (
	// DefaultChunkSize is the size of a freshly opened chunk.
	DefaultChunkSize = 1 << 20 // 1 MiB
	// MinChunkSize is the lower bound enforced on configured chunk sizes.
	MinChunkSize = 1 << 10 // 1 KiB
	// MaxAllocSize is the per-request cap; larger requests return nil.
	MaxAllocSize = 512 << 10
	// DefaultAlign is the alignment used by Alloc when none is given.
	DefaultAlign = 8
)

// Stats tracks arena usage counters. CurrentUsage падает на Clear и Reset,
// ChunkCount — на Reset; остальные счётчики только растут.
type Stats struct {
	TotalAllocated uint64 // bytes handed out, including alignment padding
	TotalRequested uint64 // bytes actually requested by callers
	AllocCount     uint64
	ChunkCount     uint64
	PeakUsage      uint64
	CurrentUsage   uint64
	WastedBytes    uint64 // alignment padding
}

// chunk is a single backing buffer. The buffer is allocated once and never
// grows, so sub-slices handed to callers stay valid for the arena's lifetime.
type chunk struct {
	buf  []byte
	used uint32
}

func (c *chunk) remaining() uint32 {
	lenBuf := uint32(len(c.buf))
	return lenBuf - c.used
}

// Arena is a bump allocator for many-small-object workloads: the interner's
// content storage, transient per-phase scratch data. Not safe for concurrent
// use; one goroutine (or one owning interner) at a time.
type Arena struct {
	chunks    []*chunk
	chunkSize uint32
	stats     Stats
}

// New creates an arena with the default chunk size.
func New() *Arena {
	return NewWithChunkSize(DefaultChunkSize)
}

// NewWithChunkSize creates an arena whose chunks are size bytes.
// Sizes below MinChunkSize are clamped.
func NewWithChunkSize(size int) *Arena {
	if size < MinChunkSize {
		size = MinChunkSize
	}
	a := &Arena{chunkSize: uint32(size)}
	a.grow(a.chunkSize)
	return a
}

func (a *Arena) grow(size uint32) *chunk {
	c := &chunk{buf: make([]byte, size)}
	a.chunks = append(a.chunks, c)
	a.stats.ChunkCount++
	return c
}

// current возвращает последний чанк; он всегда существует.
func (a *Arena) current() *chunk {
	return a.chunks[len(a.chunks)-1]
}

// Alloc returns n zeroed bytes aligned to align within arena-owned storage.
// The returned slice's backing array never moves. align must be a power of
// two; zero means DefaultAlign. Requests above MaxAllocSize return nil —
// the arena is for many small objects, not bulk buffers.
func (a *Arena) Alloc(n int, align int) []byte {
	if n < 0 {
		panic("arena: negative allocation size")
	}
	if n > MaxAllocSize {
		return nil
	}
	if align <= 0 {
		align = DefaultAlign
	}
	if align&(align-1) != 0 {
		panic("arena: alignment must be a power of two")
	}

	size := uint32(n)
	c := a.current()
	pad := padFor(c.used, uint32(align))
	if c.remaining() < pad+size {
		// Не влезло: открываем новый чанк размером max(size+align-1, chunkSize).
		want := size + uint32(align) - 1
		if want < a.chunkSize {
			want = a.chunkSize
		}
		c = a.grow(want)
		pad = padFor(c.used, uint32(align))
	}

	start := c.used + pad
	c.used = start + size
	out := c.buf[start : start+size : start+size]
	clear(out) // после Clear чанки переиспользуются со старым содержимым

	a.stats.AllocCount++
	a.stats.TotalRequested += uint64(n)
	a.stats.TotalAllocated += uint64(pad) + uint64(n)
	a.stats.WastedBytes += uint64(pad)
	a.stats.CurrentUsage += uint64(pad) + uint64(n)
	if a.stats.CurrentUsage > a.stats.PeakUsage {
		a.stats.PeakUsage = a.stats.CurrentUsage
	}
	return out
}

func padFor(used, align uint32) uint32 {
	rem := used & (align - 1)
	if rem == 0 {
		return 0
	}
	return align - rem
}

// AllocString copies b into arena storage, appends a NUL, and returns the
// full n+1-byte slice. Callers that want exactly the content use [:len(b)].
// Inputs above MaxAllocSize return nil, as with Alloc.
func (a *Arena) AllocString(b []byte) []byte {
	out := a.Alloc(len(b)+1, 1)
	if out == nil {
		return nil
	}
	copy(out, b)
	out[len(b)] = 0
	return out
}

// Reset drops every chunk and opens a fresh one. All previously returned
// slices are abandoned to the garbage collector.
func (a *Arena) Reset() {
	a.chunks = nil
	a.stats.ChunkCount = 0
	a.stats.CurrentUsage = 0
	a.grow(a.chunkSize)
}

// Clear rewinds every chunk's cursor without freeing. Previously returned
// slices still point into live memory but will be overwritten by future
// allocations; callers must treat them as invalid.
func (a *Arena) Clear() {
	for _, c := range a.chunks {
		c.used = 0
	}
	a.stats.CurrentUsage = 0
}

// TotalAllocated returns bytes handed out since creation; Reset and Clear
// do not zero it.
func (a *Arena) TotalAllocated() uint64 { return a.stats.TotalAllocated }

// TotalUsed returns bytes currently in use across all chunks.
func (a *Arena) TotalUsed() uint64 { return a.stats.CurrentUsage }

// Stats returns a copy of the usage counters.
func (a *Arena) Stats() Stats { return a.stats }
