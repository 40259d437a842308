// Package intern deduplicates byte sequences and hands out stable handles.
//
// A Handle wraps a pointer to a boxed, never-moved entry, so handle equality
// is pointer identity: two handles from the same interner compare equal iff
// their contents are equal. Handles stay valid until Clear or the interner
// is dropped.
package intern

import (
	"sync"

	"mica/internal/arena"
)

// entry is the boxed storage for one interned string. raw is NUL-terminated
// and never reallocated; str aliases the content without the NUL.
type entry struct {
	raw []byte
	str string
	seq uint64 // insertion order, gives handles a stable total order
}

// Handle is an opaque reference to an interned byte sequence. The zero
// Handle is the null handle. Comparable with ==; equal handles have equal
// contents.
type Handle struct {
	e *entry
}

// Valid reports whether the handle refers to an interned string.
func (h Handle) Valid() bool { return h.e != nil }

// String returns the interned content, or "" for the null handle.
func (h Handle) String() string {
	if h.e == nil {
		return ""
	}
	return h.e.str
}

// Bytes returns the content without the trailing NUL. Callers must not
// modify the result.
func (h Handle) Bytes() []byte {
	if h.e == nil {
		return nil
	}
	return h.e.raw[:len(h.e.str)]
}

// Len returns the content length in bytes.
func (h Handle) Len() int {
	if h.e == nil {
		return 0
	}
	return len(h.e.str)
}

// Less orders handles by interner insertion order. The order is arbitrary
// but total and stable for the interner's lifetime.
func (h Handle) Less(other Handle) bool {
	var a, b uint64
	if h.e != nil {
		a = h.e.seq
	}
	if other.e != nil {
		b = other.e.seq
	}
	return a < b
}

// Stats tracks interner activity.
type Stats struct {
	InternCount    uint64 // Intern calls
	LookupCount    uint64 // Lookup/Contains calls
	CollisionCount uint64 // Intern calls that found an existing entry
	BytesStored    uint64 // content bytes including NUL terminators
	UniqueStrings  uint64
	AvgLength      float64 // running average content length
}

// Interner deduplicates strings. Safe for concurrent readers with a
// serialized writer: Lookup/Contains take a shared lock, Intern takes the
// exclusive lock on the slow path and re-checks the map before inserting.
type Interner struct {
	mu      sync.RWMutex
	entries map[string]*entry
	arena   *arena.Arena // optional borrowed content storage
	empty   Handle
	nextSeq uint64
	stats   Stats
}

// New creates an interner that owns per-entry heap buffers.
func New() *Interner {
	return NewWithArena(nil)
}

// NewWithArena creates an interner whose content bytes live in the borrowed
// arena. The arena must outlive the interner and must not be shared with a
// concurrent writer.
func NewWithArena(a *arena.Arena) *Interner {
	in := &Interner{
		entries: make(map[string]*entry, 64),
		arena:   a,
	}
	// Пустая строка интернируется заранее и навсегда.
	in.empty = in.insertLocked(nil)
	return in
}

// insertLocked stores content and returns its handle. Caller holds the
// write lock (or is the constructor).
func (in *Interner) insertLocked(b []byte) Handle {
	var raw []byte
	if in.arena != nil {
		raw = in.arena.AllocString(b)
	}
	if raw == nil {
		// Нет арены или строка больше лимита запроса арены.
		raw = make([]byte, len(b)+1)
		copy(raw, b)
	}
	e := &entry{
		raw: raw,
		str: string(b),
		seq: in.nextSeq,
	}
	in.nextSeq++
	in.entries[e.str] = e

	in.stats.UniqueStrings++
	in.stats.BytesStored += uint64(len(raw))
	n := float64(in.stats.UniqueStrings)
	in.stats.AvgLength += (float64(len(b)) - in.stats.AvgLength) / n
	return Handle{e: e}
}

// Intern returns the canonical handle for b, inserting it if new.
// Empty input returns the fixed empty handle.
func (in *Interner) Intern(b []byte) Handle {
	if len(b) == 0 {
		in.mu.Lock()
		in.stats.InternCount++
		in.stats.CollisionCount++
		in.mu.Unlock()
		return in.empty
	}

	key := string(b)

	in.mu.RLock()
	e, ok := in.entries[key]
	in.mu.RUnlock()
	if ok {
		in.mu.Lock()
		in.stats.InternCount++
		in.stats.CollisionCount++
		in.mu.Unlock()
		return Handle{e: e}
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	in.stats.InternCount++
	// Повторная проверка: другой писатель мог вставить между RUnlock и Lock.
	if e, ok := in.entries[key]; ok {
		in.stats.CollisionCount++
		return Handle{e: e}
	}
	return in.insertLocked(b)
}

// InternString is Intern for string input.
func (in *Interner) InternString(s string) Handle {
	return in.Intern([]byte(s))
}

// Lookup returns the handle for b if it was interned, else the null handle.
func (in *Interner) Lookup(b []byte) Handle {
	in.mu.RLock()
	e, ok := in.entries[string(b)]
	in.mu.RUnlock()

	in.mu.Lock()
	in.stats.LookupCount++
	in.mu.Unlock()

	if !ok {
		return Handle{}
	}
	return Handle{e: e}
}

// Contains reports whether b was interned.
func (in *Interner) Contains(b []byte) bool {
	return in.Lookup(b).Valid()
}

// Size returns the number of unique interned strings (the empty string
// counts).
func (in *Interner) Size() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.entries)
}

// Clear drops every entry. Previously returned handles become dangling and
// must not be used.
func (in *Interner) Clear() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.entries = make(map[string]*entry, 64)
	in.stats = Stats{}
	in.empty = in.insertLocked(nil)
}

// EmptyHandle returns the fixed handle of the empty string.
func (in *Interner) EmptyHandle() Handle { return in.empty }

// Stats returns a copy of the counters.
func (in *Interner) Stats() Stats {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.stats
}
