package source

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"mica/internal/intern"
)

// Sentinel errors surfaced by the FileManager. A missing path is reported
// as ErrNoSuchFile alone (the OS error is not wrapped, so
// errors.Is(err, fs.ErrNotExist) is false); other OS-level failures are
// wrapped.
var (
	ErrNoSuchFile  = errors.New("no such file")
	ErrIsDirectory = errors.New("is a directory")
)

// FileManagerStats counts file manager activity.
type FileManagerStats struct {
	OpenCount    uint64 // files actually read from disk
	CacheEntries uint64 // entries currently cached
	BytesRead    uint64
	CacheHits    uint64
	CacheMisses  uint64
}

// FileManager loads files from disk at most once and vends shared
// *FileEntry values. The cache is keyed by interned canonical path. Safe
// for concurrent use; the disk read runs outside the lock and the first
// arrival wins when two goroutines race on one path.
type FileManager struct {
	mu       sync.Mutex
	interner *intern.Interner
	cache    *simplelru.LRU[intern.Handle, *FileEntry]

	maxCacheSize uint64 // bytes; 0 = unlimited
	cachedBytes  uint64

	stats FileManagerStats
}

// NewFileManager creates a manager that interns canonical paths in the
// given interner.
func NewFileManager(interner *intern.Interner) *FileManager {
	fm := &FileManager{interner: interner}
	// Лимит по количеству не нужен — вытеснение считаем в байтах сами,
	// LRU даёт только порядок давности.
	cache, err := simplelru.NewLRU[intern.Handle, *FileEntry](math.MaxInt32, fm.onEvict)
	if err != nil {
		panic(fmt.Errorf("file cache init: %w", err))
	}
	fm.cache = cache
	return fm
}

// onEvict runs under fm.mu.
func (fm *FileManager) onEvict(_ intern.Handle, entry *FileEntry) {
	fm.cachedBytes -= uint64(len(entry.Buffer()))
}

// SetMaxCacheSize bounds the total cached bytes. Zero removes the bound.
// Entries are evicted least-recently-used first; entries already handed
// out stay valid for their holders.
func (fm *FileManager) SetMaxCacheSize(maxBytes uint64) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.maxCacheSize = maxBytes
	fm.evictLocked()
}

func (fm *FileManager) evictLocked() {
	if fm.maxCacheSize == 0 {
		return
	}
	for fm.cachedBytes > fm.maxCacheSize && fm.cache.Len() > 1 {
		if _, _, ok := fm.cache.RemoveOldest(); !ok {
			break
		}
	}
}

// GetFile returns the cached entry for path, loading it on first request.
func (fm *FileManager) GetFile(path string) (*FileEntry, error) {
	key := fm.interner.InternString(canonicalPath(path))

	fm.mu.Lock()
	if entry, ok := fm.cache.Get(key); ok {
		fm.stats.CacheHits++
		fm.mu.Unlock()
		return entry, nil
	}
	fm.stats.CacheMisses++
	fm.mu.Unlock()

	// Читаем вне лока; при гонке побеждает первый опубликовавший.
	entry, err := fm.loadFile(key)
	if err != nil {
		return nil, err
	}

	fm.mu.Lock()
	defer fm.mu.Unlock()
	if winner, ok := fm.cache.Get(key); ok {
		return winner, nil
	}
	fm.cache.Add(key, entry)
	fm.cachedBytes += uint64(len(entry.Buffer()))
	fm.stats.OpenCount++
	fm.stats.BytesRead += uint64(entry.Size())
	fm.evictLocked()
	return entry, nil
}

// loadFile reads the file behind key into a NUL-terminated buffer.
func (fm *FileManager) loadFile(key intern.Handle) (*FileEntry, error) {
	path := key.String()
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoSuchFile, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	// #nosec G304 -- path comes from the caller by design
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	buf := make([]byte, len(content)+1) // финальный байт — NUL
	copy(buf, content)
	return &FileEntry{
		filename: key,
		data:     buf,
		size:     mustUint32(len(content)),
		modTime:  info.ModTime(),
	}, nil
}

// FileExists reports whether path names a readable regular file, without
// loading it.
func (fm *FileManager) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// FileSize returns the on-disk size without loading the content.
func (fm *FileManager) FileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrNoSuchFile, path)
		}
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	return uint64(info.Size()), nil
}

// FileModTime returns the on-disk modification time without loading.
func (fm *FileManager) FileModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, fmt.Errorf("%w: %s", ErrNoSuchFile, path)
		}
		return time.Time{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.ModTime(), nil
}

// RemoveFromCache drops one path from the cache. Entries already handed
// out stay valid.
func (fm *FileManager) RemoveFromCache(path string) {
	key := fm.interner.InternString(canonicalPath(path))
	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.cache.Remove(key)
}

// ClearCache drops every cached entry.
func (fm *FileManager) ClearCache() {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.cache.Purge()
	fm.cachedBytes = 0
}

// CachedBytes returns the total size of cached buffers.
func (fm *FileManager) CachedBytes() uint64 {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	return fm.cachedBytes
}

// Stats returns a snapshot of the counters.
func (fm *FileManager) Stats() FileManagerStats {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	st := fm.stats
	st.CacheEntries = uint64(fm.cache.Len())
	return st
}

// Interner exposes the interner used for path handles.
func (fm *FileManager) Interner() *intern.Interner { return fm.interner }
