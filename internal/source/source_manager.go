package source

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"mica/internal/intern"
)

// fileInfo is the per-file record in the file table.
type fileInfo struct {
	entry       *FileEntry
	start       uint32   // first location owned by this file
	lineOffsets []uint32 // lazy; nil until the first line query
}

// SourceManagerStats counts source manager activity.
type SourceManagerStats struct {
	FileCount       uint64
	LocationsUsed   uint64 // total reserved location space
	LineIndexBuilds uint64
	LocCacheHits    uint64
	LocCacheMisses  uint64
}

// lastLocCache remembers the previous location resolution. Sequential
// scans (lexing, diagnostic rendering) hit it almost always. Misses fall
// through to the authoritative binary searches. Go has no thread-local
// storage, so the cache lives under the state mutex.
type lastLocCache struct {
	ok        bool
	loc       Location
	fid       FileID
	line      uint32
	lineStart uint32 // file offset of the cached line's first byte
}

// SourceManager owns the file table and the global location space. Each
// registered file gets the contiguous slice [start, start+size]; the end
// offset is addressable so EOF locations resolve. Location 0 stays
// reserved as invalid.
type SourceManager struct {
	fm *FileManager

	mu     sync.Mutex
	files  []fileInfo // отсортированы по start — резервируем под mu
	byName map[intern.Handle]FileID
	last   lastLocCache
	stats  SourceManagerStats

	nextLoc atomic.Uint32 // монотонный; 0 зарезервирован
}

// NewSourceManager creates a manager backed by the given FileManager.
func NewSourceManager(fm *FileManager) *SourceManager {
	sm := &SourceManager{
		fm:     fm,
		byName: make(map[intern.Handle]FileID),
	}
	sm.nextLoc.Store(1)
	return sm
}

// FileManager returns the backing file manager.
func (sm *SourceManager) FileManager() *FileManager { return sm.fm }

// CreateFile loads path through the FileManager and registers it,
// reserving its slice of the location space. A second call with the same
// canonical path returns the existing FileID.
func (sm *SourceManager) CreateFile(path string) (FileID, error) {
	entry, err := sm.fm.GetFile(path)
	if err != nil {
		return NoFile, err
	}
	return sm.CreateFileFromEntry(entry), nil
}

// CreateFileFromEntry registers an already-loaded entry. Used for virtual
// files (tests, stdin) alongside disk files.
func (sm *SourceManager) CreateFileFromEntry(entry *FileEntry) FileID {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if fid, ok := sm.byName[entry.Filename()]; ok {
		return fid
	}

	// Резервирование и вставка под одним мьютексом, чтобы files оставался
	// отсортированным по start.
	size := entry.Size()
	start := sm.nextLoc.Add(size+1) - (size + 1)
	sm.files = append(sm.files, fileInfo{entry: entry, start: start})
	fid := FileID(mustUint32(len(sm.files)))
	sm.byName[entry.Filename()] = fid

	sm.stats.FileCount++
	sm.stats.LocationsUsed += uint64(size) + 1
	sm.last = lastLocCache{}
	return fid
}

// CreateVirtualFile registers raw content under a name that need not exist
// on disk.
func (sm *SourceManager) CreateVirtualFile(name string, content []byte) FileID {
	handle := sm.fm.Interner().InternString(name)
	return sm.CreateFileFromEntry(NewFileEntry(handle, content, time.Now()))
}

// info returns the file record or nil for an invalid id.
func (sm *SourceManager) info(fid FileID) *fileInfo {
	if !fid.Valid() || int(fid) > len(sm.files) {
		return nil
	}
	return &sm.files[fid-1]
}

// FileEntryFor returns the entry behind fid, or nil.
func (sm *SourceManager) FileEntryFor(fid FileID) *FileEntry {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if info := sm.info(fid); info != nil {
		return info.entry
	}
	return nil
}

// StartLoc returns the location of the first byte of fid.
func (sm *SourceManager) StartLoc(fid FileID) Location {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	info := sm.info(fid)
	if info == nil {
		return NoLocation
	}
	return Location(info.start)
}

// EndLoc returns the location one past the last byte of fid. It is a valid
// location: end-of-file positions are addressable.
func (sm *SourceManager) EndLoc(fid FileID) Location {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	info := sm.info(fid)
	if info == nil {
		return NoLocation
	}
	return Location(info.start + info.entry.Size())
}

// LocForFileOffset encodes (fid, offset); offset may equal the file size.
func (sm *SourceManager) LocForFileOffset(fid FileID, offset uint32) Location {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	info := sm.info(fid)
	if info == nil || offset > info.entry.Size() {
		return NoLocation
	}
	return Location(info.start + offset)
}

// fileIDForLocked performs the binary search over the table. Caller holds mu.
func (sm *SourceManager) fileIDForLocked(loc Location) FileID {
	if !loc.Valid() || len(sm.files) == 0 {
		return NoFile
	}
	raw := loc.Raw()

	// Быстрый путь: последний найденный файл.
	if sm.last.ok && sm.last.fid.Valid() {
		info := sm.info(sm.last.fid)
		if info != nil && raw >= info.start && raw <= info.start+info.entry.Size() {
			sm.stats.LocCacheHits++
			return sm.last.fid
		}
	}
	sm.stats.LocCacheMisses++

	// files отсортирован по start: ищем последний файл со start <= raw.
	idx := sort.Search(len(sm.files), func(i int) bool {
		return sm.files[i].start > raw
	})
	if idx == 0 {
		return NoFile
	}
	info := &sm.files[idx-1]
	if raw > info.start+info.entry.Size() {
		return NoFile // дырка между файлами не принадлежит никому
	}
	fid := FileID(mustUint32(idx))
	sm.last.ok = true
	sm.last.loc = loc
	sm.last.fid = fid
	sm.last.line = 0
	return fid
}

// FileIDFor returns the file owning loc, or NoFile.
func (sm *SourceManager) FileIDFor(loc Location) FileID {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.fileIDForLocked(loc)
}

// IsValidLocation reports whether some file owns loc.
func (sm *SourceManager) IsValidLocation(loc Location) bool {
	return sm.FileIDFor(loc).Valid()
}

// FileOffset decodes the byte offset of loc within its file. Invalid
// locations yield 0.
func (sm *SourceManager) FileOffset(loc Location) uint32 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	fid := sm.fileIDForLocked(loc)
	if !fid.Valid() {
		return 0
	}
	return loc.Raw() - sm.files[fid-1].start
}

// lineIndexLocked computes the line index at most once per file.
func (sm *SourceManager) lineIndexLocked(info *fileInfo) []uint32 {
	if info.lineOffsets == nil {
		info.lineOffsets = buildLineIndex(info.entry.Bytes())
		sm.stats.LineIndexBuilds++
	}
	return info.lineOffsets
}

// LineNumber returns the 1-based line of loc, or 0 when invalid.
func (sm *SourceManager) LineNumber(loc Location) uint32 {
	line, _ := sm.LineAndColumn(loc)
	return line
}

// ColumnNumber returns the 1-based column of loc, or 0 when invalid.
// Column 1 is the first byte of a line.
func (sm *SourceManager) ColumnNumber(loc Location) uint32 {
	_, col := sm.LineAndColumn(loc)
	return col
}

// LineAndColumn resolves both coordinates in one lookup.
func (sm *SourceManager) LineAndColumn(loc Location) (line, col uint32) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	fid := sm.fileIDForLocked(loc)
	if !fid.Valid() {
		return 0, 0
	}
	info := &sm.files[fid-1]
	offset := loc.Raw() - info.start

	// Быстрый путь: та же строка, что и в прошлый раз.
	if sm.last.ok && sm.last.fid == fid && sm.last.line > 0 &&
		offset >= sm.last.lineStart {
		idx := sm.lineIndexLocked(info)
		if int(sm.last.line) >= len(idx) || offset < idx[sm.last.line] {
			sm.stats.LocCacheHits++
			return sm.last.line, offset - sm.last.lineStart + 1
		}
	}

	idx := sm.lineIndexLocked(info)
	line = lineForOffset(idx, offset)
	lineStart := idx[line-1]
	sm.last = lastLocCache{
		ok:        true,
		loc:       loc,
		fid:       fid,
		line:      line,
		lineStart: lineStart,
	}
	return line, offset - lineStart + 1
}

// LineCount returns the number of lines in fid (1 + number of '\n').
func (sm *SourceManager) LineCount(fid FileID) uint32 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	info := sm.info(fid)
	if info == nil {
		return 0
	}
	return mustUint32(len(sm.lineIndexLocked(info)))
}

// Filename returns the interned canonical path of loc's file.
func (sm *SourceManager) Filename(loc Location) intern.Handle {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	fid := sm.fileIDForLocked(loc)
	if !fid.Valid() {
		return intern.Handle{}
	}
	return sm.files[fid-1].entry.Filename()
}

// FilenameString is Filename as a string; "" when invalid.
func (sm *SourceManager) FilenameString(loc Location) string {
	return sm.Filename(loc).String()
}

// FilenameFor returns the interned path for a FileID.
func (sm *SourceManager) FilenameFor(fid FileID) intern.Handle {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	info := sm.info(fid)
	if info == nil {
		return intern.Handle{}
	}
	return info.entry.Filename()
}

// CharacterData returns the file bytes from loc to the end of the buffer,
// including the trailing NUL. Nil when invalid.
func (sm *SourceManager) CharacterData(loc Location) []byte {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	fid := sm.fileIDForLocked(loc)
	if !fid.Valid() {
		return nil
	}
	info := &sm.files[fid-1]
	return info.entry.Buffer()[loc.Raw()-info.start:]
}

// SourceText returns the text covered by r. Empty when the ends lie in
// different files or the range is invalid.
func (sm *SourceManager) SourceText(r Range) string {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	beginFid := sm.fileIDForLocked(r.Begin)
	endFid := sm.fileIDForLocked(r.End)
	if !beginFid.Valid() || beginFid != endFid || r.End < r.Begin {
		return ""
	}
	info := &sm.files[beginFid-1]
	return string(info.entry.Bytes()[r.Begin.Raw()-info.start : r.End.Raw()-info.start])
}

// SourceLength returns the byte distance between two locations in the same
// file, or 0 otherwise.
func (sm *SourceManager) SourceLength(begin, end Location) uint32 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	beginFid := sm.fileIDForLocked(begin)
	endFid := sm.fileIDForLocked(end)
	if !beginFid.Valid() || beginFid != endFid || end < begin {
		return 0
	}
	return end.Raw() - begin.Raw()
}

// IsBefore reports whether a was issued before b. Within a file this is
// byte order; across files it is registration order.
func (sm *SourceManager) IsBefore(a, b Location) bool {
	return a.Valid() && b.Valid() && a < b
}

// Advance moves loc forward n bytes. Results that leave the owning file
// are invalid.
func (sm *SourceManager) Advance(loc Location, n uint32) Location {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	fid := sm.fileIDForLocked(loc)
	if !fid.Valid() {
		return NoLocation
	}
	info := &sm.files[fid-1]
	moved := loc.Raw() + n
	if moved > info.start+info.entry.Size() {
		return NoLocation
	}
	return Location(moved)
}

// FullLocFor bundles loc with this manager.
func (sm *SourceManager) FullLocFor(loc Location) FullLoc {
	return FullLoc{Loc: loc, SM: sm}
}

// ClearCache drops the lazily computed line indexes and the last-location
// cache. File entries stay alive through the FileManager.
func (sm *SourceManager) ClearCache() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for i := range sm.files {
		sm.files[i].lineOffsets = nil
	}
	sm.last = lastLocCache{}
}

// Stats returns a snapshot of the counters.
func (sm *SourceManager) Stats() SourceManagerStats {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.stats
}
