package source

// FileID is a 1-based dense index into a SourceManager's file table.
// Zero is the invalid sentinel. Ordering follows insertion order.
type FileID uint32

// NoFile is the invalid FileID.
const NoFile FileID = 0

// Valid reports whether the FileID refers to a registered file.
func (id FileID) Valid() bool { return id != NoFile }

// Location identifies a byte position within the global source space
// managed by a SourceManager. Zero is the invalid sentinel. Locations are
// opaque; only a SourceManager can decode them.
type Location uint32

// NoLocation is the invalid Location.
const NoLocation Location = 0

// Valid reports whether the location was issued by a SourceManager.
func (l Location) Valid() bool { return l != NoLocation }

// Raw returns the underlying encoding. Useful for hashing and ordering;
// meaningless without the issuing SourceManager.
func (l Location) Raw() uint32 { return uint32(l) }

// FromRaw rebuilds a Location from its raw encoding.
func FromRaw(raw uint32) Location { return Location(raw) }

// Range is a pair of locations with Begin <= End. Ranges produced by the
// lexer always lie within one file.
type Range struct {
	Begin Location
	End   Location
}

// NewRange builds a range covering [begin, end].
func NewRange(begin, end Location) Range {
	return Range{Begin: begin, End: end}
}

// PointRange builds a zero-width range at loc.
func PointRange(loc Location) Range {
	return Range{Begin: loc, End: loc}
}

// Valid reports whether both ends are valid.
func (r Range) Valid() bool { return r.Begin.Valid() && r.End.Valid() }

// FullLoc bundles a Location with its SourceManager so callers can resolve
// file, line, and column without threading the manager around.
type FullLoc struct {
	Loc Location
	SM  *SourceManager
}

// Valid reports whether both the location and manager are present.
func (f FullLoc) Valid() bool { return f.Loc.Valid() && f.SM != nil }

// FileID returns the owning file.
func (f FullLoc) FileID() FileID {
	if !f.Valid() {
		return NoFile
	}
	return f.SM.FileIDFor(f.Loc)
}

// FileOffset returns the byte offset within the owning file.
func (f FullLoc) FileOffset() uint32 {
	if !f.Valid() {
		return 0
	}
	return f.SM.FileOffset(f.Loc)
}

// Line returns the 1-based line number.
func (f FullLoc) Line() uint32 {
	if !f.Valid() {
		return 0
	}
	return f.SM.LineNumber(f.Loc)
}

// Column returns the 1-based column number.
func (f FullLoc) Column() uint32 {
	if !f.Valid() {
		return 0
	}
	return f.SM.ColumnNumber(f.Loc)
}

// Filename returns the owning file's canonical path, or "" when invalid.
func (f FullLoc) Filename() string {
	if !f.Valid() {
		return ""
	}
	return f.SM.FilenameString(f.Loc)
}

// CharacterData returns the file bytes starting at the location.
func (f FullLoc) CharacterData() []byte {
	if !f.Valid() {
		return nil
	}
	return f.SM.CharacterData(f.Loc)
}
