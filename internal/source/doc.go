// Package source maps file paths to cached byte buffers and compact
// 32-bit locations.
//
// The FileManager loads each canonical path at most once and vends shared
// FileEntry values. The SourceManager assigns every registered file a
// contiguous slice of a global location space and resolves Location values
// back to (file, offset, line, column). Invariants:
//
//   - a FileID and its global offset never move once issued;
//   - location spaces of distinct files are disjoint, so locations order
//     globally by issuance;
//   - the per-file line index is computed at most once, on first query;
//   - buffers carry a trailing NUL so scanners can read one byte past the
//     content.
package source
