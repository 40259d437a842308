// Package diag is the structured diagnostic layer of the front-end.
//
// A Diagnostic is data: a stable ID into the compile-time info table, a
// location, ordered message arguments bound to %0/%1/... placeholders,
// highlight ranges, and fix-it hints. The Manager applies filters
// (suppression, warnings-as-errors, max-errors), keeps monotone per-level
// counters, and fans out to registered consumers in order.
//
// Rendering lives in internal/diagfmt; this package performs no IO.
// Producers never unwind on a lexical problem — they report here and keep
// going. Errors and fatals cannot be suppressed; after a fatal (or once
// the error cap is hit) ShouldContinue reports false and the driver is
// expected to stop before the next phase.
package diag
