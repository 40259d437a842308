// Package lexer classifies bytes into tokens for the mica language.
//
// Invariants:
//   - the stream always ends with exactly one EndOfFile token, and the
//     lexer never unwinds: lexical problems become diagnostics plus a
//     best-effort token (Unknown at worst);
//   - token spellings of identifiers and literals are interned verbatim,
//     escapes and quotes included; decoding is a separate pure function;
//   - concatenating every token spelling and the skipped trivia between
//     them reconstructs the input bytes exactly;
//   - the performance options select between equivalent implementations
//     and never alter the emitted stream.
package lexer
