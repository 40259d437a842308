// Package token defines the lexical vocabulary of the mica front-end.
// Invariants:
//   - Token.Text is the interned raw spelling for identifiers, keywords
//     and literals, and the null handle for operators, punctuation,
//     trivia and EndOfFile.
//   - Token.Length counts source bytes, so [Loc, Loc+Length] is the
//     token's exact range.
//   - The keyword table holds one canonical set ('fn', 'mod'); the long
//     spellings 'function' and 'module' are plain identifiers.
package token
