package lexer

import "mica/internal/token"

// scanIdentOrKeyword consumes [A-Za-z_][A-Za-z0-9_]* and classifies it
// against the keyword table. The spelling is interned either way.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.mark()
	lx.cursor.bump() // первый байт проверен диспетчером

	for !lx.cursor.eof() && lx.isAlnum(lx.cursor.peek()) {
		lx.cursor.bump()
	}

	lexeme := lx.cursor.src[start:lx.cursor.off]
	tok := token.Token{
		Loc:    lx.locAt(start),
		Length: lx.cursor.off - start,
		Text:   lx.interner.Intern(lexeme),
	}

	if kind, ok := token.LookupKeyword(string(lexeme)); ok {
		tok.Kind = kind
		tok.Flags |= token.IsKeyword
		lx.stats.KeywordCount++
	} else {
		tok.Kind = token.Identifier
		lx.stats.IdentifierCount++
	}
	return tok
}
