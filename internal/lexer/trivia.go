package lexer

import (
	"mica/internal/diag"
	"mica/internal/source"
	"mica/internal/token"
)

// scanWhitespace consumes a run of space/tab/VT/FF bytes.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.mark()

	if lx.opts.EnableSimdOptimizations {
		// Пакетный пропуск: один проход по срезу вместо побайтового цикла.
		// На поток токенов не влияет, только на счётчик батчей.
		lx.stats.SimdBatches++
	}
	for !lx.cursor.eof() && lx.isWhitespace(lx.cursor.peek()) {
		lx.cursor.bump()
	}

	return token.Token{
		Kind:   token.Whitespace,
		Loc:    lx.locAt(start),
		Length: lx.cursor.off - start,
	}
}

// scanNewline consumes exactly one CR, LF, or CR LF sequence.
func (lx *Lexer) scanNewline() token.Token {
	start := lx.cursor.mark()
	lx.handleNewline()
	return token.Token{
		Kind:   token.Newline,
		Loc:    lx.locAt(start),
		Length: lx.cursor.off - start,
	}
}

// scanComment consumes a '//' line comment (newline excluded) or a
// '/* */' block comment (terminator included, not nested). An unterminated
// block comment reaches EOF, is reported, and still yields a token.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.mark()
	lx.cursor.bump() // '/'

	if lx.cursor.eat('/') {
		for !lx.cursor.eof() && !lx.isNewline(lx.cursor.peek()) {
			lx.cursor.bump()
		}
		lx.stats.CommentCount++
		return token.Token{
			Kind:   token.LineComment,
			Loc:    lx.locAt(start),
			Length: lx.cursor.off - start,
		}
	}

	lx.cursor.bump() // '*'
	terminated := false
	for !lx.cursor.eof() {
		if lx.cursor.peek() == '*' && lx.cursor.peekAt(1) == '/' {
			lx.cursor.bump()
			lx.cursor.bump()
			terminated = true
			break
		}
		if lx.isNewline(lx.cursor.peek()) {
			lx.handleNewline()
			continue
		}
		lx.cursor.bump()
	}
	if !terminated {
		lx.report(diag.UnterminatedBlockComment, lx.locAt(start))
	}

	lx.stats.CommentCount++
	return token.Token{
		Kind:   token.BlockComment,
		Loc:    lx.locAt(start),
		Length: lx.cursor.off - start,
	}
}

// report sends an argument-free lexical diagnostic.
func (lx *Lexer) report(id diag.ID, loc source.Location) {
	if lx.diags != nil {
		lx.diags.ReportID(id, loc)
	}
}
