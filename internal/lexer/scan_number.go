package lexer

import "mica/internal/token"

// scanNumber consumes a numeric literal. Supported shapes:
//
//	0x... hex, 0b... binary, 0[0-7]* octal, decimal,
//	digit+ '.' digit+ with an optional [eE][+-]?digit+ exponent.
//
// A '.' after digits is consumed only when a digit follows, so "1.foo"
// stays Integer Dot Identifier. Trailing alpha bytes are the suffix and
// stay in the spelling; validity of suffixes is not a lexer concern.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.mark()
	kind := token.Integer

	if lx.cursor.peek() == '0' {
		lx.cursor.bump()
		switch lx.cursor.peek() {
		case 'x', 'X':
			lx.cursor.bump()
			for !lx.cursor.eof() && isHexDigit(lx.cursor.peek()) {
				lx.cursor.bump()
			}
		case 'b', 'B':
			lx.cursor.bump()
			for !lx.cursor.eof() && isBinaryDigit(lx.cursor.peek()) {
				lx.cursor.bump()
			}
		default:
			// Восьмеричная или просто "0".
			for !lx.cursor.eof() && isOctalDigit(lx.cursor.peek()) {
				lx.cursor.bump()
			}
		}
	} else {
		for !lx.cursor.eof() && lx.isDigit(lx.cursor.peek()) {
			lx.cursor.bump()
		}
	}

	// Дробная часть: точка потребляется только перед цифрой.
	if lx.cursor.peek() == '.' && lx.isDigit(lx.cursor.peekAt(1)) {
		kind = token.Float
		lx.cursor.bump() // '.'
		for !lx.cursor.eof() && lx.isDigit(lx.cursor.peek()) {
			lx.cursor.bump()
		}

		// Экспонента — только после дробной части.
		if lx.cursor.peek() == 'e' || lx.cursor.peek() == 'E' {
			lx.cursor.bump()
			if lx.cursor.peek() == '+' || lx.cursor.peek() == '-' {
				lx.cursor.bump()
			}
			for !lx.cursor.eof() && lx.isDigit(lx.cursor.peek()) {
				lx.cursor.bump()
			}
		}
	}

	// Суффикс (u, i32, f…): не валидируется, остаётся в написании.
	for !lx.cursor.eof() && lx.isAlpha(lx.cursor.peek()) {
		lx.cursor.bump()
	}

	lexeme := lx.cursor.src[start:lx.cursor.off]
	lx.stats.LiteralCount++
	return token.Token{
		Kind:   kind,
		Loc:    lx.locAt(start),
		Length: lx.cursor.off - start,
		Text:   lx.interner.Intern(lexeme),
	}
}
