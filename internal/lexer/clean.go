package lexer

// CleanStringLiteral decodes a raw string literal spelling (quotes
// included) into its content bytes, resolving escape sequences. Pure
// function; call it on demand for tokens carrying NeedsCleaning. Unicode
// escapes contribute only the low byte of the code point.
func CleanStringLiteral(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	content := raw[1 : len(raw)-1] // без кавычек
	out := make([]byte, 0, len(content))

	for i := 0; i < len(content); {
		if content[i] != '\\' || i+1 >= len(content) {
			out = append(out, content[i])
			i++
			continue
		}
		decoded, consumed := decodeEscape(content[i+1:])
		out = append(out, decoded)
		i += 1 + consumed
	}
	return string(out)
}

// CleanCharLiteral decodes a character literal spelling into its single
// byte. Invalid or empty literals decode to 0.
func CleanCharLiteral(raw string) byte {
	if len(raw) < 3 {
		return 0
	}
	content := raw[1 : len(raw)-1]
	if content == "" {
		return 0
	}
	if content[0] == '\\' && len(content) >= 2 {
		decoded, _ := decodeEscape(content[1:])
		return decoded
	}
	return content[0]
}

// decodeEscape decodes the escape body after the backslash, returning the
// resulting byte and how many input bytes it consumed.
func decodeEscape(s string) (byte, int) {
	if s == "" {
		return '\\', 0
	}
	c := s[0]
	switch c {
	case 'n':
		return '\n', 1
	case 't':
		return '\t', 1
	case 'r':
		return '\r', 1
	case 'b':
		return '\b', 1
	case 'f':
		return '\f', 1
	case 'v':
		return '\v', 1
	case 'a':
		return 7, 1 // BEL
	case '0':
		return 0, 1
	case '\\', '\'', '"', '?':
		return c, 1

	case '1', '2', '3', '4', '5', '6', '7':
		// Восьмеричный \nnn: до трёх цифр всего.
		value := int(c - '0')
		n := 1
		for n < 3 && n < len(s) && isOctalDigit(s[n]) {
			value = value*8 + int(s[n]-'0')
			n++
		}
		return byte(value), n

	case 'x':
		// \xHH: до двух шестнадцатеричных цифр.
		value := 0
		n := 1
		for n <= 2 && n < len(s) && isHexDigit(s[n]) {
			value = value*16 + hexValue(s[n])
			n++
		}
		if n == 1 {
			return 'x', 1 // не escape, буквальный 'x'
		}
		return byte(value), n

	case 'u':
		// \uHHHH: ровно четыре цифры, иначе буквальный 'u'.
		return decodeUnicodeEscape(s, 4)

	case 'U':
		// \UHHHHHHHH: ровно восемь цифр.
		return decodeUnicodeEscape(s, 8)
	}
	// Неизвестный escape — символ как есть.
	return c, 1
}

// decodeUnicodeEscape reads exactly digits hex digits after the marker.
// Full UTF-8 materialization is out of scope: the low byte of the code
// point is returned.
func decodeUnicodeEscape(s string, digits int) (byte, int) {
	if len(s) < digits+1 {
		return s[0], 1
	}
	value := 0
	for i := 1; i <= digits; i++ {
		if !isHexDigit(s[i]) {
			return s[0], 1
		}
		value = value*16 + hexValue(s[i])
	}
	return byte(value & 0xFF), digits + 1
}

func hexValue(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}
