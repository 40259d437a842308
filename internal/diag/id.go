package diag

// ID is the stable identifier of a diagnostic kind. IDs index the static
// info table.
type ID uint32

const (
	// InvalidID is the catch-all for out-of-range ids.
	InvalidID ID = iota
	// UnterminatedStringLiteral: a string literal hit a newline or EOF
	// before its closing quote.
	UnterminatedStringLiteral
	// UnterminatedCharacterLiteral: a character literal is missing its
	// closing quote.
	UnterminatedCharacterLiteral
	// UnterminatedBlockComment: a block comment reached EOF before '*/'.
	UnterminatedBlockComment
	// UnexpectedValue: a byte outside the language's alphabet. Args:
	// %0 expected description, %1 the offending character or its code.
	UnexpectedValue

	numIDs
)

// Info is the compile-time-frozen description of one diagnostic id.
// Detail may contain %0, %1, ... placeholders bound to a Diagnostic's args.
type Info struct {
	Level  Level
	Kind   Kind
	Short  string
	Detail string
}

var infoTable = [numIDs]Info{
	InvalidID: {
		Level:  Error,
		Kind:   KindSystem,
		Short:  "invalid diagnostic id",
		Detail: "an invalid diagnostic id was used",
	},
	UnterminatedStringLiteral: {
		Level:  Error,
		Kind:   KindLexical,
		Short:  "unterminated string literal",
		Detail: "missing terminating '\"' character",
	},
	UnterminatedCharacterLiteral: {
		Level:  Error,
		Kind:   KindLexical,
		Short:  "unterminated character literal",
		Detail: "missing terminating \"'\" character",
	},
	UnterminatedBlockComment: {
		Level:  Error,
		Kind:   KindLexical,
		Short:  "unterminated block comment",
		Detail: "block comment reached end of file without '*/'",
	},
	UnexpectedValue: {
		Level:  Error,
		Kind:   KindLexical,
		Short:  "unexpected value",
		Detail: "expected %0 but found %1",
	},
}

// InfoFor returns the static info for id. Out-of-range ids get the
// InvalidID entry.
func InfoFor(id ID) Info {
	if id >= numIDs {
		return infoTable[InvalidID]
	}
	return infoTable[id]
}
