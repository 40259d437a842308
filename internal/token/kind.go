package token

// Kind identifies the category of a source token. The enumeration is a
// contract between the lexer and its consumers: cardinality and ordering
// are stable within a release.
type Kind uint16

const (
	// Unknown marks a byte the lexer could not classify.
	Unknown Kind = iota
	// EndOfFile terminates every token stream.
	EndOfFile

	// Integer is an integer literal, including base prefixes and suffixes.
	Integer
	// Float is a floating-point literal.
	Float
	// String is a string literal, quotes included in the spelling.
	String
	// Character is a character literal.
	Character

	// Identifier is a non-keyword identifier.
	Identifier

	// Keywords, alphabetical.

	// KwAuto is the 'auto' keyword.
	KwAuto
	// KwBreak is the 'break' keyword.
	KwBreak
	// KwCase is the 'case' keyword.
	KwCase
	// KwConst is the 'const' keyword.
	KwConst
	// KwContinue is the 'continue' keyword.
	KwContinue
	// KwDefault is the 'default' keyword.
	KwDefault
	// KwDo is the 'do' keyword.
	KwDo
	// KwElse is the 'else' keyword.
	KwElse
	// KwEnum is the 'enum' keyword.
	KwEnum
	// KwExtern is the 'extern' keyword.
	KwExtern
	// KwFalse is the 'false' keyword.
	KwFalse
	// KwFn is the 'fn' keyword.
	KwFn
	// KwFor is the 'for' keyword.
	KwFor
	// KwIf is the 'if' keyword.
	KwIf
	// KwImport is the 'import' keyword.
	KwImport
	// KwLet is the 'let' keyword.
	KwLet
	// KwMod is the 'mod' keyword.
	KwMod
	// KwMut is the 'mut' keyword.
	KwMut
	// KwNull is the 'null' keyword.
	KwNull
	// KwReturn is the 'return' keyword.
	KwReturn
	// KwStruct is the 'struct' keyword.
	KwStruct
	// KwSwitch is the 'switch' keyword.
	KwSwitch
	// KwTrue is the 'true' keyword.
	KwTrue
	// KwType is the 'type' keyword.
	KwType
	// KwVar is the 'var' keyword.
	KwVar
	// KwWhile is the 'while' keyword.
	KwWhile

	// Operators.

	// Plus is '+'.
	Plus
	// Minus is '-'.
	Minus
	// Star is '*'.
	Star
	// Slash is '/'.
	Slash
	// Percent is '%'.
	Percent
	// Equal is '='.
	Equal
	// PlusEqual is '+='.
	PlusEqual
	// MinusEqual is '-='.
	MinusEqual
	// StarEqual is '*='.
	StarEqual
	// SlashEqual is '/='.
	SlashEqual
	// PercentEqual is '%='.
	PercentEqual
	// EqualEqual is '=='.
	EqualEqual
	// NotEqual is '!='.
	NotEqual
	// Less is '<'.
	Less
	// LessEqual is '<='.
	LessEqual
	// Greater is '>'.
	Greater
	// GreaterEqual is '>='.
	GreaterEqual
	// AmpAmp is '&&'.
	AmpAmp
	// PipePipe is '||'.
	PipePipe
	// Exclaim is '!'.
	Exclaim
	// Amp is '&'.
	Amp
	// Pipe is '|'.
	Pipe
	// Caret is '^'.
	Caret
	// Tilde is '~'.
	Tilde
	// Shl is '<<'.
	Shl
	// Shr is '>>'.
	Shr
	// PlusPlus is '++'.
	PlusPlus
	// MinusMinus is '--'.
	MinusMinus

	// Punctuation.

	// LParen is '('.
	LParen
	// RParen is ')'.
	RParen
	// LBrace is '{'.
	LBrace
	// RBrace is '}'.
	RBrace
	// LBracket is '['.
	LBracket
	// RBracket is ']'.
	RBracket
	// Semicolon is ';'.
	Semicolon
	// Comma is ','.
	Comma
	// Dot is '.'.
	Dot
	// Arrow is '->'.
	Arrow
	// ColonColon is '::'.
	ColonColon
	// Colon is ':'.
	Colon
	// Question is '?'.
	Question
	// At is '@'.
	At
	// Hash is '#'.
	Hash
	// Backslash is '\'.
	Backslash

	// Trivia kinds, emitted only when retained by lexer options.

	// LineComment is a '//' comment, excluding the newline.
	LineComment
	// BlockComment is a '/* */' comment, terminator included.
	BlockComment
	// Whitespace is a run of space/tab/VT/FF bytes.
	Whitespace
	// Newline is a LF, CR, or CR LF sequence.
	Newline

	// KindCount is the number of token kinds.
	KindCount
)

var kindNames = [KindCount]string{
	Unknown: "Unknown", EndOfFile: "EndOfFile",
	Integer: "Integer", Float: "Float", String: "String", Character: "Character",
	Identifier: "Identifier",
	KwAuto: "auto", KwBreak: "break", KwCase: "case", KwConst: "const",
	KwContinue: "continue", KwDefault: "default", KwDo: "do", KwElse: "else",
	KwEnum: "enum", KwExtern: "extern", KwFalse: "false", KwFn: "fn",
	KwFor: "for", KwIf: "if", KwImport: "import", KwLet: "let",
	KwMod: "mod", KwMut: "mut", KwNull: "null", KwReturn: "return",
	KwStruct: "struct", KwSwitch: "switch", KwTrue: "true", KwType: "type",
	KwVar: "var", KwWhile: "while",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Equal: "=", PlusEqual: "+=", MinusEqual: "-=", StarEqual: "*=",
	SlashEqual: "/=", PercentEqual: "%=",
	EqualEqual: "==", NotEqual: "!=", Less: "<", LessEqual: "<=",
	Greater: ">", GreaterEqual: ">=",
	AmpAmp: "&&", PipePipe: "||", Exclaim: "!",
	Amp: "&", Pipe: "|", Caret: "^", Tilde: "~", Shl: "<<", Shr: ">>",
	PlusPlus: "++", MinusMinus: "--",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]",
	Semicolon: ";", Comma: ",", Dot: ".", Arrow: "->",
	ColonColon: "::", Colon: ":", Question: "?", At: "@", Hash: "#",
	Backslash: `\`,
	LineComment: "LineComment", BlockComment: "BlockComment",
	Whitespace: "Whitespace", Newline: "Newline",
}

// String returns the canonical spelling for fixed-spelling kinds and the
// kind name otherwise.
func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return "Kind(invalid)"
}

// IsKeyword reports whether k is a keyword kind.
func (k Kind) IsKeyword() bool { return k >= KwAuto && k <= KwWhile }

// IsLiteral reports whether k is a literal kind.
func (k Kind) IsLiteral() bool { return k >= Integer && k <= Character }

// IsOperator reports whether k is an operator kind.
func (k Kind) IsOperator() bool { return k >= Plus && k <= MinusMinus }

// IsPunctuation reports whether k is a punctuation kind.
func (k Kind) IsPunctuation() bool { return k >= LParen && k <= Backslash }

// IsTrivia reports whether k is whitespace or a comment.
func (k Kind) IsTrivia() bool { return k >= LineComment && k <= Newline }
