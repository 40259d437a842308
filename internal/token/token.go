package token

import (
	"fmt"

	"mica/internal/intern"
	"mica/internal/source"
)

// Flags is a bitset of per-token facts.
type Flags uint8

const (
	// AtStartOfLine: the token's first byte starts its line.
	AtStartOfLine Flags = 1 << iota
	// HasLeadingSpace: trivia directly precedes the token.
	HasLeadingSpace
	// NeedsCleaning: the spelling contains escape sequences; use
	// lexer.CleanStringLiteral to decode.
	NeedsCleaning
	// IsKeyword: the token is a keyword.
	IsKeyword
)

// Has reports whether every bit of flag is set.
func (f Flags) Has(flag Flags) bool { return f&flag == flag }

// Token is one classified span of source bytes. Text is set for
// identifiers, keywords and literals (the interned raw spelling) and is
// the null handle otherwise.
type Token struct {
	Kind   Kind
	Loc    source.Location // first byte; NoLocation when lexing a raw slice
	Length uint32
	Flags  Flags
	Text   intern.Handle
}

// Range returns the token's source range [Loc, Loc+Length].
func (t Token) Range() source.Range {
	if !t.Loc.Valid() {
		return source.Range{}
	}
	return source.NewRange(t.Loc, source.FromRaw(t.Loc.Raw()+t.Length))
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsOneOf reports whether the token has any of the given kinds.
func (t Token) IsOneOf(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// AtStartOfLine reports whether the token begins its line.
func (t Token) AtStartOfLine() bool { return t.Flags.Has(AtStartOfLine) }

// HasLeadingSpace reports whether trivia directly precedes the token.
func (t Token) HasLeadingSpace() bool { return t.Flags.Has(HasLeadingSpace) }

// IsKeyword reports whether the token is a keyword.
func (t Token) IsKeyword() bool { return t.Flags.Has(IsKeyword) }

// Spelling returns the token's surface text: the interned text when
// present, else the kind's fixed spelling.
func (t Token) Spelling() string {
	if t.Text.Valid() {
		return t.Text.String()
	}
	return t.Kind.String()
}

func (t Token) String() string {
	if t.Text.Valid() {
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text.String())
	}
	return t.Kind.String()
}
