package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"mica/internal/source"
	"mica/internal/token"
)

// FormatTokensPretty prints one token per line with resolved positions:
//
//	test.mi:1:1              let            "let"
func FormatTokensPretty(w io.Writer, tokens []token.Token, sm *source.SourceManager) error {
	for _, tok := range tokens {
		pos := "-"
		if sm != nil && tok.Loc.Valid() {
			line, col := sm.LineAndColumn(tok.Loc)
			pos = fmt.Sprintf("%s:%d:%d", sm.FilenameString(tok.Loc), line, col)
		}
		if _, err := fmt.Fprintf(w, "%-24s %-14s %q\n", pos, tok.Kind, tok.Spelling()); err != nil {
			return err
		}
	}
	return nil
}

// tokenJSON is the serialized form of one token.
type tokenJSON struct {
	Kind     string `json:"kind"`
	Offset   uint32 `json:"offset"`
	Length   uint32 `json:"length"`
	Spelling string `json:"spelling,omitempty"`
	Line     uint32 `json:"line,omitempty"`
	Column   uint32 `json:"column,omitempty"`
}

// FormatTokensJSON prints the token list as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token, sm *source.SourceManager) error {
	out := make([]tokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		entry := tokenJSON{
			Kind:   tok.Kind.String(),
			Length: tok.Length,
		}
		if tok.Text.Valid() {
			entry.Spelling = tok.Text.String()
		}
		if sm != nil && tok.Loc.Valid() {
			entry.Offset = sm.FileOffset(tok.Loc)
			entry.Line, entry.Column = sm.LineAndColumn(tok.Loc)
		}
		out = append(out, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
