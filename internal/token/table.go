package token

import (
	"sort"

	"mica/internal/source"
)

// NotFound is the sentinel index returned by FindAtLocation.
const NotFound = -1

// Table stores a lexed token sequence and answers location and kind
// queries over it. Appends invalidate the location index; range queries
// rebuild it on demand.
type Table struct {
	tokens []Token

	// locIndex перечисляет индексы токенов, отсортированные по Loc.
	// nil, пока индекс не построен или после Append.
	locIndex []int
}

// NewTable creates a table with room for capacity tokens.
func NewTable(capacity int) *Table {
	return &Table{tokens: make([]Token, 0, capacity)}
}

// Append adds a token.
func (tb *Table) Append(tok Token) {
	tb.tokens = append(tb.tokens, tok)
	tb.locIndex = nil
}

// Get returns the token at index. Panics on out-of-range, like a slice.
func (tb *Table) Get(index int) Token { return tb.tokens[index] }

// Len returns the number of stored tokens.
func (tb *Table) Len() int { return len(tb.tokens) }

// Empty reports whether the table has no tokens.
func (tb *Table) Empty() bool { return len(tb.tokens) == 0 }

// Clear drops all tokens.
func (tb *Table) Clear() {
	tb.tokens = tb.tokens[:0]
	tb.locIndex = nil
}

// Tokens returns the backing slice. Callers must not modify it.
func (tb *Table) Tokens() []Token { return tb.tokens }

func (tb *Table) buildLocIndex() {
	if tb.locIndex != nil {
		return
	}
	idx := make([]int, len(tb.tokens))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return tb.tokens[idx[a]].Loc < tb.tokens[idx[b]].Loc
	})
	tb.locIndex = idx
}

// FindAtLocation returns the index of the token whose range contains loc,
// or NotFound.
func (tb *Table) FindAtLocation(loc source.Location) int {
	if !loc.Valid() {
		return NotFound
	}
	for i, tok := range tb.tokens {
		if !tok.Loc.Valid() {
			continue
		}
		if loc.Raw() >= tok.Loc.Raw() && loc.Raw() <= tok.Loc.Raw()+tok.Length {
			return i
		}
	}
	return NotFound
}

// FindInRange returns the indices of tokens whose start lies in
// [r.Begin, r.End], in location order.
func (tb *Table) FindInRange(r source.Range) []int {
	if !r.Valid() {
		return nil
	}
	tb.buildLocIndex()

	lo := sort.Search(len(tb.locIndex), func(i int) bool {
		return tb.tokens[tb.locIndex[i]].Loc >= r.Begin
	})
	hi := sort.Search(len(tb.locIndex), func(i int) bool {
		return tb.tokens[tb.locIndex[i]].Loc > r.End
	})

	out := make([]int, 0, hi-lo)
	out = append(out, tb.locIndex[lo:hi]...)
	return out
}

// FindByKind returns the indices of all tokens with the given kind.
func (tb *Table) FindByKind(kind Kind) []int {
	var out []int
	for i, tok := range tb.tokens {
		if tok.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}

// Stream returns a forward iterator positioned at the first token.
func (tb *Table) Stream() *Stream {
	return &Stream{table: tb}
}

// Stream walks a Table forward. Past the end it reports a synthetic
// EndOfFile token.
type Stream struct {
	table *Table
	index int
}

var eofToken = Token{Kind: EndOfFile}

// Current returns the token under the cursor.
func (s *Stream) Current() Token {
	if s.index >= s.table.Len() {
		return eofToken
	}
	return s.table.Get(s.index)
}

// Peek returns the token offset positions ahead without moving.
func (s *Stream) Peek(offset int) Token {
	i := s.index + offset
	if i < 0 || i >= s.table.Len() {
		return eofToken
	}
	return s.table.Get(i)
}

// Advance moves the cursor one token forward.
func (s *Stream) Advance() {
	if s.index < s.table.Len() {
		s.index++
	}
}

// AtEnd reports whether the cursor is past the last token.
func (s *Stream) AtEnd() bool { return s.index >= s.table.Len() }

// Index returns the cursor position.
func (s *Stream) Index() int { return s.index }

// SetIndex repositions the cursor.
func (s *Stream) SetIndex(index int) { s.index = index }

// Reset rewinds to the first token.
func (s *Stream) Reset() { s.index = 0 }
