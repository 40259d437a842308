package lexer

import (
	"time"

	"mica/internal/token"
)

// Stats aggregates lexer activity counters. The SIMD and lookup-table
// counters exist for profiling; the corresponding options never change
// the token stream.
type Stats struct {
	CharsProcessed  uint64
	TokenCount      uint64
	PerKind         [token.KindCount]uint64
	IdentifierCount uint64
	KeywordCount    uint64
	LiteralCount    uint64
	CommentCount    uint64
	LineCount       uint32
	LexTime         time.Duration

	SimdBatches     uint64
	LookupTableHits uint64
}

// AvgTokenLength returns processed characters per token.
func (s Stats) AvgTokenLength() float64 {
	if s.TokenCount == 0 {
		return 0
	}
	return float64(s.CharsProcessed) / float64(s.TokenCount)
}

// Stats returns a snapshot of the counters.
func (lx *Lexer) Stats() Stats {
	st := lx.stats
	st.CharsProcessed = uint64(lx.cursor.off)
	st.LineCount = lx.line
	return st
}

// Merge accumulates other into s. Used by the batch tokenizer.
func (s *Stats) Merge(other Stats) {
	s.CharsProcessed += other.CharsProcessed
	s.TokenCount += other.TokenCount
	for k := range s.PerKind {
		s.PerKind[k] += other.PerKind[k]
	}
	s.IdentifierCount += other.IdentifierCount
	s.KeywordCount += other.KeywordCount
	s.LiteralCount += other.LiteralCount
	s.CommentCount += other.CommentCount
	s.LineCount += other.LineCount
	s.LexTime += other.LexTime
	s.SimdBatches += other.SimdBatches
	s.LookupTableHits += other.LookupTableHits
}
