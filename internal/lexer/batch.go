package lexer

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"mica/internal/diag"
	"mica/internal/intern"
	"mica/internal/source"
	"mica/internal/token"
)

// TokenizeString lexes a raw slice and collects every token up to and
// including EndOfFile.
func TokenizeString(src []byte, interner *intern.Interner, diags *diag.Manager,
	opts Options) []token.Token {
	lx := NewFromBytes(src, interner, diags, opts)
	return collect(lx, len(src))
}

// TokenizeFile lexes a registered file and collects every token up to and
// including EndOfFile.
func TokenizeFile(sm *source.SourceManager, fid source.FileID,
	interner *intern.Interner, diags *diag.Manager, opts Options) []token.Token {
	lx := New(sm, fid, interner, diags, opts)
	size := 0
	if entry := sm.FileEntryFor(fid); entry != nil {
		size = int(entry.Size())
	}
	return collect(lx, size)
}

func collect(lx *Lexer, srcLen int) []token.Token {
	// Эвристика плотности: примерно один токен на 7 байт.
	tokens := make([]token.Token, 0, srcLen/7+16)
	for {
		tok := lx.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EndOfFile {
			return tokens
		}
	}
}

// Batch tokenizes many independent sources with shared interner and
// diagnostic manager, aggregating statistics across runs.
type Batch struct {
	interner *intern.Interner
	diags    *diag.Manager
	opts     Options

	mu    sync.Mutex
	stats Stats
}

// NewBatch creates a batch tokenizer.
func NewBatch(interner *intern.Interner, diags *diag.Manager, opts Options) *Batch {
	return &Batch{interner: interner, diags: diags, opts: opts}
}

// TokenizeParallel lexes every source concurrently, one lexer per
// goroutine; the shared interner and manager are safe for that. Results
// keep input order. jobs <= 0 means one goroutine per source.
func (b *Batch) TokenizeParallel(ctx context.Context, sources [][]byte, jobs int) ([][]token.Token, error) {
	results := make([][]token.Token, len(sources))

	g, _ := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, src := range sources {
		g.Go(func() error {
			lx := NewFromBytes(src, b.interner, b.diags, b.opts)
			results[i] = collect(lx, len(src))
			b.merge(lx.Stats())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// TokenizeStreaming lexes src and invokes callback for every token,
// EndOfFile included.
func (b *Batch) TokenizeStreaming(src []byte, callback func(token.Token)) {
	lx := NewFromBytes(src, b.interner, b.diags, b.opts)
	for {
		tok := lx.NextToken()
		callback(tok)
		if tok.Kind == token.EndOfFile {
			break
		}
	}
	b.merge(lx.Stats())
}

func (b *Batch) merge(st Stats) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.Merge(st)
}

// AggregateStats returns the statistics accumulated across runs.
func (b *Batch) AggregateStats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}
