// Package driver wires the front-end pieces together for the CLI: file
// manager, source manager, interner, lexer, and diagnostics.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"mica/internal/arena"
	"mica/internal/config"
	"mica/internal/diag"
	"mica/internal/intern"
	"mica/internal/lexer"
	"mica/internal/observ"
	"mica/internal/source"
	"mica/internal/token"
)

// SourceExt is the mica source file extension.
const SourceExt = ".mi"

// Session owns the shared state of one front-end run.
type Session struct {
	Arena    *arena.Arena
	Interner *intern.Interner
	SM       *source.SourceManager
	Diags    *diag.Manager
	Config   config.Config
}

// NewSession builds the managers from a configuration. Interned strings
// live in an arena owned by the session.
func NewSession(cfg config.Config) *Session {
	a := arena.New()
	interner := intern.NewWithArena(a)
	fm := source.NewFileManager(interner)
	if cfg.Cache.MaxFileCacheBytes > 0 {
		fm.SetMaxCacheSize(cfg.Cache.MaxFileCacheBytes)
	}
	sm := source.NewSourceManager(fm)

	diags := diag.NewManager()
	diags.SetSourceManager(sm)
	diags.SetMaxErrors(cfg.Diagnostics.MaxErrors)
	diags.SetWarningsAsErrors(cfg.Diagnostics.WarningsAsErrors)
	diags.SetSuppressWarnings(cfg.Diagnostics.SuppressWarnings)
	diags.SetSuppressNotes(cfg.Diagnostics.SuppressNotes)

	return &Session{
		Arena:    a,
		Interner: interner,
		SM:       sm,
		Diags:    diags,
		Config:   cfg,
	}
}

// TokenizeResult is the outcome of lexing one file.
type TokenizeResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Table  *token.Table
	Stats  lexer.Stats
	Timer  *observ.Timer
}

// Tokenize loads and lexes one file. Lexical errors land in the
// session's diagnostic manager; the returned error covers I/O only.
func (s *Session) Tokenize(path string) (*TokenizeResult, error) {
	timer := observ.NewTimer()

	loadPhase := timer.Begin("load")
	fid, err := s.SM.CreateFile(path)
	if err != nil {
		return nil, err
	}
	entry := s.SM.FileEntryFor(fid)
	timer.End(loadPhase, fmt.Sprintf("%d bytes", entry.Size()))

	lexPhase := timer.Begin("lex")
	lx := lexer.New(s.SM, fid, s.Interner, s.Diags, s.Config.LexerOptions())
	table := token.NewTable(int(entry.Size())/7 + 16)
	var tokens []token.Token
	for {
		tok := lx.NextToken()
		tokens = append(tokens, tok)
		table.Append(tok)
		if tok.Kind == token.EndOfFile {
			break
		}
	}
	timer.End(lexPhase, fmt.Sprintf("%d tokens", len(tokens)))

	return &TokenizeResult{
		Path:   path,
		FileID: fid,
		Tokens: tokens,
		Table:  table,
		Stats:  lx.Stats(),
		Timer:  timer,
	}, nil
}

// listSourceFiles returns every *.mi file under dir, sorted for
// deterministic output.
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// TokenizeDir lexes every source file under dir, jobs files at a time.
// jobs <= 0 uses the CPU count. Results keep the sorted file order.
func (s *Session) TokenizeDir(ctx context.Context, dir string, jobs int) ([]*TokenizeResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]*TokenizeResult, len(files))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			res, err := s.Tokenize(path)
			if err != nil {
				return fmt.Errorf("tokenize %s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
