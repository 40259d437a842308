package lexer

import (
	"time"

	"mica/internal/diag"
	"mica/internal/intern"
	"mica/internal/source"
	"mica/internal/token"
)

// Lexer turns a byte buffer into a token stream. It never fails: lexical
// problems go to the diagnostic manager and scanning continues, so
// consumers always see a complete stream ending in EndOfFile.
//
// One lexer serves one goroutine; the interner and diagnostic manager it
// borrows may be shared.
type Lexer struct {
	sm       *source.SourceManager // nil при лексинге сырого среза
	fid      source.FileID
	interner *intern.Interner
	diags    *diag.Manager
	opts     Options

	cursor    cursor
	baseLoc   source.Location
	line      uint32 // 1-based
	lineStart uint32 // offset of the current line's first byte

	// pendingSpace: между предыдущим значимым токеном и текущей позицией
	// была trivia.
	pendingSpace bool

	peeked *token.Token

	stats Stats
}

// New creates a lexer over a file registered in sm.
func New(sm *source.SourceManager, fid source.FileID, interner *intern.Interner,
	diags *diag.Manager, opts Options) *Lexer {
	var src []byte
	baseLoc := source.NoLocation
	if entry := sm.FileEntryFor(fid); entry != nil {
		src = entry.Bytes()
		baseLoc = sm.StartLoc(fid)
	}
	return &Lexer{
		sm:       sm,
		fid:      fid,
		interner: interner,
		diags:    diags,
		opts:     opts,
		cursor:   cursor{src: src},
		baseLoc:  baseLoc,
		line:     1,
	}
}

// NewFromBytes creates a lexer over a raw slice with no location mapping:
// every token carries NoLocation.
func NewFromBytes(src []byte, interner *intern.Interner, diags *diag.Manager,
	opts Options) *Lexer {
	return &Lexer{
		interner: interner,
		diags:    diags,
		opts:     opts,
		cursor:   cursor{src: src},
		baseLoc:  source.NoLocation,
		line:     1,
	}
}

// locAt encodes the offset as a global location; NoLocation in raw mode.
func (lx *Lexer) locAt(off uint32) source.Location {
	if !lx.baseLoc.Valid() {
		return source.NoLocation
	}
	return source.FromRaw(lx.baseLoc.Raw() + off)
}

// NextToken scans and returns the next token. After EndOfFile it keeps
// returning EndOfFile.
func (lx *Lexer) NextToken() token.Token {
	if lx.peeked != nil {
		tok := *lx.peeked
		lx.peeked = nil
		return tok
	}

	started := time.Now()
	tok := lx.scan()
	lx.stats.LexTime += time.Since(started)

	lx.stats.TokenCount++
	lx.stats.PerKind[tok.Kind]++
	return tok
}

// PeekToken returns the next token without consuming it. At most one
// token is buffered; the following NextToken returns it without a rescan.
func (lx *Lexer) PeekToken() token.Token {
	if lx.peeked == nil {
		tok := lx.NextToken()
		lx.peeked = &tok
	}
	return *lx.peeked
}

// AtEnd reports whether the cursor is past the last content byte. A
// buffered peeked token is not considered.
func (lx *Lexer) AtEnd() bool { return lx.cursor.eof() }

// CurrentLocation returns the location under the cursor.
func (lx *Lexer) CurrentLocation() source.Location {
	return lx.locAt(lx.cursor.off)
}

// CurrentLine returns the 1-based line under the cursor.
func (lx *Lexer) CurrentLine() uint32 { return lx.line }

// CurrentColumn returns the 1-based column under the cursor.
func (lx *Lexer) CurrentColumn() uint32 {
	return lx.cursor.off - lx.lineStart + 1
}

// FileID returns the file being lexed; NoFile in raw mode.
func (lx *Lexer) FileID() source.FileID { return lx.fid }

// Options returns the active options.
func (lx *Lexer) Options() Options { return lx.opts }

// SkipToEndOfLine consumes bytes up to, not including, the next newline.
func (lx *Lexer) SkipToEndOfLine() {
	for !lx.cursor.eof() && !lx.isNewline(lx.cursor.peek()) {
		lx.cursor.bump()
	}
}

// Reset rewinds to the beginning of the source and zeroes the statistics.
func (lx *Lexer) Reset() {
	lx.cursor.off = 0
	lx.line = 1
	lx.lineStart = 0
	lx.pendingSpace = false
	lx.peeked = nil
	lx.stats = Stats{}
}

// scan loops over trivia until a returnable token is produced.
func (lx *Lexer) scan() token.Token {
	for {
		if lx.cursor.eof() {
			return token.Token{
				Kind: token.EndOfFile,
				Loc:  lx.locAt(lx.cursor.off),
			}
		}

		atLineStart := lx.cursor.off == lx.lineStart
		hadSpace := lx.pendingSpace
		b := lx.cursor.peek()

		if lx.opts.EnableLookupTables {
			lx.stats.LookupTableHits++
		}

		var tok token.Token
		switch {
		case lx.isWhitespace(b):
			ws := lx.scanWhitespace()
			if !lx.opts.RetainWhitespace {
				lx.pendingSpace = true
				continue
			}
			tok = ws

		case lx.isNewline(b):
			nl := lx.scanNewline()
			if !lx.opts.RetainWhitespace {
				lx.pendingSpace = true
				continue
			}
			tok = nl

		case b == '/' && (lx.cursor.peekAt(1) == '/' || lx.cursor.peekAt(1) == '*'):
			c := lx.scanComment()
			if !lx.opts.RetainComments {
				lx.pendingSpace = true
				continue
			}
			tok = c

		case lx.isAlpha(b):
			tok = lx.scanIdentOrKeyword()

		case lx.isDigit(b):
			tok = lx.scanNumber()

		case b == '"':
			tok = lx.scanString()

		case b == '\'':
			tok = lx.scanCharLiteral()

		default:
			tok = lx.scanOperatorOrPunct()
		}

		if atLineStart {
			tok.Flags |= token.AtStartOfLine
		}
		if hadSpace {
			tok.Flags |= token.HasLeadingSpace
		}
		// Удержанная trivia остаётся «ведущим пробелом» для следующего
		// значимого токена.
		lx.pendingSpace = tok.Kind.IsTrivia()
		return tok
	}
}

// handleNewline consumes one CR, LF, or CR LF and advances the line.
func (lx *Lexer) handleNewline() {
	if lx.cursor.eat('\r') {
		lx.cursor.eat('\n') // CR LF считается одной строкой
	} else {
		lx.cursor.eat('\n')
	}
	lx.line++
	lx.lineStart = lx.cursor.off
	lx.stats.LineCount = lx.line
}
