package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"mica/internal/intern"
	"mica/internal/source"
	"mica/internal/token"
)

// Schema version of the cached payload; bump on format changes so stale
// entries miss instead of decoding garbage.
const tokenCacheSchemaVersion uint16 = 1

// TokenPayload is the serialized token stream of one file, keyed by its
// content hash. Spellings are stored as plain strings and re-interned on
// materialization.
type TokenPayload struct {
	Schema      uint16
	Path        string
	ContentHash [32]byte

	Kinds     []uint16
	Offsets   []uint32
	Lengths   []uint32
	Flags     []uint8
	Spellings []string // "" для токенов без текста
}

// DiskCache stores token payloads under a directory, one file per
// content hash. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes the cache at the standard user location
// ($XDG_CACHE_HOME/app or ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt initializes the cache at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "tokens"), 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(hash [32]byte) string {
	return filepath.Join(c.dir, "tokens", hex.EncodeToString(hash[:])+".msgpack")
}

// HashContent returns the cache key for file content.
func HashContent(content []byte) [32]byte {
	return sha256.Sum256(content)
}

// BuildPayload converts a lexed stream into its serializable form.
// Offsets are file-relative, so the payload is position-independent.
func BuildPayload(sm *source.SourceManager, path string, content []byte, tokens []token.Token) *TokenPayload {
	p := &TokenPayload{
		Schema:      tokenCacheSchemaVersion,
		Path:        path,
		ContentHash: HashContent(content),
		Kinds:       make([]uint16, len(tokens)),
		Offsets:     make([]uint32, len(tokens)),
		Lengths:     make([]uint32, len(tokens)),
		Flags:       make([]uint8, len(tokens)),
		Spellings:   make([]string, len(tokens)),
	}
	for i, tok := range tokens {
		p.Kinds[i] = uint16(tok.Kind)
		if tok.Loc.Valid() {
			p.Offsets[i] = sm.FileOffset(tok.Loc)
		}
		p.Lengths[i] = tok.Length
		p.Flags[i] = uint8(tok.Flags)
		if tok.Text.Valid() {
			p.Spellings[i] = tok.Text.String()
		}
	}
	return p
}

// Tokens rebuilds the stream against a registered file, re-interning
// spellings in the given interner.
func (p *TokenPayload) Tokens(sm *source.SourceManager, fid source.FileID, interner *intern.Interner) []token.Token {
	tokens := make([]token.Token, len(p.Kinds))
	for i := range p.Kinds {
		tok := token.Token{
			Kind:   token.Kind(p.Kinds[i]),
			Loc:    sm.LocForFileOffset(fid, p.Offsets[i]),
			Length: p.Lengths[i],
			Flags:  token.Flags(p.Flags[i]),
		}
		if p.Spellings[i] != "" {
			tok.Text = interner.InternString(p.Spellings[i])
		}
		tokens[i] = tok
	}
	return tokens
}

// Store writes the payload atomically (temp file + rename).
func (c *DiskCache) Store(p *TokenPayload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := msgpack.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode token cache: %w", err)
	}

	final := c.pathFor(p.ContentHash)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publish token cache: %w", err)
	}
	return nil
}

// Load returns the payload for hash. The second result is false on a
// clean miss; decode failures and schema or hash mismatches also count
// as misses (the entry is ignored, not an error).
func (c *DiskCache) Load(hash [32]byte) (*TokenPayload, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(hash))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read token cache: %w", err)
	}

	var p TokenPayload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, false, nil // повреждённая запись — промах, не ошибка
	}
	if p.Schema != tokenCacheSchemaVersion || p.ContentHash != hash {
		return nil, false, nil
	}
	return &p, true, nil
}

// Remove drops the entry for hash if present.
func (c *DiskCache) Remove(hash [32]byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := os.Remove(c.pathFor(hash))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
