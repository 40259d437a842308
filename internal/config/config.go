// Package config loads mica.toml, the optional front-end configuration.
// Discovery walks up from the start directory, the way module manifests
// are found; decoding is strict TOML plus struct validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"mica/internal/lexer"
)

// ManifestName is the file looked up during discovery.
const ManifestName = "mica.toml"

// Config is the decoded mica.toml.
type Config struct {
	Lexer       LexerConfig       `toml:"lexer"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Cache       CacheConfig       `toml:"cache"`
}

// LexerConfig mirrors lexer.Options in file form.
type LexerConfig struct {
	RetainComments   bool   `toml:"retain_comments"`
	RetainWhitespace bool   `toml:"retain_whitespace"`
	Encoding         string `toml:"encoding" validate:"omitempty,oneof=utf8 ascii latin1"`

	FastPath     bool `toml:"fast_path"`
	LookupTables bool `toml:"lookup_tables"`
	Prefetching  bool `toml:"prefetching"`
	Simd         bool `toml:"simd"`
}

// DiagnosticsConfig configures the diagnostic manager and output.
type DiagnosticsConfig struct {
	MaxErrors        uint64 `toml:"max_errors" validate:"max=100000"`
	WarningsAsErrors bool   `toml:"warnings_as_errors"`
	SuppressWarnings bool   `toml:"suppress_warnings"`
	SuppressNotes    bool   `toml:"suppress_notes"`
	Format           string `toml:"format" validate:"omitempty,oneof=text json"`
}

// CacheConfig bounds the in-memory file cache and toggles the on-disk
// token cache.
type CacheConfig struct {
	MaxFileCacheBytes uint64 `toml:"max_file_cache_bytes"`
	TokenCache        bool   `toml:"token_cache"`
	TokenCacheDir     string `toml:"token_cache_dir"`
}

// Default returns the configuration used when no mica.toml exists.
func Default() Config {
	return Config{
		Lexer: LexerConfig{
			Encoding:     "utf8",
			FastPath:     true,
			LookupTables: true,
			Prefetching:  true,
		},
		Diagnostics: DiagnosticsConfig{
			MaxErrors: 100,
			Format:    "text",
		},
	}
}

// LexerOptions converts the file form into lexer.Options.
func (c Config) LexerOptions() lexer.Options {
	opts := lexer.Options{
		RetainComments:          c.Lexer.RetainComments,
		RetainWhitespace:        c.Lexer.RetainWhitespace,
		WarningsAsErrors:        c.Diagnostics.WarningsAsErrors,
		EnableFastPath:          c.Lexer.FastPath,
		EnableLookupTables:      c.Lexer.LookupTables,
		EnablePrefetching:       c.Lexer.Prefetching,
		EnableSimdOptimizations: c.Lexer.Simd,
	}
	switch c.Lexer.Encoding {
	case "ascii":
		opts.InputEncoding = lexer.EncodingASCII
	case "latin1":
		opts.InputEncoding = lexer.EncodingLatin1
	default:
		opts.InputEncoding = lexer.EncodingUTF8
	}
	return opts
}

var validate = validator.New()

// Load decodes and validates the manifest at path.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

// Discover walks up from startDir looking for mica.toml. The second
// result is false when no manifest exists; that is not an error.
func Discover(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadOrDefault discovers and loads the manifest; with none found it
// returns Default().
func LoadOrDefault(startDir string) (Config, error) {
	path, ok, err := Discover(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
