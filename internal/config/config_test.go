package config

import (
	"os"
	"path/filepath"
	"testing"

	"mica/internal/lexer"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFull(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[lexer]
retain_comments = true
encoding = "latin1"
lookup_tables = true

[diagnostics]
max_errors = 5
warnings_as_errors = true
format = "json"

[cache]
max_file_cache_bytes = 1048576
token_cache = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Lexer.RetainComments || cfg.Lexer.Encoding != "latin1" {
		t.Errorf("lexer: %+v", cfg.Lexer)
	}
	if cfg.Diagnostics.MaxErrors != 5 || !cfg.Diagnostics.WarningsAsErrors {
		t.Errorf("diagnostics: %+v", cfg.Diagnostics)
	}
	if cfg.Cache.MaxFileCacheBytes != 1<<20 || !cfg.Cache.TokenCache {
		t.Errorf("cache: %+v", cfg.Cache)
	}

	opts := cfg.LexerOptions()
	if !opts.RetainComments || opts.InputEncoding != lexer.EncodingLatin1 {
		t.Errorf("options: %+v", opts)
	}
}

func TestLoadRejectsBadEncoding(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[lexer]
encoding = "utf16"
`)
	if _, err := Load(path); err == nil {
		t.Error("невалидная кодировка должна отклоняться")
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[lexer]
retian_comments = true
`)
	if _, err := Load(path); err == nil {
		t.Error("опечатка в ключе должна отклоняться")
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover: %v, ok=%v", err, ok)
	}
	if filepath.Dir(path) != root {
		t.Errorf("найден манифест %q, ожидали в %q", path, root)
	}
}

func TestLoadOrDefaultWithoutManifest(t *testing.T) {
	cfg, err := LoadOrDefault(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Diagnostics.MaxErrors != Default().Diagnostics.MaxErrors {
		t.Error("без манифеста должны действовать значения по умолчанию")
	}
	if !cfg.LexerOptions().EnableLookupTables {
		t.Error("значения по умолчанию включают таблицы")
	}
}
