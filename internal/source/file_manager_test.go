package source

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"mica/internal/intern"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("запись тестового файла: %v", err)
	}
	return path
}

func TestGetFileBasic(t *testing.T) {
	fm := NewFileManager(intern.New())
	path := writeTestFile(t, t.TempDir(), "a.mi", "let x = 1;")

	entry, err := fm.GetFile(path)
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if string(entry.Bytes()) != "let x = 1;" {
		t.Errorf("содержимое: %q", entry.Bytes())
	}
	if entry.Size() != 10 {
		t.Errorf("Size = %d", entry.Size())
	}

	// Буфер NUL-терминирован.
	buf := entry.Buffer()
	if len(buf) != 11 || buf[10] != 0 {
		t.Errorf("буфер должен быть size+1 с финальным NUL: len=%d", len(buf))
	}
}

func TestGetFileCached(t *testing.T) {
	fm := NewFileManager(intern.New())
	path := writeTestFile(t, t.TempDir(), "a.mi", "cached")

	e1, err := fm.GetFile(path)
	if err != nil {
		t.Fatal(err)
	}
	e2, err := fm.GetFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if e1 != e2 {
		t.Error("повторный GetFile должен вернуть тот же *FileEntry")
	}

	st := fm.Stats()
	if st.OpenCount != 1 {
		t.Errorf("OpenCount = %d, ожидали 1", st.OpenCount)
	}
	if st.CacheHits != 1 || st.CacheMisses != 1 {
		t.Errorf("hits/misses = %d/%d", st.CacheHits, st.CacheMisses)
	}
}

func TestGetFileNotFound(t *testing.T) {
	fm := NewFileManager(intern.New())

	_, err := fm.GetFile(filepath.Join(t.TempDir(), "missing.mi"))
	if !errors.Is(err, ErrNoSuchFile) {
		t.Errorf("ожидали ErrNoSuchFile, получили %v", err)
	}
}

func TestGetFileDirectory(t *testing.T) {
	fm := NewFileManager(intern.New())

	_, err := fm.GetFile(t.TempDir())
	if !errors.Is(err, ErrIsDirectory) {
		t.Errorf("ожидали ErrIsDirectory, получили %v", err)
	}
}

func TestFileExistsAndSize(t *testing.T) {
	fm := NewFileManager(intern.New())
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.mi", "12345")

	if !fm.FileExists(path) {
		t.Error("FileExists должен быть true для существующего файла")
	}
	if fm.FileExists(filepath.Join(dir, "nope.mi")) {
		t.Error("FileExists должен быть false для отсутствующего файла")
	}

	size, err := fm.FileSize(path)
	if err != nil || size != 5 {
		t.Errorf("FileSize = %d, %v", size, err)
	}

	if _, err := fm.FileModTime(path); err != nil {
		t.Errorf("FileModTime: %v", err)
	}
}

func TestRemoveFromCache(t *testing.T) {
	fm := NewFileManager(intern.New())
	path := writeTestFile(t, t.TempDir(), "a.mi", "v1")

	e1, _ := fm.GetFile(path)
	fm.RemoveFromCache(path)

	// После удаления из кеша файл перечитывается.
	e2, _ := fm.GetFile(path)
	if e1 == e2 {
		t.Error("после RemoveFromCache ожидали новый entry")
	}
	// Старый entry остаётся валидным для держателей.
	if string(e1.Bytes()) != "v1" {
		t.Errorf("старый entry испорчен: %q", e1.Bytes())
	}
}

func TestClearCache(t *testing.T) {
	fm := NewFileManager(intern.New())
	dir := t.TempDir()
	fm.GetFile(writeTestFile(t, dir, "a.mi", "aaa"))
	fm.GetFile(writeTestFile(t, dir, "b.mi", "bbb"))

	if fm.Stats().CacheEntries != 2 {
		t.Fatalf("CacheEntries = %d", fm.Stats().CacheEntries)
	}
	fm.ClearCache()
	if fm.Stats().CacheEntries != 0 {
		t.Errorf("после ClearCache CacheEntries = %d", fm.Stats().CacheEntries)
	}
	if fm.CachedBytes() != 0 {
		t.Errorf("после ClearCache CachedBytes = %d", fm.CachedBytes())
	}
}

func TestEviction(t *testing.T) {
	fm := NewFileManager(intern.New())
	dir := t.TempDir()

	big := make([]byte, 4096)
	for i := range big {
		big[i] = 'x'
	}
	pathA := writeTestFile(t, dir, "a.mi", string(big))
	pathB := writeTestFile(t, dir, "b.mi", string(big))
	pathC := writeTestFile(t, dir, "c.mi", string(big))

	fm.SetMaxCacheSize(10 * 1024)
	fm.GetFile(pathA)
	fm.GetFile(pathB)
	fm.GetFile(pathC) // суммарно ~12KiB > 10KiB: старейший вылетает

	if got := fm.CachedBytes(); got > 10*1024 {
		t.Errorf("CachedBytes = %d, лимит 10KiB", got)
	}
	if fm.Stats().CacheEntries != 2 {
		t.Errorf("CacheEntries = %d, ожидали 2", fm.Stats().CacheEntries)
	}
}

func TestCanonicalization(t *testing.T) {
	fm := NewFileManager(intern.New())
	dir := t.TempDir()
	writeTestFile(t, dir, "a.mi", "same")

	e1, err := fm.GetFile(filepath.Join(dir, "a.mi"))
	if err != nil {
		t.Fatal(err)
	}
	// Другое написание того же пути.
	e2, err := fm.GetFile(filepath.Join(dir, ".", "a.mi"))
	if err != nil {
		t.Fatal(err)
	}
	if e1 != e2 {
		t.Error("разные написания одного пути должны делить entry")
	}
}

func TestConcurrentGetFile(t *testing.T) {
	fm := NewFileManager(intern.New())
	path := writeTestFile(t, t.TempDir(), "a.mi", "race me")

	const goroutines = 16
	entries := make([]*FileEntry, goroutines)
	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := fm.GetFile(path)
			if err != nil {
				t.Error(err)
				return
			}
			entries[g] = e
		}()
	}
	wg.Wait()

	for g := 1; g < goroutines; g++ {
		if entries[g] != entries[0] {
			t.Fatal("все горутины должны получить один и тот же entry")
		}
	}
}
