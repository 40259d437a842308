package token

import (
	"sort"
	"testing"
)

func TestKeywordTableSorted(t *testing.T) {
	spellings := KeywordSpellings()
	if !sort.StringsAreSorted(spellings) {
		t.Fatalf("таблица ключевых слов должна быть отсортирована: %v", spellings)
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		text string
		kind Kind
		ok   bool
	}{
		{"fn", KwFn, true},
		{"mod", KwMod, true},
		{"let", KwLet, true},
		{"while", KwWhile, true},
		{"auto", KwAuto, true},
		{"function", Identifier, false}, // только канонические написания
		{"module", Identifier, false},
		{"Fn", Identifier, false}, // регистрозависимо
		{"", Identifier, false},
		{"letx", Identifier, false},
		{"le", Identifier, false},
	}
	for _, tt := range tests {
		kind, ok := LookupKeyword(tt.text)
		if kind != tt.kind || ok != tt.ok {
			t.Errorf("LookupKeyword(%q) = (%v, %v), ожидали (%v, %v)",
				tt.text, kind, ok, tt.kind, tt.ok)
		}
	}
}

func TestEveryKeywordRoundTrips(t *testing.T) {
	for _, spelling := range KeywordSpellings() {
		kind, ok := LookupKeyword(spelling)
		if !ok {
			t.Errorf("ключевое слово %q не находится", spelling)
			continue
		}
		if kind.String() != spelling {
			t.Errorf("kind %v печатается как %q, ожидали %q", kind, kind.String(), spelling)
		}
		if !kind.IsKeyword() {
			t.Errorf("kind %v должен быть ключевым словом", kind)
		}
	}
	if KeywordCount() != 26 {
		t.Errorf("KeywordCount = %d, ожидали 26", KeywordCount())
	}
}
