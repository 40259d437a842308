package token

import "sort"

// keywordEntry pairs a canonical spelling with its kind. The table is
// sorted by spelling; LookupKeyword binary-searches it.
type keywordEntry struct {
	spelling string
	kind     Kind
}

// keywords is the one canonical keyword set. 'fn' and 'mod' are the
// canonical spellings; 'function' and 'module' are not recognized.
// Keywords are case-sensitive, lowercase only.
var keywords = [...]keywordEntry{
	{"auto", KwAuto},
	{"break", KwBreak},
	{"case", KwCase},
	{"const", KwConst},
	{"continue", KwContinue},
	{"default", KwDefault},
	{"do", KwDo},
	{"else", KwElse},
	{"enum", KwEnum},
	{"extern", KwExtern},
	{"false", KwFalse},
	{"fn", KwFn},
	{"for", KwFor},
	{"if", KwIf},
	{"import", KwImport},
	{"let", KwLet},
	{"mod", KwMod},
	{"mut", KwMut},
	{"null", KwNull},
	{"return", KwReturn},
	{"struct", KwStruct},
	{"switch", KwSwitch},
	{"true", KwTrue},
	{"type", KwType},
	{"var", KwVar},
	{"while", KwWhile},
}

// LookupKeyword returns the keyword kind for text, or (Identifier, false)
// when text is not a keyword.
func LookupKeyword(text string) (Kind, bool) {
	idx := sort.Search(len(keywords), func(i int) bool {
		return keywords[i].spelling >= text
	})
	if idx < len(keywords) && keywords[idx].spelling == text {
		return keywords[idx].kind, true
	}
	return Identifier, false
}

// KeywordCount returns the number of keywords.
func KeywordCount() int { return len(keywords) }

// KeywordSpellings returns the canonical spellings in sorted order.
func KeywordSpellings() []string {
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = kw.spelling
	}
	return out
}
