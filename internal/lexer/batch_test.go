package lexer_test

import (
	"context"
	"fmt"
	"testing"

	"mica/internal/diag"
	"mica/internal/intern"
	"mica/internal/lexer"
	"mica/internal/token"
)

func TestTokenizeString(t *testing.T) {
	interner := intern.New()
	diags := diag.NewManager()

	tokens := lexer.TokenizeString([]byte("let x;"), interner, diags, lexer.DefaultOptions())
	if len(tokens) != 4 {
		t.Fatalf("токенов: %d", len(tokens))
	}
	if tokens[len(tokens)-1].Kind != token.EndOfFile {
		t.Error("последний токен должен быть EOF")
	}
}

func TestBatchParallel(t *testing.T) {
	interner := intern.New()
	diags := diag.NewManager()
	b := lexer.NewBatch(interner, diags, lexer.DefaultOptions())

	sources := make([][]byte, 20)
	for i := range sources {
		sources[i] = fmt.Appendf(nil, "let v%d = %d;", i, i)
	}

	results, err := b.TokenizeParallel(context.Background(), sources, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(sources) {
		t.Fatalf("результатов: %d", len(results))
	}
	for i, tokens := range results {
		// let, ident, =, int, ;, EOF
		if len(tokens) != 6 {
			t.Errorf("источник %d: %d токенов", i, len(tokens))
		}
	}

	st := b.AggregateStats()
	if st.TokenCount != 20*6 {
		t.Errorf("агрегированный TokenCount = %d", st.TokenCount)
	}
	if st.KeywordCount != 20 {
		t.Errorf("агрегированный KeywordCount = %d", st.KeywordCount)
	}
}

func TestBatchStreaming(t *testing.T) {
	b := lexer.NewBatch(intern.New(), diag.NewManager(), lexer.DefaultOptions())

	var kinds []token.Kind
	b.TokenizeStreaming([]byte("a b"), func(tok token.Token) {
		kinds = append(kinds, tok.Kind)
	})
	if len(kinds) != 3 || kinds[2] != token.EndOfFile {
		t.Errorf("поток: %v", kinds)
	}
}

// Один и тот же идентификатор из разных источников делит handle.
func TestBatchSharedInterner(t *testing.T) {
	interner := intern.New()
	b := lexer.NewBatch(interner, diag.NewManager(), lexer.DefaultOptions())

	sources := [][]byte{[]byte("shared"), []byte("shared"), []byte("shared")}
	results, err := b.TokenizeParallel(context.Background(), sources, 0)
	if err != nil {
		t.Fatal(err)
	}
	h := results[0][0].Text
	for i := 1; i < len(results); i++ {
		if results[i][0].Text != h {
			t.Error("идентификатор должен делить handle между источниками")
		}
	}
}
