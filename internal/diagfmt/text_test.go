package diagfmt

import (
	"strings"
	"testing"

	"mica/internal/diag"
	"mica/internal/intern"
	"mica/internal/source"
)

func makeSM(t *testing.T, content string) (*source.SourceManager, source.FileID) {
	t.Helper()
	sm := source.NewSourceManager(source.NewFileManager(intern.New()))
	fid := sm.CreateVirtualFile("test.mi", []byte(content))
	return sm, fid
}

func TestTextConsumerBasic(t *testing.T) {
	sm, fid := makeSM(t, "let $ = 1;\n")
	var sb strings.Builder
	c := NewTextConsumer(&sb, false)

	loc := sm.LocForFileOffset(fid, 4)
	d := diag.New(diag.UnexpectedValue, loc).WithArg("valid character").WithArg("$")
	c.Handle(d, diag.InfoFor(diag.UnexpectedValue), sm)

	out := sb.String()
	if !strings.Contains(out, "test.mi:1:5: error: expected valid character but found $") {
		t.Errorf("заголовок диагностики:\n%s", out)
	}
	// Строка исходника и каретка под пятой колонкой.
	if !strings.Contains(out, "let $ = 1;") {
		t.Errorf("нет строки исходника:\n%s", out)
	}
	if !strings.Contains(out, "    ^") {
		t.Errorf("нет каретки:\n%s", out)
	}
}

func TestTextConsumerUnknownLocation(t *testing.T) {
	var sb strings.Builder
	c := NewTextConsumer(&sb, false)

	d := diag.New(diag.UnterminatedStringLiteral, source.NoLocation)
	c.Handle(d, diag.InfoFor(diag.UnterminatedStringLiteral), nil)

	if !strings.HasPrefix(sb.String(), "<unknown>: error: ") {
		t.Errorf("вывод: %q", sb.String())
	}
}

func TestTextConsumerRangesUnderline(t *testing.T) {
	sm, fid := makeSM(t, "abcdef\n")
	var sb strings.Builder
	c := NewTextConsumer(&sb, false)

	loc := sm.LocForFileOffset(fid, 1)
	d := diag.New(diag.UnexpectedValue, loc).
		WithArg("x").WithArg("y").
		WithRange(source.NewRange(sm.LocForFileOffset(fid, 2), sm.LocForFileOffset(fid, 5)))
	c.Handle(d, diag.InfoFor(diag.UnexpectedValue), sm)

	// Каретка на колонке 2, тильды на колонках 3-5.
	if !strings.Contains(sb.String(), " ^~~~") {
		t.Errorf("подчёркивание:\n%s", sb.String())
	}
}

func TestTextConsumerFixIt(t *testing.T) {
	sm, fid := makeSM(t, "fnn main() {}\n")
	var sb strings.Builder
	c := NewTextConsumer(&sb, false)

	loc := sm.LocForFileOffset(fid, 0)
	d := diag.New(diag.UnexpectedValue, loc).
		WithArg("keyword").WithArg("fnn").
		WithFixIt(source.NewRange(loc, sm.LocForFileOffset(fid, 3)), "fn")
	c.Handle(d, diag.InfoFor(diag.UnexpectedValue), sm)

	if !strings.Contains(sb.String(), "  fix-it: replace with 'fn'") {
		t.Errorf("fix-it:\n%s", sb.String())
	}
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		template string
		args     []string
		want     string
	}{
		{"plain", nil, "plain"},
		{"expected %0 but found %1", []string{"a", "b"}, "expected a but found b"},
		{"%1 before %0", []string{"a", "b"}, "b before a"},
		{"%0%0", []string{"x"}, "xx"},
		{"%5 out of range", []string{"a"}, "%5 out of range"},
		{"100%", nil, "100%"},
	}
	for _, tt := range tests {
		if got := FormatMessage(tt.template, tt.args); got != tt.want {
			t.Errorf("FormatMessage(%q, %v) = %q, ожидали %q", tt.template, tt.args, got, tt.want)
		}
	}
}
