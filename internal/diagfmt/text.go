package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mica/internal/diag"
	"mica/internal/source"
)

// TextConsumer renders diagnostics for humans:
//
//	<path>:<line>:<col>: <level>: <message>
//	<source line>
//	    ^~~~
//	  fix-it: replace with '<text>'
//
// Colors are optional and per level; the caret line is green.
type TextConsumer struct {
	w         io.Writer
	useColors bool

	noteColor  *color.Color
	warnColor  *color.Color
	errColor   *color.Color
	fatalColor *color.Color
	caretColor *color.Color
}

// NewTextConsumer creates a consumer writing to w.
func NewTextConsumer(w io.Writer, useColors bool) *TextConsumer {
	return &TextConsumer{
		w:          w,
		useColors:  useColors,
		noteColor:  color.New(color.FgCyan),
		warnColor:  color.New(color.FgYellow),
		errColor:   color.New(color.FgRed),
		fatalColor: color.New(color.FgRed, color.Bold),
		caretColor: color.New(color.FgGreen),
	}
}

// BeginSourceFile implements diag.Consumer.
func (c *TextConsumer) BeginSourceFile() {}

// EndSourceFile implements diag.Consumer.
func (c *TextConsumer) EndSourceFile() {}

// Finish implements diag.Consumer.
func (c *TextConsumer) Finish() {}

// Handle implements diag.Consumer.
func (c *TextConsumer) Handle(d *diag.Diagnostic, info diag.Info, sm *source.SourceManager) {
	location := "<unknown>"
	if sm != nil && d.Loc.Valid() {
		if fid := sm.FileIDFor(d.Loc); fid.Valid() {
			line, col := sm.LineAndColumn(d.Loc)
			location = fmt.Sprintf("%s:%d:%d", sm.FilenameString(d.Loc), line, col)
		}
	}

	level := info.Level.String()
	if c.useColors {
		level = c.levelColor(info.Level).Sprint(level)
	}

	message := FormatMessage(info.Detail, d.Args)
	fmt.Fprintf(c.w, "%s: %s: %s\n", location, level, message)

	if sm != nil && d.Loc.Valid() {
		c.printSourceLine(d, sm)
	}

	for _, fix := range d.FixIts {
		fmt.Fprintf(c.w, "  fix-it: replace with '%s'\n", fix.Replacement)
	}
}

func (c *TextConsumer) levelColor(l diag.Level) *color.Color {
	switch l {
	case diag.Note:
		return c.noteColor
	case diag.Warning:
		return c.warnColor
	case diag.Fatal:
		return c.fatalColor
	}
	return c.errColor
}

// printSourceLine emits the offending line, a caret under the location,
// and '~' underlines for highlight ranges that land on the same line.
func (c *TextConsumer) printSourceLine(d *diag.Diagnostic, sm *source.SourceManager) {
	fid := sm.FileIDFor(d.Loc)
	entry := sm.FileEntryFor(fid)
	if entry == nil {
		return
	}

	line, col := sm.LineAndColumn(d.Loc)
	if col == 0 {
		return
	}
	offset := sm.FileOffset(d.Loc)
	lineStart := offset - (col - 1)

	content := entry.Bytes()
	lineEnd := lineStart
	for lineEnd < uint32(len(content)) &&
		content[lineEnd] != '\n' && content[lineEnd] != '\r' {
		lineEnd++
	}
	lineText := string(content[lineStart:lineEnd])
	fmt.Fprintln(c.w, lineText)

	// Каретка выравнивается по видимой ширине префикса: широкие руны
	// занимают две колонки, табуляция — ноль (не раскрывается).
	prefix := lineText
	if int(col-1) <= len(lineText) {
		prefix = lineText[:col-1]
	}
	pad := runewidth.StringWidth(prefix)
	highlight := make([]byte, pad, pad+1)
	for i := range highlight {
		highlight[i] = ' '
	}
	highlight = append(highlight, '^')

	// Подчёркивание диапазонов в пределах этой же строки.
	for _, r := range d.Ranges {
		if !r.Valid() || sm.FileIDFor(r.Begin) != fid {
			continue
		}
		rLine, rStartCol := sm.LineAndColumn(r.Begin)
		if rLine != line {
			continue
		}
		_, rEndCol := sm.LineAndColumn(r.End)
		for cc := rStartCol; cc < rEndCol; cc++ {
			idx := int(cc) - 1
			for idx >= len(highlight) {
				highlight = append(highlight, ' ')
			}
			if highlight[idx] == ' ' {
				highlight[idx] = '~'
			}
		}
	}

	if c.useColors {
		fmt.Fprintln(c.w, c.caretColor.Sprint(string(highlight)))
	} else {
		fmt.Fprintln(c.w, string(highlight))
	}
}
