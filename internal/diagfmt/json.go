package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"mica/internal/diag"
	"mica/internal/source"
)

// LocationJSON is the resolved position of a diagnostic.
type LocationJSON struct {
	File   string `json:"file"`
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

// DiagnosticJSON is one entry of the machine-readable output.
type DiagnosticJSON struct {
	ID       uint32        `json:"id"`
	Level    string        `json:"level"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location"`
}

// JSONConsumer streams diagnostics as
//
//	{"diagnostics":[ {...}, {...} ]}
//
// BeginSourceFile opens the document, EndSourceFile closes it.
type JSONConsumer struct {
	w     io.Writer
	first bool
}

// NewJSONConsumer creates a consumer writing to w.
func NewJSONConsumer(w io.Writer) *JSONConsumer {
	return &JSONConsumer{w: w, first: true}
}

// BeginSourceFile implements diag.Consumer.
func (c *JSONConsumer) BeginSourceFile() {
	fmt.Fprint(c.w, `{"diagnostics": [`)
	c.first = true
}

// Handle implements diag.Consumer.
func (c *JSONConsumer) Handle(d *diag.Diagnostic, info diag.Info, sm *source.SourceManager) {
	if !c.first {
		fmt.Fprint(c.w, ",")
	}
	c.first = false

	entry := DiagnosticJSON{
		ID:      uint32(d.ID),
		Level:   jsonLevel(info.Level),
		Message: FormatMessage(info.Detail, d.Args),
	}
	if sm != nil && d.Loc.Valid() {
		if fid := sm.FileIDFor(d.Loc); fid.Valid() {
			line, col := sm.LineAndColumn(d.Loc)
			entry.Location = &LocationJSON{
				File:   sm.FilenameString(d.Loc),
				Line:   line,
				Column: col,
			}
		}
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		// Marshal структуры из строк и чисел не падает; на всякий случай
		// не роняем поток вывода.
		return
	}
	fmt.Fprintf(c.w, "\n  %s", encoded)
}

// jsonLevel prints Fatal as "fatal" (text output uses "fatal error").
func jsonLevel(l diag.Level) string {
	if l == diag.Fatal {
		return "fatal"
	}
	return l.String()
}

// EndSourceFile implements diag.Consumer.
func (c *JSONConsumer) EndSourceFile() {
	fmt.Fprint(c.w, "\n]}\n")
}

// Finish implements diag.Consumer.
func (c *JSONConsumer) Finish() {}
