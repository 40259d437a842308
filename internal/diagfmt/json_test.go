package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"mica/internal/diag"
	"mica/internal/source"
)

func TestJSONConsumerShape(t *testing.T) {
	sm, fid := makeSM(t, "x $\n")
	var sb strings.Builder
	c := NewJSONConsumer(&sb)

	c.BeginSourceFile()
	d := diag.New(diag.UnexpectedValue, sm.LocForFileOffset(fid, 2)).
		WithArg("valid character").WithArg("$")
	c.Handle(d, diag.InfoFor(diag.UnexpectedValue), sm)
	c.Handle(diag.New(diag.UnterminatedStringLiteral, source.NoLocation),
		diag.InfoFor(diag.UnterminatedStringLiteral), sm)
	c.EndSourceFile()

	var decoded struct {
		Diagnostics []struct {
			ID       uint32  `json:"id"`
			Level    string  `json:"level"`
			Message  string  `json:"message"`
			Location *struct {
				File   string `json:"file"`
				Line   uint32 `json:"line"`
				Column uint32 `json:"column"`
			} `json:"location"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("невалидный JSON: %v\n%s", err, sb.String())
	}
	if len(decoded.Diagnostics) != 2 {
		t.Fatalf("диагностик: %d", len(decoded.Diagnostics))
	}

	first := decoded.Diagnostics[0]
	if first.Level != "error" {
		t.Errorf("level = %q", first.Level)
	}
	if first.Message != "expected valid character but found $" {
		t.Errorf("message = %q", first.Message)
	}
	if first.Location == nil || first.Location.Line != 1 || first.Location.Column != 3 {
		t.Errorf("location = %+v", first.Location)
	}

	// Без локации — null.
	if decoded.Diagnostics[1].Location != nil {
		t.Error("location должен быть null без валидной локации")
	}
}

func TestJSONConsumerEmpty(t *testing.T) {
	var sb strings.Builder
	c := NewJSONConsumer(&sb)
	c.BeginSourceFile()
	c.EndSourceFile()

	var decoded map[string]any
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("невалидный JSON: %v\n%s", err, sb.String())
	}
}
