package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mica/internal/driver"
)

var (
	statsBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	statsTitleStyle = lipgloss.NewStyle().Bold(true)
	statsLabelStyle = lipgloss.NewStyle().Faint(true)
)

// renderStats formats the per-run counters as a bordered block.
func renderStats(s *driver.Session, res *driver.TokenizeResult) string {
	var sb strings.Builder

	sb.WriteString(statsTitleStyle.Render("lexer") + "\n")
	st := res.Stats
	row(&sb, "tokens", st.TokenCount)
	row(&sb, "characters", st.CharsProcessed)
	row(&sb, "identifiers", st.IdentifierCount)
	row(&sb, "keywords", st.KeywordCount)
	row(&sb, "literals", st.LiteralCount)
	row(&sb, "comments", st.CommentCount)
	row(&sb, "lines", uint64(st.LineCount))
	fmt.Fprintf(&sb, "%s %.2f ms\n", statsLabelStyle.Render(pad("lex time")), float64(st.LexTime.Microseconds())/1000.0)
	fmt.Fprintf(&sb, "%s %.2f\n", statsLabelStyle.Render(pad("avg token len")), st.AvgTokenLength())

	sb.WriteString(statsTitleStyle.Render("interner") + "\n")
	ist := s.Interner.Stats()
	row(&sb, "unique strings", ist.UniqueStrings)
	row(&sb, "intern calls", ist.InternCount)
	row(&sb, "bytes stored", ist.BytesStored)

	sb.WriteString(statsTitleStyle.Render("diagnostics") + "\n")
	dst := s.Diags.Stats()
	row(&sb, "errors", dst.ErrorCount)
	row(&sb, "warnings", dst.WarningCount)
	row(&sb, "notes", dst.NoteCount)

	return statsBoxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

func row(sb *strings.Builder, label string, value uint64) {
	fmt.Fprintf(sb, "%s %d\n", statsLabelStyle.Render(pad(label)), value)
}

func pad(label string) string {
	return fmt.Sprintf("%-16s", label)
}
