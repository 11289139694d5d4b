package hunkgrep

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	rejectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func FormatSummary(s Summary) string {
	var b strings.Builder
	if s.Message != "" {
		b.WriteString(headerStyle.Render(s.Message) + "\n\n")
	}

	row := func(title string, style lipgloss.Style, n int) {
		b.WriteString(fmt.Sprintf("  %s %d\n", style.Render(title), n))
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (mode %s)", s.Source, s.Mode)) + "\n")
	row("Lines:   ", mutedStyle, s.Scan.Lines)
	row("Hunks:   ", mutedStyle, s.Scan.Batches)
	row("Selected:", selectedStyle, s.Filter.Selected)
	row("Rejected:", rejectedStyle, s.Filter.Rejected)
	if s.Scan.Warnings > 0 {
		row("Warnings:", warningStyle, s.Scan.Warnings)
	}

	return b.String()
}
