package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// statusBadge renders a document status in its colour.
func statusBadge(status domain.DocumentStatus) string {
	switch status {
	case domain.StatusCompleted:
		return okStyle.Render(status.String())
	case domain.StatusFailed:
		return errStyle.Render(status.String())
	default:
		return warnStyle.Render(status.String())
	}
}

// truncate shortens s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width || width < 2 {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
