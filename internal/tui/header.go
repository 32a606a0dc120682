package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/casesearch/internal/ui"
)

func RenderHeader(location, host string, width int) string {
	left := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(" casesearch | " + location)

	right := ""
	if host != "" {
		right = lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(host + " ")
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#1F2937")).
		Width(width).
		Render(left + padding + right)
}
