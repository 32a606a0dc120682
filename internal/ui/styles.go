package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorFailure   = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorInfo      = lipgloss.Color("#3B82F6")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#374151")
	ColorHighlight = lipgloss.Color("#1F2937")

	StylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB"))

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleMatch = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FCD34D")).
			Background(lipgloss.Color("#78350F"))
)

// Chip kinds, mirroring how a result's metadata is grouped.
const (
	ChipLabel = iota
	ChipCourt
	ChipJudges
	ChipParties
)

func chipStyle(kind int) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)
	switch kind {
	case ChipLabel:
		return base.Foreground(lipgloss.Color("#F9FAFB")).Background(lipgloss.Color("#065F46"))
	case ChipCourt:
		return base.Foreground(lipgloss.Color("#F9FAFB")).Background(lipgloss.Color("#1E40AF"))
	case ChipJudges:
		return base.Foreground(lipgloss.Color("#F9FAFB")).Background(lipgloss.Color("#6D28D9"))
	default:
		return base.Foreground(lipgloss.Color("#F9FAFB")).Background(ColorBorder)
	}
}

// Chip renders a small tag. Empty text renders nothing.
func Chip(kind int, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return chipStyle(kind).Render(text)
}

// Chips joins the non-empty chips with a space.
func Chips(chips ...string) string {
	var out []string
	for _, c := range chips {
		if c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}
