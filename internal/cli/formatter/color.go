package formatter

import (
	"github.com/alexanderramin/teamflow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette: indigo accent on slate, with emerald, amber and sky for the three
// statuses. Adaptive colors keep text readable on light terminals.
var (
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34d399"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"}
	ColorRed    = lipgloss.AdaptiveColor{Light: "#be123c", Dark: "#fb7185"}
	ColorBlue   = lipgloss.AdaptiveColor{Light: "#0369a1", Dark: "#7dd3fc"}
	ColorPurple = lipgloss.AdaptiveColor{Light: "#4338ca", Dark: "#a5b4fc"}
	ColorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
	ColorFg     = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#e2e8f0"}
	ColorHeader = lipgloss.AdaptiveColor{Light: "#4f46e5", Dark: "#818cf8"}
	ColorBgDark = lipgloss.Color("#1e1b4b")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("#eef2ff")).Background(ColorBgDark).Bold(true).Padding(0, 1)
)

// StatusColor picks the style for a status: sky for Not Started, amber for
// In Progress, emerald for Done.
func StatusColor(status domain.ProjectStatus) lipgloss.Style {
	switch status {
	case domain.StatusNotStarted:
		return StyleBlue
	case domain.StatusInProgress:
		return StyleYellow
	case domain.StatusDone:
		return StyleGreen
	}
	return StyleDim
}

func Dim(text string) string { return StyleDim.Render(text) }

func Bold(text string) string { return StyleBold.Render(text) }
