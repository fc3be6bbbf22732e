package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

	// map layers
	inputStyle  = lipgloss.NewStyle().Foreground(baseFg)
	fillStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563"))
	bufferStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	curveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	hoverStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
)
