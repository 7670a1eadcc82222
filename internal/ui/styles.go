package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	ColorGreen    = "154" // Passing rows
	ColorWhite    = "255" // Headers
	ColorGray     = "245" // Secondary text
	ColorDarkGray = "238" // Separators
	ColorRed      = "196" // Failing rows
	ColorYellow   = "220" // Missing paths
)

// Styles holds the styles used to render a readiness report.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Missing lipgloss.Style
	Dim     lipgloss.Style
	Rule    lipgloss.Style
}

// DefaultStyles returns colored styles for terminals.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorGray)),
		Pass:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorGreen)),
		Fail:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorRed)),
		Missing: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorYellow)),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Rule:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
	}
}

// NoColorStyles returns unstyled components for plain mode.
func NoColorStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle(),
		Header:  lipgloss.NewStyle(),
		Pass:    lipgloss.NewStyle(),
		Fail:    lipgloss.NewStyle(),
		Missing: lipgloss.NewStyle(),
		Dim:     lipgloss.NewStyle(),
		Rule:    lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
