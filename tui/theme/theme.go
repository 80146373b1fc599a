// Package theme provides the shared lipgloss styles for gram's terminal
// output and TUI components.
package theme

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Kanagawa-inspired palette.
const (
	colorGreen      = "#98BB6C"
	colorYellow     = "#FF9E3B"
	colorRed        = "#FF5D62"
	colorBlue       = "#7FB4CA"
	colorViolet     = "#957FB8"
	colorPink       = "#D27E99"
	colorLightText  = "#DCD7BA"
	colorMutedText  = "#727169"
	colorBorder     = "#363646"
	colorSelectedBg = "#223249"
)

// Theme holds the styles used across gram's output.
type Theme struct {
	// Headers and titles
	Header lipgloss.Style
	Title  lipgloss.Style

	// Status indicators
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Text styles
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	// Special styles
	Highlight lipgloss.Style
	Accent    lipgloss.Style

	// Parse tree rendering
	Symbol   lipgloss.Style // non-terminal names
	Terminal lipgloss.Style // terminal names
	Value    lipgloss.Style // token text
	TreeLine lipgloss.Style // connecting lines
}

// DefaultTheme is the theme instance used by all gram output.
var DefaultTheme = NewTheme()

// NewTheme builds the theme. When the terminal reports no color support
// (or NO_COLOR is set), all styles collapse to plain text.
func NewTheme() *Theme {
	if termenv.EnvColorProfile() == termenv.Ascii || os.Getenv("NO_COLOR") != "" {
		return &Theme{}
	}

	return &Theme{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorBlue)),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorLightText)),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue)),
		Bold:      lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorMutedText)),
		Selected:  lipgloss.NewStyle().Background(lipgloss.Color(colorSelectedBg)),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color(colorPink)),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorViolet)),
		Symbol:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue)).Bold(true),
		Terminal:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorViolet)),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		TreeLine:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorBorder)),
	}
}

// RenderStatus renders text with the style matching a status keyword.
func RenderStatus(status, text string) string {
	switch status {
	case "ok", "success":
		return DefaultTheme.Success.Render(text)
	case "error", "failed":
		return DefaultTheme.Error.Render(text)
	case "warning", "stale":
		return DefaultTheme.Warning.Render(text)
	default:
		return DefaultTheme.Info.Render(text)
	}
}
