package tui

import "github.com/charmbracelet/lipgloss"

// Color definitions for the TUI
var (
	titleColor      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true) // Blue
	successColor    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))            // Green
	errorColor      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))             // Red
	infoColor       = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))            // Blue
	cursorColor     = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true) // Bright magenta
	suggestionColor = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))            // Same blue as the CLI
	selectedColor   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true) // White
	dimmedColor     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))             // Dark grey
)

// formatStatus returns a colored status message based on the status kind
func formatStatus(message string, kind statusKind) string {
	switch kind {
	case statusSuccess:
		return successColor.Render(message)
	case statusError:
		return errorColor.Render(message)
	case statusInfo:
		return infoColor.Render(message)
	default:
		return message
	}
}

// formatCursor returns a colored cursor marker
func formatCursor(marker string) string {
	return cursorColor.Render(marker)
}
