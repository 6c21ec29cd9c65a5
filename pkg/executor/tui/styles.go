package tui

import "github.com/charmbracelet/lipgloss"

// Color palette. Single source of truth for all TUI colors.
var (
	harborTeal  = lipgloss.Color("#8FBCBB") // primary accent
	sandGold    = lipgloss.Color("#EBCB8B") // highlights, slot numbers
	seafoam     = lipgloss.Color("#A3BE8C") // success states
	mutedGray   = lipgloss.Color("#6B7280") // secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // primary text
	errorRed    = lipgloss.Color("#BF616A") // error states
)

// Common styles for the main view.
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(harborTeal).
			Bold(true)

	tipsStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Padding(0, 1)

	docStyle = lipgloss.NewStyle().
			Foreground(brightWhite)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(harborTeal).
			Padding(0, 1)

	toastStyle = lipgloss.NewStyle().
			Foreground(seafoam).
			Padding(0, 1)

	toastErrorStyle = lipgloss.NewStyle().
			Foreground(errorRed).
			Padding(0, 1)

	slotStyle = lipgloss.NewStyle().
			Foreground(sandGold).
			Bold(true)
)
