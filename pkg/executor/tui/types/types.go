// Package types holds the message types and shared styles used across
// the TUI and its overlays.
package types

import "github.com/charmbracelet/lipgloss"

// OverlayMode identifies which overlay, if any, is active.
type OverlayMode int

const (
	OverlayModeNone OverlayMode = iota
	OverlayModeMarks
	OverlayModeHelp
)

// CloseOverlayMsg asks the model to dismiss the active overlay.
type CloseOverlayMsg struct{}

// JumpToSlotMsg asks the model to jump to the mark at Index.
type JumpToSlotMsg struct {
	Index int
}

// ToastMsg shows a transient single-line notification.
type ToastMsg struct {
	Message string
	IsError bool
}

// Shared overlay styles.
var (
	// OverlayTitleStyle is used for overlay titles.
	OverlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#8FBCBB"))

	// OverlayHelpStyle is used for help text and hints.
	OverlayHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6B7280")).
				Italic(true)
)

// CreateOverlayContainerStyle returns the bordered container style
// shared by all overlays.
func CreateOverlayContainerStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#8FBCBB")).
		Padding(1, 2).
		Width(width)
}
