package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

var headerLines = []string{
	` ██████╗ ██████╗  █████╗ ██████╗ ███╗   ██╗███████╗██╗`,
	`██╔════╝ ██╔══██╗██╔══██╗██╔══██╗████╗  ██║██╔════╝██║`,
	`██║  ███╗██████╔╝███████║██████╔╝██╔██╗ ██║█████╗  ██║`,
	`██║   ██║██╔══██╗██╔══██║██╔═══╝ ██║╚██╗██║██╔══╝  ██║`,
	`╚██████╔╝██║  ██║██║  ██║██║     ██║ ╚████║███████╗███████╗`,
	` ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝  ╚═══╝╚══════╝╚══════╝`,
}

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = docStyle
	return vp
}

// View renders the entire TUI interface.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	sections := []string{
		m.buildHeader(),
		m.buildTips(),
		m.buildTopStatus(),
		m.viewport.View(),
		m.buildCursorLine(),
		m.buildInputLine(),
	}
	baseView := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.overlay != nil {
		return renderOverlay(m.overlay.View(), m.width, m.height)
	}
	return baseView
}

func (m *model) buildHeader() string {
	return headerStyle.Render(strings.Join(headerLines, "\n"))
}

func (m *model) buildTips() string {
	if m.cmdMode {
		return tipsStyle.Render("  Enter to run • Esc to cancel")
	}
	return tipsStyle.Render("  Tips: : for commands • arrows move • shift+arrows select • ? help • q to quit")
}

// buildTopStatus renders the project root and slot count.
func (m *model) buildTopStatus() string {
	slots := m.slotCount()
	return statusBarStyle.Width(m.width).Render(fmt.Sprintf(
		"Project: %s • %s",
		m.workspaceDir,
		slotStyle.Render(fmt.Sprintf("%d mark(s)", slots)),
	))
}

// buildCursorLine shows the active document and cursor position, or the
// active toast when one is showing.
func (m *model) buildCursorLine() string {
	if m.toast != nil {
		style := toastStyle
		if m.toast.isError {
			style = toastErrorStyle
		}
		return style.Width(m.width).Render(m.toast.message)
	}

	name := m.doc.path
	if name == "" {
		name = "[scratch]"
	}
	cursor := m.doc.cursor()
	line := m.doc.lineForOffset(cursor)
	col := cursor - m.doc.lineStarts[line]
	return statusBarStyle.Width(m.width).Render(fmt.Sprintf(
		"%s • %d:%d • %d range(s)",
		name, line+1, col+1, len(m.doc.sel.Ranges),
	))
}

func (m *model) buildInputLine() string {
	if !m.cmdMode {
		return statusBarStyle.Width(m.width).Render("")
	}
	return inputBoxStyle.Width(m.width - 4).Render(m.input.View())
}

// renderOverlay centers the overlay on a clean background, giving it a
// modal appearance.
func renderOverlay(overlayView string, width, height int) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlayView,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
	)
}
