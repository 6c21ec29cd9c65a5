package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/grapnel/pkg/commands"
	"github.com/entrhq/grapnel/pkg/executor/tui/types"
)

// Update handles all state updates for the TUI model.
//
// Pointer receiver: overlays and host callbacks mutate the model
// directly, and those changes must survive the update cycle.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case runJobsMsg:
		return m, tea.Batch(m.runJobs()...)

	case toastExpiredMsg:
		if m.toast != nil && !time.Now().Before(m.toast.showUntil) {
			m.toast = nil
		}
		return m, nil

	case types.ToastMsg:
		return m, m.showToast(msg.Message, msg.IsError)

	case types.CloseOverlayMsg:
		m.overlayMode = types.OverlayModeNone
		m.overlay = nil
		return m, nil

	case types.JumpToSlotMsg:
		m.overlayMode = types.OverlayModeNone
		m.overlay = nil
		return m, tea.Batch(m.jumpToSlot(msg.Index)...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := len(headerLines) + 4 // tips, status, cursor line, input
	vpHeight := msg.Height - headerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = newViewport(msg.Width, vpHeight)
		m.viewport.SetContent(m.doc.highlighted())
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
	}

	if m.overlay != nil {
		updated, cmd := m.overlay.Update(msg)
		m.overlay = updated
		return m, cmd
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An active overlay owns the keyboard.
	if m.overlayMode != types.OverlayModeNone && m.overlay != nil {
		updated, cmd := m.overlay.Update(msg)
		m.overlay = updated
		return m, cmd
	}

	if m.cmdMode {
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case ":":
		m.cmdMode = true
		m.input.Reset()
		return m, m.input.Focus()
	case "?":
		m.showHelp()
		return m, nil
	case "up":
		m.doc.moveCursor(-1, 0, false)
	case "down":
		m.doc.moveCursor(1, 0, false)
	case "left":
		m.doc.moveCursor(0, -1, false)
	case "right":
		m.doc.moveCursor(0, 1, false)
	case "shift+up":
		m.doc.moveCursor(-1, 0, true)
	case "shift+down":
		m.doc.moveCursor(1, 0, true)
	case "shift+left":
		m.doc.moveCursor(0, -1, true)
	case "shift+right":
		m.doc.moveCursor(0, 1, true)
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.followCursor()
	return m, nil
}

// handlePromptKey drives the command prompt. Enter is the validate
// event; every other keystroke is dispatched as a preview, which the
// command layer ignores by contract.
func (m *model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.cmdMode = false
		m.input.Blur()
		m.input.Reset()
		return m, nil

	case tea.KeyEnter:
		value := m.input.Value()
		m.cmdMode = false
		m.input.Blur()
		m.input.Reset()
		return m, tea.Batch(m.dispatch(value, commands.EventValidate)...)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	cmds := append([]tea.Cmd{cmd}, m.dispatch(m.input.Value(), commands.EventPreview)...)
	return m, tea.Batch(cmds...)
}

// followCursor keeps the cursor's line inside the viewport.
func (m *model) followCursor() {
	if !m.ready {
		return
	}
	line := m.doc.lineForOffset(m.doc.cursor())
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	}
	if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}
