package overlay

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/grapnel/pkg/executor/tui/types"
)

// HelpOverlay is the dismissible popup listing keybindings and prompt
// commands.
type HelpOverlay struct {
	*BaseOverlay
}

// NewHelpOverlay builds the help popup around pre-rendered content.
func NewHelpOverlay(content string, width, height int) *HelpOverlay {
	const (
		viewportWidth  = 56
		viewportHeight = 16
		overlayWidth   = 60
	)

	o := &HelpOverlay{}
	o.BaseOverlay = NewBaseOverlay(BaseOverlayConfig{
		Width:          overlayWidth,
		Height:         height,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		Content:        content,
		RenderHeader:   o.renderHeader,
		RenderFooter:   o.renderFooter,
	})
	return o
}

// Update handles messages for the help overlay.
func (o *HelpOverlay) Update(msg tea.Msg) (Overlay, tea.Cmd) {
	_, cmd := o.BaseOverlay.Update(msg)
	return o, cmd
}

func (o *HelpOverlay) renderHeader() string {
	return types.OverlayTitleStyle.Render("Help")
}

func (o *HelpOverlay) renderFooter() string {
	return types.OverlayHelpStyle.Render("esc close")
}

// View renders the help overlay.
func (o *HelpOverlay) View() string {
	return o.BaseOverlay.View(o.BaseOverlay.viewport.Width)
}
