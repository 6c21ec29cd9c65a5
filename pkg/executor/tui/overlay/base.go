// Package overlay implements the modal surfaces composited over the
// grapnel view.
package overlay

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/grapnel/pkg/executor/tui/types"
)

// Overlay is a modal surface composited over the base view.
type Overlay interface {
	Update(msg tea.Msg) (Overlay, tea.Cmd)
	View() string
}

// BaseOverlay provides the behavior shared by all overlays: viewport
// management, dimensions, close keys, and header/footer rendering.
type BaseOverlay struct {
	viewport viewport.Model
	width    int
	height   int

	onCustomKey  func(msg tea.KeyMsg) (bool, tea.Cmd) // returns (handled, cmd)
	renderHeader func() string
	renderFooter func() string
}

// BaseOverlayConfig configures a base overlay.
type BaseOverlayConfig struct {
	Width          int
	Height         int
	ViewportWidth  int
	ViewportHeight int
	Content        string
	OnCustomKey    func(msg tea.KeyMsg) (bool, tea.Cmd)
	RenderHeader   func() string
	RenderFooter   func() string
}

// NewBaseOverlay creates a base overlay with the given configuration.
func NewBaseOverlay(config BaseOverlayConfig) *BaseOverlay {
	vp := viewport.New(config.ViewportWidth, config.ViewportHeight)
	vp.Style = lipgloss.NewStyle()
	if config.Content != "" {
		vp.SetContent(config.Content)
	}

	return &BaseOverlay{
		viewport:     vp,
		width:        config.Width,
		height:       config.Height,
		onCustomKey:  config.OnCustomKey,
		renderHeader: config.RenderHeader,
		renderFooter: config.RenderFooter,
	}
}

// Update handles close keys, custom keys, and viewport scrolling.
// handled reports whether the message was consumed.
func (b *BaseOverlay) Update(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isCloseKey(msg) {
			return true, func() tea.Msg { return types.CloseOverlayMsg{} }
		}
		if b.onCustomKey != nil {
			if handled, cmd := b.onCustomKey(msg); handled {
				return true, cmd
			}
		}
		if isScrollKey(msg) {
			b.viewport, cmd = b.viewport.Update(msg)
			return true, cmd
		}
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.viewport, cmd = b.viewport.Update(msg)
		return true, cmd
	}
	return false, nil
}

func isCloseKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "esc", "q", "ctrl+c":
		return true
	}
	return false
}

func isScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		return true
	}
	return false
}

// SetContent updates the viewport content.
func (b *BaseOverlay) SetContent(content string) {
	b.viewport.SetContent(content)
}

// View renders the overlay with header, viewport content, and footer.
func (b *BaseOverlay) View(contentWidth int) string {
	var sections []string
	if b.renderHeader != nil {
		sections = append(sections, b.renderHeader())
	}
	sections = append(sections, b.viewport.View())
	if b.renderFooter != nil {
		sections = append(sections, b.renderFooter())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return types.CreateOverlayContainerStyle(contentWidth).Render(content)
}
