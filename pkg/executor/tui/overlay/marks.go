package overlay

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/entrhq/grapnel/pkg/executor/tui/types"
)

// Entry is one selectable slot in the marks popup.
type Entry struct {
	Index int
	Path  string
}

// entryPattern matches one "index. path" line of the marks listing.
var entryPattern = regexp.MustCompile(`^(\d+)\. (.+)$`)

// ParseEntries extracts the selectable entries from a rendered marks
// listing. Lines that are not "index. path" (headers, placeholders) are
// skipped.
func ParseEntries(markdown string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(markdown, "\n") {
		m := entryPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Index: index, Path: m[2]})
	}
	return entries
}

// MarksOverlay is the dismissible popup showing the current project's
// marks as rendered markdown. Up/down move the highlight, enter jumps
// to the highlighted slot, y copies its path.
type MarksOverlay struct {
	*BaseOverlay
	markdown string
	entries  []Entry
	selected int
}

// NewMarksOverlay renders the markdown listing with glamour and builds
// the popup. theme selects the glamour style; "auto" follows the
// terminal background.
func NewMarksOverlay(markdown, theme string, width, height int) *MarksOverlay {
	const (
		viewportWidth  = 56
		viewportHeight = 14
		overlayWidth   = 60
	)

	o := &MarksOverlay{
		markdown: markdown,
		entries:  ParseEntries(markdown),
	}

	o.BaseOverlay = NewBaseOverlay(BaseOverlayConfig{
		Width:          overlayWidth,
		Height:         height,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		Content:        renderMarkdown(markdown, theme, viewportWidth),
		OnCustomKey:    o.handleKey,
		RenderHeader:   o.renderHeader,
		RenderFooter:   o.renderFooter,
	})
	return o
}

func renderMarkdown(markdown, theme string, width int) string {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if theme == "" || theme == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(theme))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return markdown
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

func (o *MarksOverlay) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		o.moveSelection(-1)
		return true, nil
	case "down", "j":
		o.moveSelection(1)
		return true, nil
	case "enter":
		if entry, ok := o.Selected(); ok {
			return true, func() tea.Msg { return types.JumpToSlotMsg{Index: entry.Index} }
		}
		return true, func() tea.Msg { return types.CloseOverlayMsg{} }
	case "y":
		if entry, ok := o.Selected(); ok {
			return true, copyPath(entry.Path)
		}
		return true, nil
	}
	return false, nil
}

// moveSelection moves the highlight by delta, wrapping around.
func (o *MarksOverlay) moveSelection(delta int) {
	if len(o.entries) == 0 {
		return
	}
	o.selected = (o.selected + delta + len(o.entries)) % len(o.entries)
}

// Selected returns the highlighted entry.
func (o *MarksOverlay) Selected() (Entry, bool) {
	if len(o.entries) == 0 {
		return Entry{}, false
	}
	return o.entries[o.selected], true
}

func copyPath(path string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(path); err != nil {
			return types.ToastMsg{Message: fmt.Sprintf("copy failed: %v", err), IsError: true}
		}
		return types.ToastMsg{Message: fmt.Sprintf("copied %s", path)}
	}
}

// Update handles messages for the marks overlay.
func (o *MarksOverlay) Update(msg tea.Msg) (Overlay, tea.Cmd) {
	_, cmd := o.BaseOverlay.Update(msg)
	return o, cmd
}

func (o *MarksOverlay) renderHeader() string {
	return types.OverlayTitleStyle.Render("Marks")
}

func (o *MarksOverlay) renderFooter() string {
	if entry, ok := o.Selected(); ok {
		hint := fmt.Sprintf("slot %d • enter jump • y copy • esc close", entry.Index)
		return types.OverlayHelpStyle.Render(hint)
	}
	return types.OverlayHelpStyle.Render("esc close")
}

// View renders the marks overlay.
func (o *MarksOverlay) View() string {
	return o.BaseOverlay.View(o.BaseOverlay.viewport.Width)
}
