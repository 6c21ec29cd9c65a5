package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/grapnel/pkg/commands"
	"github.com/entrhq/grapnel/pkg/editor"
	"github.com/entrhq/grapnel/pkg/executor/tui/overlay"
	"github.com/entrhq/grapnel/pkg/executor/tui/types"
	"github.com/entrhq/grapnel/pkg/marks"
)

// The model is the editor host and the UI compositor the command layer
// drives.
var (
	_ editor.Host = (*model)(nil)
	_ editor.UI   = (*model)(nil)
)

// CurrentDocument returns the active document's path and selection.
// ok is false for the pathless scratch document.
func (m *model) CurrentDocument() (string, editor.Selection, bool) {
	return m.doc.path, m.doc.sel, m.doc.path != ""
}

// OpenFile replaces the current view with the document at path.
func (m *model) OpenFile(path string) error {
	doc, err := openDocument(path)
	if err != nil {
		return err
	}
	m.doc = doc
	m.viewport.SetContent(m.doc.highlighted())
	m.viewport.GotoTop()
	m.debugf("opened %s", path)
	return nil
}

// SetSelection replaces the active document's selection.
func (m *model) SetSelection(sel editor.Selection) {
	m.doc.setSelection(sel)
}

// CenterPrimary recenters the viewport on the primary range's head.
func (m *model) CenterPrimary() {
	line := m.doc.lineForOffset(m.doc.cursor())
	offset := line - m.viewport.Height/2
	if offset < 0 {
		offset = 0
	}
	m.viewport.SetYOffset(offset)
}

// WorkingDir returns the directory scoping the current project.
func (m *model) WorkingDir() string {
	return m.workspaceDir
}

// Status reports a single-line informational message.
func (m *model) Status(msg string) {
	m.toastCmds = append(m.toastCmds, m.showToast(msg, false))
}

// Error reports a single-line error message.
func (m *model) Error(msg string) {
	m.toastCmds = append(m.toastCmds, m.showToast(msg, true))
}

// ScheduleJob queues a deferred unit of work. Jobs run after the
// current update cycle, when runJobsMsg arrives.
func (m *model) ScheduleJob(job editor.Job) {
	m.pendingJobs = append(m.pendingJobs, job)
}

// ShowPopup composites a dismissible markdown popup, replacing any
// popup already shown under the same id.
func (m *model) ShowPopup(id, markdown string) {
	m.debugf("popup %s", id)
	m.overlayMode = types.OverlayModeMarks
	m.overlay = overlay.NewMarksOverlay(markdown, m.cfg.Theme, m.width, m.height)
}

// showHelp composites the help popup over the base view.
func (m *model) showHelp() {
	m.overlayMode = types.OverlayModeHelp
	m.overlay = overlay.NewHelpOverlay(helpContent(), m.width, m.height)
}

// helpContent lists the key bindings and the registered prompt
// commands, sorted by name.
func helpContent() string {
	var b strings.Builder
	b.WriteString("Keys\n\n")
	b.WriteString("  :             open the command prompt\n")
	b.WriteString("  arrows        move the cursor\n")
	b.WriteString("  shift+arrows  extend the selection\n")
	b.WriteString("  ?             this help\n")
	b.WriteString("  q             quit\n")
	b.WriteString("\nCommands\n\n")

	cmds := commands.All()
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "  %-8s %s\n", cmd.Name, cmd.Description)
	}
	return b.String()
}

// dispatch runs one line of prompt input through the command layer and
// funnels errors into a toast.
func (m *model) dispatch(input string, event commands.PromptEvent) []tea.Cmd {
	var cmds []tea.Cmd

	err := commands.Dispatch(m.cmdContext(), input, event)
	cmds = append(cmds, m.collectToastCmds()...)
	if err != nil {
		cmds = append(cmds, m.showToast(err.Error(), true))
	}

	// The command layer may have queued deferred jobs; hand control
	// back to the runtime and drain them on the next message.
	if len(m.pendingJobs) > 0 {
		cmds = append(cmds, func() tea.Msg { return runJobsMsg{} })
	}
	return cmds
}

// runJobs drains the deferred-job queue. Each job receives the host and
// the UI compositor and runs to completion.
func (m *model) runJobs() []tea.Cmd {
	jobs := m.pendingJobs
	m.pendingJobs = nil
	for _, job := range jobs {
		job(m, m)
	}
	return m.collectToastCmds()
}

// jumpToSlot dispatches a get for the given slot, used by the marks
// popup's enter binding.
func (m *model) jumpToSlot(index int) []tea.Cmd {
	return m.dispatch(fmt.Sprintf("get %d", index), commands.EventValidate)
}

// slotCount returns the number of marks in the current project, for the
// status bar. Errors degrade to zero rather than disturbing the view.
func (m *model) slotCount() int {
	store, err := marks.Open(m.storePath)
	if err != nil {
		return 0
	}
	return len(store.Project(m.workspaceDir).Files)
}
