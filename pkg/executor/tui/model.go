// Package tui implements the grapnel host: a minimal file viewer with
// a command prompt, status toasts, and the marks popup. It provides the
// editor surface the command layer drives.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gobwas/glob"

	"github.com/entrhq/grapnel/pkg/commands"
	"github.com/entrhq/grapnel/pkg/config"
	"github.com/entrhq/grapnel/pkg/editor"
	"github.com/entrhq/grapnel/pkg/executor/tui/overlay"
	"github.com/entrhq/grapnel/pkg/executor/tui/types"
	"github.com/entrhq/grapnel/pkg/logging"
)

// model is the state of the grapnel TUI.
type model struct {
	// Bubble Tea components
	viewport viewport.Model
	input    textinput.Model

	// Active document
	doc *document

	// Store wiring
	workspaceDir string
	storePath    string
	cfg          *config.Config
	excludes     []glob.Glob
	log          *logging.Logger

	// UI state
	overlayMode types.OverlayMode
	overlay     overlay.Overlay
	toast       *toastNotification
	cmdMode     bool

	// Deferred jobs queued by the command layer; drained by runJobsMsg.
	pendingJobs []editor.Job

	// Toast timer commands produced by Status/Error during a dispatch,
	// collected once the command returns.
	toastCmds []tea.Cmd

	// Window dimensions
	width  int
	height int
	ready  bool
}

// toastNotification is a transient single-line message.
type toastNotification struct {
	message   string
	isError   bool
	showUntil time.Time
}

// runJobsMsg triggers the deferred-job drain.
type runJobsMsg struct{}

// toastExpiredMsg clears an elapsed toast.
type toastExpiredMsg struct{}

// Options configures the TUI host.
type Options struct {
	WorkspaceDir string
	StorePath    string
	Config       *config.Config
	InitialFile  string // optional file to open at startup
	Logger       *logging.Logger
}

// NewModel builds the initial model. The initial file, when given, is
// opened immediately; otherwise the scratch welcome document shows.
func NewModel(opts Options) (tea.Model, error) {
	excludes, err := opts.Config.CompileExcludes()
	if err != nil {
		return nil, err
	}

	doc := newScratchDocument()
	if opts.InitialFile != "" {
		doc, err = openDocument(opts.InitialFile)
		if err != nil {
			return nil, err
		}
	}

	input := textinput.New()
	input.Prompt = ":"
	input.CharLimit = 128

	return &model{
		input:        input,
		doc:          doc,
		workspaceDir: opts.WorkspaceDir,
		storePath:    opts.StorePath,
		cfg:          opts.Config,
		excludes:     excludes,
		log:          opts.Logger,
	}, nil
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

// cmdContext assembles the command-layer context for one dispatch.
func (m *model) cmdContext() *commands.Context {
	return &commands.Context{
		Host:      m,
		StorePath: m.storePath,
		Exclude:   m.excludes,
		Log:       m.log,
	}
}

// showToast replaces the active toast and schedules its expiry.
func (m *model) showToast(message string, isError bool) tea.Cmd {
	const toastDuration = 3 * time.Second
	m.toast = &toastNotification{
		message:   message,
		isError:   isError,
		showUntil: time.Now().Add(toastDuration),
	}
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}

// collectToastCmds drains the toast timers accumulated by Status and
// Error calls made during a command dispatch.
func (m *model) collectToastCmds() []tea.Cmd {
	cmds := m.toastCmds
	m.toastCmds = nil
	return cmds
}

func (m *model) debugf(format string, v ...interface{}) {
	if m.log != nil {
		m.log.Debugf(format, v...)
	}
}
