// Package editor defines the value types and narrow host interfaces
// through which the command layer talks to the editing surface. The
// bookmark core depends only on these; the TUI provides the concrete
// implementation.
package editor

// Host is the surface of the editor consumed by command handlers.
type Host interface {
	// CurrentDocument returns the backing path of the active document
	// and its current selection. ok is false when the document has no
	// backing path (new, unsaved).
	CurrentDocument() (path string, sel Selection, ok bool)

	// OpenFile replaces the current view with the document at path.
	OpenFile(path string) error

	// SetSelection replaces the active document's selection.
	SetSelection(sel Selection)

	// CenterPrimary recenters the view on the primary range of the
	// current selection.
	CenterPrimary()

	// WorkingDir returns the working directory scoping the current
	// project.
	WorkingDir() string

	// Status reports a single-line informational message to the user.
	Status(msg string)

	// Error reports a single-line error message to the user.
	Error(msg string)

	// ScheduleJob queues a deferred unit of work. Jobs run after the
	// current command returns, receive mutable host state plus the UI
	// compositor, and run to completion once scheduled.
	ScheduleJob(job Job)
}

// UI composites transient surfaces over the host's view.
type UI interface {
	// ShowPopup pushes a dismissible popup rendering markdown text.
	// Pushing a popup with an id that is already shown replaces it.
	ShowPopup(id, markdown string)
}

// Job is a deferred unit of work scheduled through the host.
type Job func(h Host, ui UI)
