package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/entrhq/grapnel/pkg/editor"
	"github.com/entrhq/grapnel/pkg/marks"
)

// handleSet marks the current document and selection at the given slot
// and persists the store.
func handleSet(c *Context, args []string) error {
	index, err := parseIndex(args)
	if err != nil {
		return err
	}

	path, sel, ok := c.Host.CurrentDocument()
	if !ok {
		return marks.ErrNoBackingPath
	}

	cwd := c.Host.WorkingDir()
	rel := marks.RelPath(cwd, path)
	if c.excluded(rel) {
		return fmt.Errorf("%s is excluded from marking", rel)
	}

	store, err := marks.Open(c.StorePath)
	if err != nil {
		return err
	}
	store.SetFile(cwd, index, marks.NewRecord(rel, sel))
	if err := store.Save(); err != nil {
		return err
	}

	c.Host.Status(fmt.Sprintf("marked %s at slot %d", rel, index))
	return nil
}

// handleGet jumps to the mark at the given slot: open the file, restore
// its selection, and recenter on the primary range. An empty slot, or a
// slot whose path no longer exists, is silently ignored.
func handleGet(c *Context, args []string) error {
	index, err := parseIndex(args)
	if err != nil {
		return err
	}

	cwd := c.Host.WorkingDir()
	store, err := marks.Open(c.StorePath)
	if err != nil {
		return err
	}

	rec := store.File(cwd, index)
	if rec == nil {
		c.debugf("get %d: no live mark", index)
		return nil
	}

	if err := c.Host.OpenFile(marks.Resolve(cwd, rec.Path)); err != nil {
		return err
	}
	c.Host.SetSelection(rec.AsSelection())
	c.Host.CenterPrimary()
	return nil
}

// handleRemove evicts the mark at the given slot. An empty slot is
// reported to the user but is not an error and triggers no save.
func handleRemove(c *Context, args []string) error {
	index, err := parseIndex(args)
	if err != nil {
		return err
	}

	cwd := c.Host.WorkingDir()
	store, err := marks.Open(c.StorePath)
	if err != nil {
		return err
	}

	rec := store.RemoveFile(cwd, index)
	if rec == nil {
		c.Host.Error(fmt.Sprintf("no mark at slot %d", index))
		return nil
	}
	if err := store.Save(); err != nil {
		return err
	}

	c.Host.Status(fmt.Sprintf("removed %s from slot %d", rec.Path, index))
	return nil
}

// handleUpdate refreshes the stored selection for the current document.
// Only an already-marked file is updated; a pathless document or an
// unmarked path is a silent no-op.
func handleUpdate(c *Context, _ []string) error {
	path, sel, ok := c.Host.CurrentDocument()
	if !ok {
		return nil
	}

	cwd := c.Host.WorkingDir()
	rel := marks.RelPath(cwd, path)

	store, err := marks.Open(c.StorePath)
	if err != nil {
		return err
	}

	for _, rec := range store.Project(cwd).Files {
		if rec.Path == rel {
			rec.UpdateSelection(sel)
			return store.Save()
		}
	}
	c.debugf("update: %s is not marked", rel)
	return nil
}

// handleList renders the current project's marks as markdown and
// schedules a deferred job that pushes the listing as a popup.
func handleList(c *Context, _ []string) error {
	cwd := c.Host.WorkingDir()
	store, err := marks.Open(c.StorePath)
	if err != nil {
		return err
	}

	contents := RenderListing(store.Project(cwd))

	c.Host.ScheduleJob(func(_ editor.Host, ui editor.UI) {
		ui.ShowPopup("marks", contents)
	})
	return nil
}

// RenderListing formats a project's slot table as a markdown listing,
// one "index. path" line per mark, sorted by index ascending. Stale
// entries are listed as-is; only get filters them.
func RenderListing(project *marks.Project) string {
	indices := make([]int, 0, len(project.Files))
	for index := range project.Files {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	var md strings.Builder
	md.WriteString("# Marks\n\n")
	if len(indices) == 0 {
		md.WriteString("_no marks in this project_\n")
		return md.String()
	}
	for _, index := range indices {
		fmt.Fprintf(&md, "%d. %s\n", index, project.Files[index].Path)
	}
	return md.String()
}
