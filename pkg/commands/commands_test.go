package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/grapnel/pkg/editor"
	"github.com/entrhq/grapnel/pkg/marks"
)

// fakeHost records every interaction the command layer has with the
// editor surface.
type fakeHost struct {
	path    string
	hasPath bool
	sel     editor.Selection
	cwd     string

	opened   []string
	setSels  []editor.Selection
	centered int
	statuses []string
	errors   []string
	jobs     []editor.Job
}

func (h *fakeHost) CurrentDocument() (string, editor.Selection, bool) {
	return h.path, h.sel, h.hasPath
}

func (h *fakeHost) OpenFile(path string) error {
	h.opened = append(h.opened, path)
	return nil
}

func (h *fakeHost) SetSelection(sel editor.Selection) { h.setSels = append(h.setSels, sel) }
func (h *fakeHost) CenterPrimary()                    { h.centered++ }
func (h *fakeHost) WorkingDir() string                { return h.cwd }
func (h *fakeHost) Status(msg string)                 { h.statuses = append(h.statuses, msg) }
func (h *fakeHost) Error(msg string)                  { h.errors = append(h.errors, msg) }
func (h *fakeHost) ScheduleJob(job editor.Job)        { h.jobs = append(h.jobs, job) }

// fakeUI collects popups pushed by deferred jobs.
type fakeUI struct {
	popups map[string]string
}

func (u *fakeUI) ShowPopup(id, markdown string) {
	if u.popups == nil {
		u.popups = make(map[string]string)
	}
	u.popups[id] = markdown
}

// runJobs drains the host's deferred job queue against a fake UI.
func (h *fakeHost) runJobs(ui *fakeUI) {
	jobs := h.jobs
	h.jobs = nil
	for _, job := range jobs {
		job(h, ui)
	}
}

// newTestContext builds a context over temp directories with one
// document a.txt open at selection (3,7).
func newTestContext(t *testing.T) (*Context, *fakeHost) {
	t.Helper()

	cwd := t.TempDir()
	target := filepath.Join(cwd, "a.txt")
	require.NoError(t, os.WriteFile(target, []byte("hello marks"), 0600))

	host := &fakeHost{
		path:    target,
		hasPath: true,
		sel:     editor.Selection{Ranges: []editor.Range{{Anchor: 3, Head: 7}}, Primary: 0},
		cwd:     cwd,
	}
	ctx := &Context{
		Host:      host,
		StorePath: filepath.Join(t.TempDir(), "marks.json"),
	}
	return ctx, host
}

func TestDispatchGating(t *testing.T) {
	ctx, host := newTestContext(t)

	// Preview events must not touch the store.
	require.NoError(t, Dispatch(ctx, "set 1", EventPreview))
	_, err := os.Stat(ctx.StorePath)
	assert.True(t, os.IsNotExist(err), "preview event created the backing file")
	assert.Empty(t, host.statuses)

	// Empty input is ignored.
	require.NoError(t, Dispatch(ctx, "   ", EventValidate))

	// Unknown verbs are user errors.
	assert.Error(t, Dispatch(ctx, "bogus", EventValidate))
}

func TestIndexArgumentErrors(t *testing.T) {
	ctx, _ := newTestContext(t)

	for _, verb := range []string{"set", "get", "remove"} {
		t.Run(verb, func(t *testing.T) {
			err := Dispatch(ctx, verb, EventValidate)
			assert.ErrorIs(t, err, marks.ErrMissingIndex)

			err = Dispatch(ctx, verb+" one", EventValidate)
			assert.ErrorIs(t, err, marks.ErrInvalidIndex)
		})
	}
}

func TestSet(t *testing.T) {
	t.Run("persists a normalized record", func(t *testing.T) {
		ctx, host := newTestContext(t)

		require.NoError(t, Dispatch(ctx, "set 1", EventValidate))

		data, err := os.ReadFile(ctx.StorePath)
		require.NoError(t, err)

		var decoded struct {
			Projects map[string]struct {
				Files map[string]struct {
					Path  string       `json:"path"`
					Spans []marks.Span `json:"spans"`
				} `json:"files"`
			} `json:"projects"`
		}
		require.NoError(t, json.Unmarshal(data, &decoded))

		project, exists := decoded.Projects[host.cwd]
		require.True(t, exists, "project keyed by working directory")
		rec, exists := project.Files["1"]
		require.True(t, exists, "index serialized as decimal string")
		assert.Equal(t, "a.txt", rec.Path, "path stored relative to the project root")
		assert.Equal(t, []marks.Span{{Start: 3, End: 7}}, rec.Spans)

		require.Len(t, host.statuses, 1)
		assert.Contains(t, host.statuses[0], "a.txt")
		assert.Contains(t, host.statuses[0], "1")
	})

	t.Run("fails on a pathless document", func(t *testing.T) {
		ctx, host := newTestContext(t)
		host.hasPath = false

		err := Dispatch(ctx, "set 1", EventValidate)
		assert.ErrorIs(t, err, marks.ErrNoBackingPath)
	})

	t.Run("refuses excluded paths", func(t *testing.T) {
		ctx, _ := newTestContext(t)
		ctx.Exclude = []glob.Glob{glob.MustCompile("*.txt", '/')}

		err := Dispatch(ctx, "set 1", EventValidate)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "excluded")

		_, statErr := os.Stat(ctx.StorePath)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("overwrites the slot", func(t *testing.T) {
		ctx, host := newTestContext(t)

		require.NoError(t, Dispatch(ctx, "set 1", EventValidate))

		other := filepath.Join(host.cwd, "b.txt")
		require.NoError(t, os.WriteFile(other, []byte("second"), 0600))
		host.path = other
		host.sel = editor.PointSelection(2)

		require.NoError(t, Dispatch(ctx, "set 1", EventValidate))

		store, err := marks.Open(ctx.StorePath)
		require.NoError(t, err)
		files := store.Project(host.cwd).Files
		require.Len(t, files, 1)
		assert.Equal(t, "b.txt", files[1].Path)
	})
}

func TestGet(t *testing.T) {
	t.Run("opens the file and restores the selection", func(t *testing.T) {
		ctx, host := newTestContext(t)
		require.NoError(t, Dispatch(ctx, "set 1", EventValidate))

		require.NoError(t, Dispatch(ctx, "get 1", EventValidate))

		require.Len(t, host.opened, 1)
		assert.Equal(t, filepath.Join(host.cwd, "a.txt"), host.opened[0])
		require.Len(t, host.setSels, 1)
		assert.True(t, host.setSels[0].Equal(editor.Selection{
			Ranges:  []editor.Range{{Anchor: 3, Head: 7}},
			Primary: 0,
		}))
		assert.Equal(t, 1, host.centered)
	})

	t.Run("empty slot is a silent no-op", func(t *testing.T) {
		ctx, host := newTestContext(t)

		require.NoError(t, Dispatch(ctx, "get 9", EventValidate))
		assert.Empty(t, host.opened)
		assert.Empty(t, host.errors)
	})

	t.Run("stale mark is filtered", func(t *testing.T) {
		ctx, host := newTestContext(t)
		require.NoError(t, Dispatch(ctx, "set 1", EventValidate))
		require.NoError(t, os.Remove(host.path))

		require.NoError(t, Dispatch(ctx, "get 1", EventValidate))
		assert.Empty(t, host.opened)

		// The persisted table still holds the entry.
		store, err := marks.Open(ctx.StorePath)
		require.NoError(t, err)
		assert.Len(t, store.Project(host.cwd).Files, 1)
	})
}

func TestRemove(t *testing.T) {
	t.Run("evicts and reports the removed path", func(t *testing.T) {
		ctx, host := newTestContext(t)
		require.NoError(t, Dispatch(ctx, "set 1", EventValidate))

		require.NoError(t, Dispatch(ctx, "remove 1", EventValidate))

		store, err := marks.Open(ctx.StorePath)
		require.NoError(t, err)
		assert.Empty(t, store.Project(host.cwd).Files)
		require.Len(t, host.statuses, 2)
		assert.Contains(t, host.statuses[1], "a.txt")
	})

	t.Run("empty slot is informational and does not save", func(t *testing.T) {
		ctx, host := newTestContext(t)

		require.NoError(t, Dispatch(ctx, "remove 4", EventValidate))

		require.Len(t, host.errors, 1)
		assert.Contains(t, host.errors[0], "no mark at slot 4")
		_, err := os.Stat(ctx.StorePath)
		assert.True(t, os.IsNotExist(err), "remove on empty slot must not create the backing file")
	})
}

func TestUpdate(t *testing.T) {
	t.Run("replaces spans for a marked file and persists", func(t *testing.T) {
		ctx, host := newTestContext(t)
		require.NoError(t, Dispatch(ctx, "set 1", EventValidate))

		host.sel = editor.Selection{
			Ranges:  []editor.Range{{Anchor: 8, Head: 2}, {Anchor: 9, Head: 9}},
			Primary: 0,
		}
		require.NoError(t, Dispatch(ctx, "update", EventValidate))

		store, err := marks.Open(ctx.StorePath)
		require.NoError(t, err)
		rec := store.Project(host.cwd).Files[1]
		require.NotNil(t, rec)
		assert.Equal(t, "a.txt", rec.Path)
		assert.Equal(t, []marks.Span{{Start: 8, End: 2}, {Start: 9, End: 9}}, rec.Spans)
	})

	t.Run("unmarked path is a silent no-op", func(t *testing.T) {
		ctx, host := newTestContext(t)

		require.NoError(t, Dispatch(ctx, "update", EventValidate))
		assert.Empty(t, host.errors)
		_, err := os.Stat(ctx.StorePath)
		assert.True(t, os.IsNotExist(err), "no-op update must not create the backing file")
	})

	t.Run("pathless document is a silent no-op", func(t *testing.T) {
		ctx, host := newTestContext(t)
		host.hasPath = false

		require.NoError(t, Dispatch(ctx, "update", EventValidate))
		assert.Empty(t, host.errors)
	})
}

func TestList(t *testing.T) {
	t.Run("renders slots sorted by index", func(t *testing.T) {
		ctx, host := newTestContext(t)

		// Insert out of order across two files.
		require.NoError(t, Dispatch(ctx, "set 7", EventValidate))
		other := filepath.Join(host.cwd, "b.txt")
		require.NoError(t, os.WriteFile(other, []byte("second"), 0600))
		host.path = other
		require.NoError(t, Dispatch(ctx, "set 2", EventValidate))

		require.NoError(t, Dispatch(ctx, "list", EventValidate))

		// The hand-off is deferred: nothing shows until jobs run.
		require.Len(t, host.jobs, 1)
		ui := &fakeUI{}
		host.runJobs(ui)

		md, exists := ui.popups["marks"]
		require.True(t, exists)
		assert.Contains(t, md, "# Marks")
		assert.Contains(t, md, "2. b.txt")
		assert.Contains(t, md, "7. a.txt")
		assert.Less(t, strings.Index(md, "2. b.txt"), strings.Index(md, "7. a.txt"),
			"listing must be sorted by index ascending")
	})

	t.Run("stale entries still appear", func(t *testing.T) {
		ctx, host := newTestContext(t)
		require.NoError(t, Dispatch(ctx, "set 1", EventValidate))
		require.NoError(t, os.Remove(host.path))

		require.NoError(t, Dispatch(ctx, "list", EventValidate))
		ui := &fakeUI{}
		host.runJobs(ui)

		assert.Contains(t, ui.popups["marks"], "1. a.txt")
	})

	t.Run("empty project", func(t *testing.T) {
		ctx, host := newTestContext(t)

		require.NoError(t, Dispatch(ctx, "list", EventValidate))
		ui := &fakeUI{}
		host.runJobs(ui)

		assert.Contains(t, ui.popups["marks"], "no marks in this project")
	})
}

// TestScenario walks the end-to-end flow: set, get, remove.
func TestScenario(t *testing.T) {
	ctx, host := newTestContext(t)

	require.NoError(t, Dispatch(ctx, "set 1", EventValidate))

	store, err := marks.Open(ctx.StorePath)
	require.NoError(t, err)
	rec := store.Project(host.cwd).Files[1]
	require.NotNil(t, rec)
	assert.Equal(t, "a.txt", rec.Path)
	assert.Equal(t, []marks.Span{{Start: 3, End: 7}}, rec.Spans)

	require.NoError(t, Dispatch(ctx, "get 1", EventValidate))
	require.Len(t, host.opened, 1)
	require.Len(t, host.setSels, 1)
	assert.Equal(t, editor.Range{Anchor: 3, Head: 7}, host.setSels[0].PrimaryRange())

	require.NoError(t, Dispatch(ctx, "remove 1", EventValidate))
	store, err = marks.Open(ctx.StorePath)
	require.NoError(t, err)
	assert.Empty(t, store.Project(host.cwd).Files)
}

// TestProjectIsolation marks the same relative path under two working
// directories and checks the records stay independent.
func TestProjectIsolation(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "marks.json")

	makeCtx := func(sel editor.Selection) (*Context, *fakeHost) {
		cwd := t.TempDir()
		target := filepath.Join(cwd, "same.txt")
		require.NoError(t, os.WriteFile(target, []byte("x"), 0600))
		host := &fakeHost{path: target, hasPath: true, sel: sel, cwd: cwd}
		return &Context{Host: host, StorePath: storePath}, host
	}

	ctxA, hostA := makeCtx(editor.PointSelection(1))
	ctxB, hostB := makeCtx(editor.PointSelection(2))

	require.NoError(t, Dispatch(ctxA, "set 1", EventValidate))
	require.NoError(t, Dispatch(ctxB, "set 1", EventValidate))

	store, err := marks.Open(storePath)
	require.NoError(t, err)
	recA := store.Project(hostA.cwd).Files[1]
	recB := store.Project(hostB.cwd).Files[1]
	require.NotNil(t, recA)
	require.NotNil(t, recB)
	assert.Equal(t, []marks.Span{{Start: 1, End: 1}}, recA.Spans)
	assert.Equal(t, []marks.Span{{Start: 2, End: 2}}, recB.Spans)
}
