package tui

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"

	"github.com/entrhq/grapnel/pkg/editor"
)

// document is the active view's content plus its selection. The cursor
// is the head of the primary range; byte offsets index into content.
type document struct {
	path    string // empty for the scratch welcome document
	content string
	sel     editor.Selection

	// lineStarts[i] is the offset of the first byte of line i.
	lineStarts []int
}

const welcomeText = `grapnel

Open a file and pin it to a slot:

  :set <n>      mark the current file and selection
  :get <n>      jump back to a marked slot
  :update       refresh the selection for a marked file
  :remove <n>   evict a slot
  :list         show the project's marks

Press : to enter a command.
`

// newScratchDocument returns the pathless welcome document.
func newScratchDocument() *document {
	d := &document{
		content: welcomeText,
		sel:     editor.PointSelection(0),
	}
	d.indexLines()
	return d
}

// openDocument reads a file into a document with a collapsed selection
// at the start.
func openDocument(path string) (*document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	d := &document{
		path:    path,
		content: string(data),
		sel:     editor.PointSelection(0),
	}
	d.indexLines()
	return d, nil
}

func (d *document) indexLines() {
	d.lineStarts = []int{0}
	for i := 0; i < len(d.content); i++ {
		if d.content[i] == '\n' {
			d.lineStarts = append(d.lineStarts, i+1)
		}
	}
}

// clampOffset bounds an offset to the document's content.
func (d *document) clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(d.content) {
		return len(d.content)
	}
	return offset
}

// lineForOffset returns the line index containing offset.
func (d *document) lineForOffset(offset int) int {
	offset = d.clampOffset(offset)
	// Binary search over line starts.
	lo, hi := 0, len(d.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if d.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// lineEnd returns the offset just past the last character of line
// (before its newline).
func (d *document) lineEnd(line int) int {
	if line+1 < len(d.lineStarts) {
		return d.lineStarts[line+1] - 1
	}
	return len(d.content)
}

// cursor returns the head of the primary range.
func (d *document) cursor() int {
	return d.sel.PrimaryRange().Head
}

// moveCursor moves the cursor by the given line/column deltas. When
// extend is set the anchor stays put, growing the primary range;
// otherwise the selection collapses to the new point.
func (d *document) moveCursor(dLine, dCol int, extend bool) {
	offset := d.cursor()
	line := d.lineForOffset(offset)
	col := offset - d.lineStarts[line]

	line += dLine
	if line < 0 {
		line = 0
	}
	if line >= len(d.lineStarts) {
		line = len(d.lineStarts) - 1
	}

	col += dCol
	if col < 0 {
		col = 0
	}
	if max := d.lineEnd(line) - d.lineStarts[line]; col > max {
		col = max
	}

	target := d.clampOffset(d.lineStarts[line] + col)
	if extend {
		anchor := d.sel.PrimaryRange().Anchor
		d.sel = editor.Selection{
			Ranges:  []editor.Range{{Anchor: anchor, Head: target}},
			Primary: 0,
		}
	} else {
		d.sel = editor.PointSelection(target)
	}
}

// setSelection replaces the selection, clamping every offset to the
// content bounds.
func (d *document) setSelection(sel editor.Selection) {
	if len(sel.Ranges) == 0 {
		d.sel = editor.PointSelection(0)
		return
	}
	ranges := make([]editor.Range, len(sel.Ranges))
	for i, r := range sel.Ranges {
		ranges[i] = editor.Range{
			Anchor: d.clampOffset(r.Anchor),
			Head:   d.clampOffset(r.Head),
		}
	}
	primary := sel.Primary
	if primary < 0 || primary >= len(ranges) {
		primary = 0
	}
	d.sel = editor.Selection{Ranges: ranges, Primary: primary}
}

// highlighted returns the content with terminal syntax highlighting.
// Highlighting failures fall back to the plain content.
func (d *document) highlighted() string {
	if d.path == "" {
		return d.content
	}

	lexer := lexers.Match(filepath.Base(d.path))
	if lexer == nil {
		return d.content
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, d.content, lexer.Config().Name, "terminal256", "monokai"); err != nil {
		return d.content
	}
	return buf.String()
}
