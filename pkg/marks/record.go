package marks

import "github.com/entrhq/grapnel/pkg/editor"

// Record is one bookmarked location: a path plus the selection to
// restore when jumping back to it. The path is stored relative to the
// project root whenever possible (see RelPath) so a mark survives the
// same project being checked out at a different root. Spans is never
// empty.
//
// A record owns its path string; it shares no state with the live
// document it was captured from.
type Record struct {
	Path  string `json:"path"`
	Spans []Span `json:"spans"`
}

// NewRecord builds a record from an already-normalized path and the
// current selection.
func NewRecord(path string, sel editor.Selection) *Record {
	return &Record{
		Path:  path,
		Spans: SpansFromSelection(sel),
	}
}

// UpdateSelection replaces the record's spans wholesale from the given
// selection. The path is left untouched.
func (r *Record) UpdateSelection(sel editor.Selection) {
	r.Spans = SpansFromSelection(sel)
}

// AsSelection rebuilds the recorded selection, with the primary range
// at index 0.
func (r *Record) AsSelection() editor.Selection {
	return SelectionFromSpans(r.Spans)
}
