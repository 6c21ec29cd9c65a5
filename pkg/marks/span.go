package marks

import "github.com/entrhq/grapnel/pkg/editor"

// Span is the serializable form of one selection range: Start holds the
// anchor offset and End the head offset.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SpansFromSelection converts a selection into spans, one per range,
// preserving range order. The result is never empty because a selection
// always has at least one range.
func SpansFromSelection(sel editor.Selection) []Span {
	spans := make([]Span, len(sel.Ranges))
	for i, r := range sel.Ranges {
		spans[i] = Span{Start: r.Anchor, End: r.Head}
	}
	return spans
}

// SelectionFromSpans rebuilds a selection from spans with the primary
// range fixed at index 0. It is the exact inverse of
// SpansFromSelection up to the primary index.
func SelectionFromSpans(spans []Span) editor.Selection {
	ranges := make([]editor.Range, len(spans))
	for i, s := range spans {
		ranges[i] = editor.Range{Anchor: s.Start, Head: s.End}
	}
	return editor.Selection{Ranges: ranges, Primary: 0}
}
