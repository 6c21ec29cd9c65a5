package marks

import (
	"testing"

	"github.com/entrhq/grapnel/pkg/editor"
)

func TestRecordSelectionRoundTrip(t *testing.T) {
	t.Run("single range", func(t *testing.T) {
		original := editor.Selection{
			Ranges:  []editor.Range{{Anchor: 3, Head: 7}},
			Primary: 0,
		}

		rec := NewRecord("a.txt", original)
		restored := rec.AsSelection()

		if !restored.Equal(original) {
			t.Errorf("round-trip changed the selection: %v -> %v", original, restored)
		}
	})

	t.Run("multiple ranges preserve order", func(t *testing.T) {
		original := editor.Selection{
			Ranges: []editor.Range{
				{Anchor: 40, Head: 30}, // backward range
				{Anchor: 0, Head: 5},
				{Anchor: 12, Head: 12}, // point
			},
			Primary: 0,
		}

		rec := NewRecord("a.txt", original)
		restored := rec.AsSelection()

		if !restored.Equal(original) {
			t.Errorf("round-trip changed the selection: %v -> %v", original, restored)
		}
	})

	t.Run("primary is rebuilt at index zero", func(t *testing.T) {
		original := editor.Selection{
			Ranges:  []editor.Range{{Anchor: 0, Head: 5}, {Anchor: 10, Head: 15}},
			Primary: 1,
		}

		restored := NewRecord("a.txt", original).AsSelection()
		if restored.Primary != 0 {
			t.Errorf("expected primary 0, got %d", restored.Primary)
		}
		if len(restored.Ranges) != 2 || restored.Ranges[1] != original.Ranges[1] {
			t.Errorf("ranges changed: %v", restored.Ranges)
		}
	})
}

func TestRecord_UpdateSelection(t *testing.T) {
	rec := NewRecord("a.txt", editor.Selection{
		Ranges:  []editor.Range{{Anchor: 0, Head: 1}},
		Primary: 0,
	})

	rec.UpdateSelection(editor.Selection{
		Ranges:  []editor.Range{{Anchor: 8, Head: 2}, {Anchor: 20, Head: 25}},
		Primary: 0,
	})

	if rec.Path != "a.txt" {
		t.Errorf("update must not touch the path, got %s", rec.Path)
	}
	want := []Span{{Start: 8, End: 2}, {Start: 20, End: 25}}
	if len(rec.Spans) != len(want) {
		t.Fatalf("expected %d spans, got %d", len(want), len(rec.Spans))
	}
	for i, s := range rec.Spans {
		if s != want[i] {
			t.Errorf("span %d: expected %v, got %v", i, want[i], s)
		}
	}
}
