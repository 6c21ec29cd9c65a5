package editor

import "fmt"

// Range is a single selection range over a document's contents,
// expressed as byte offsets. Anchor is the fixed end and Head the
// moving end; Head may precede Anchor for backward selections.
type Range struct {
	Anchor int
	Head   int
}

// Point returns a collapsed range at the given offset.
func Point(offset int) Range {
	return Range{Anchor: offset, Head: offset}
}

// IsPoint reports whether the range is collapsed to a single offset.
func (r Range) IsPoint() bool {
	return r.Anchor == r.Head
}

// Selection is an ordered, non-empty set of ranges with one designated
// primary range. Range order is preserved as given.
type Selection struct {
	Ranges  []Range
	Primary int
}

// NewSelection builds a selection from the given ranges. A selection
// always has at least one range, and the primary index must address one
// of them.
func NewSelection(ranges []Range, primary int) (Selection, error) {
	if len(ranges) == 0 {
		return Selection{}, fmt.Errorf("editor: selection must have at least one range")
	}
	if primary < 0 || primary >= len(ranges) {
		return Selection{}, fmt.Errorf("editor: primary index %d out of range for %d ranges", primary, len(ranges))
	}
	return Selection{Ranges: ranges, Primary: primary}, nil
}

// PointSelection returns a single collapsed range at offset.
func PointSelection(offset int) Selection {
	return Selection{Ranges: []Range{Point(offset)}, Primary: 0}
}

// PrimaryRange returns the designated primary range.
func (s Selection) PrimaryRange() Range {
	return s.Ranges[s.Primary]
}

// Equal reports whether two selections have the same ranges in the same
// order and the same primary index.
func (s Selection) Equal(other Selection) bool {
	if s.Primary != other.Primary || len(s.Ranges) != len(other.Ranges) {
		return false
	}
	for i, r := range s.Ranges {
		if r != other.Ranges[i] {
			return false
		}
	}
	return true
}
