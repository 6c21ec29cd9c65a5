package marks

import (
	"path/filepath"
	"strings"
)

// RelPath normalizes a path as it enters the store: when path lies
// inside cwd it is rewritten relative to cwd, otherwise it is returned
// unchanged. Applying this consistently on set and update keeps lookups
// by path comparing normalized forms, and keeps stored marks portable
// across checkouts of the same project at different roots.
func RelPath(cwd, path string) string {
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
