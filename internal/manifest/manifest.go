// Package manifest scans data directories for files, parses their basenames
// into rows of named fields, and persists the result as a CSV table. Rows
// are the dynamic half of a resolution context: the resolver consumes them
// through its Row interface and never sees anything beyond key/value pairs.
package manifest

import (
	"path/filepath"
	"strings"

	"github.com/specialistvlad/pathweaver/internal/fsutil"
)

// Row is one manifest entry. Every row carries at least "path" (the full
// file path) and "base" (the filename without extension) plus whatever the
// parser extracted.
type Row map[string]any

// Fields implements the resolver's row interface.
func (r Row) Fields() map[string]any { return r }

// ParseFunc extracts named fields from a file's basename (no extension).
type ParseFunc func(base string) map[string]any

// FilterFunc decides whether a parsed row is kept.
type FilterFunc func(Row) bool

// Scan returns the files under root matching the given glob patterns,
// sorted and deduplicated. With recursive set, patterns apply to the whole
// tree below root.
func Scan(root string, patterns []string, recursive bool) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"*"}
	}
	return fsutil.Glob(root, patterns, recursive)
}

// DefaultParser returns only the basename, for projects that want a
// manifest without filename rules.
func DefaultParser(base string) map[string]any {
	return map[string]any{"base": base}
}

// BuildRows turns scanned file paths into manifest rows using parse, then
// applies the filters; a row survives only if every filter accepts it.
func BuildRows(files []string, parse ParseFunc, filters ...FilterFunc) []Row {
	if parse == nil {
		parse = DefaultParser
	}

	rows := make([]Row, 0, len(files))
	for _, f := range files {
		base := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		row := Row{"path": f, "base": base}
		for k, v := range parse(base) {
			row[k] = v
		}
		if keep(row, filters) {
			rows = append(rows, row)
		}
	}
	return rows
}

func keep(row Row, filters []FilterFunc) bool {
	for _, f := range filters {
		if !f(row) {
			return false
		}
	}
	return true
}
