package manifest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Write persists rows as a CSV table at outPath, creating parent directories
// as needed. Columns are the union of all row keys with "path" and "base"
// first, the rest alphabetical; values are stringified with %v.
func Write(rows []Row, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	columns := columnOrder(rows)
	if err := w.Write(columns); err != nil {
		return err
	}

	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			if v, ok := row[col]; ok {
				record[i] = fmt.Sprintf("%v", v)
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// Load reads a manifest table written by Write. All field values come back
// as strings.
func Load(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest not found: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columnOrder fixes "path" and "base" first so tables stay diffable, with
// the remaining columns alphabetical.
func columnOrder(rows []Row) []string {
	seen := map[string]struct{}{"path": {}, "base": {}}
	var rest []string
	for _, row := range rows {
		for k := range row {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append([]string{"path", "base"}, rest...)
}
