package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/specialistvlad/pathweaver/internal/ctxlog"
)

// EnsureDirectories walks a paths document and creates every missing
// directory it implies. A Path leaf with a file extension is treated as a
// file and its parent directory is created instead; any other Path leaf is
// treated as a directory itself. Returns the directories actually created,
// sorted; a second call on an unchanged tree creates nothing and returns an
// empty list.
func EnsureDirectories(ctx context.Context, paths map[string]any) ([]string, error) {
	var created []string

	var walk func(v any) error
	walk = func(v any) error {
		switch val := v.(type) {
		case Path:
			target := string(val)
			if filepath.Ext(target) != "" {
				target = filepath.Dir(target)
			}
			if _, err := os.Stat(target); os.IsNotExist(err) {
				if err := os.MkdirAll(target, 0o755); err != nil {
					return err
				}
				created = append(created, target)
			}
		case map[string]any:
			// Deterministic order keeps the created list stable.
			keys := make([]string, 0, len(val))
			for k := range val {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if err := walk(val[k]); err != nil {
					return err
				}
			}
		case []any:
			for _, child := range val {
				if err := walk(child); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(paths); err != nil {
		return nil, err
	}
	if len(created) > 0 {
		ctxlog.FromContext(ctx).Info("Created directories.", "count", len(created))
	}
	sort.Strings(created)
	return created, nil
}
