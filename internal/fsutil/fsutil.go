// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ProjectRoot walks upward from start looking for a directory that contains
// either a "config" subdirectory or a ".git" marker, and returns the first
// one found. If no marker is found it falls back to the resolved start
// directory itself.
func ProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for probe := dir; ; {
		if info, err := os.Stat(filepath.Join(probe, "config")); err == nil && info.IsDir() {
			return probe, nil
		}
		if _, err := os.Stat(filepath.Join(probe, ".git")); err == nil {
			return probe, nil
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			break
		}
		probe = parent
	}

	return dir, nil
}

// Glob scans root for regular files matching any of the given doublestar
// patterns. When recursive is set, each pattern is applied to the whole tree
// below root rather than only its top level. The result is sorted and free
// of duplicates.
func Glob(root string, patterns []string, recursive bool) ([]string, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]struct{})

	for _, pattern := range patterns {
		if recursive {
			pattern = "**/" + pattern
		}
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			info, err := fs.Stat(fsys, m)
			if err != nil || info.IsDir() {
				continue
			}
			seen[filepath.Join(root, filepath.FromSlash(m))] = struct{}{}
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

// Chdir changes the working directory to dir and returns a restore function
// that switches back to the original directory. The restore function must be
// called even if the work in between fails, typically via defer.
func Chdir(dir string) (func() error, error) {
	original, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	target, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.Chdir(target); err != nil {
		return nil, err
	}
	return func() error { return os.Chdir(original) }, nil
}
