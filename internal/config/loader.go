// Package config loads the three project configuration documents (paths,
// params, files), coerces path leaves to absolute filesystem paths, and
// memoizes the result per config directory.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/pathweaver/internal/ctxlog"
	"github.com/specialistvlad/pathweaver/internal/fsutil"
)

// Load reads the three configuration documents from <root>/<configDir>,
// where root is discovered by walking upward from the current directory. A
// missing document is logged and treated as empty; an unreadable or
// unparsable one is a fatal LoadError.
func Load(ctx context.Context, configDir string) (*Documents, error) {
	logger := ctxlog.FromContext(ctx)

	root, err := fsutil.ProjectRoot(".")
	if err != nil {
		return nil, fmt.Errorf("discovering project root: %w", err)
	}

	cfgDir := configDir
	if !filepath.IsAbs(cfgDir) {
		cfgDir = filepath.Join(root, configDir)
	}
	logger.Debug("Loading configs.", "config_dir", cfgDir, "project_root", root)

	rawPaths, err := loadYAML(ctx, filepath.Join(cfgDir, PathsFile))
	if err != nil {
		return nil, err
	}
	params, err := loadYAML(ctx, filepath.Join(cfgDir, ParamsFile))
	if err != nil {
		return nil, err
	}
	files, err := loadYAML(ctx, filepath.Join(cfgDir, FilesFile))
	if err != nil {
		return nil, err
	}

	placeholders, err := orderedPlaceholders(filepath.Join(cfgDir, ParamsFile))
	if err != nil {
		return nil, err
	}

	docs := &Documents{
		Root:         root,
		Paths:        coerceTree(rawPaths, root).(map[string]any),
		Params:       params,
		Files:        files,
		Placeholders: placeholders,
	}

	logger.Debug("Loaded configs.",
		"paths_keys", len(docs.Paths),
		"params_keys", len(docs.Params),
		"files_keys", len(docs.Files),
		"placeholders", len(docs.Placeholders),
	)
	return docs, nil
}

// loadYAML parses one document into a nested mapping. A missing file yields
// an empty mapping and a warning rather than an error.
func loadYAML(ctx context.Context, file string) (map[string]any, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			ctxlog.FromContext(ctx).Warn("Config file not found, treating as empty.", "file", file)
			return map[string]any{}, nil
		}
		return nil, &LoadError{File: file, Err: err}
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{File: file, Err: err}
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// orderedPlaceholders re-reads the params document as a YAML node tree to
// recover the declaration order of the placeholders block, which plain map
// decoding discards.
func orderedPlaceholders(paramsFile string) ([]Placeholder, error) {
	data, err := os.ReadFile(paramsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &LoadError{File: paramsFile, Err: err}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &LoadError{File: paramsFile, Err: err}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, nil
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != PlaceholdersKey {
			continue
		}
		block := doc.Content[i+1]
		if block.Kind != yaml.MappingNode {
			return nil, nil
		}
		placeholders := make([]Placeholder, 0, len(block.Content)/2)
		for j := 0; j+1 < len(block.Content); j += 2 {
			var expr any
			if err := block.Content[j+1].Decode(&expr); err != nil {
				return nil, &LoadError{File: paramsFile, Err: err}
			}
			placeholders = append(placeholders, Placeholder{
				Name: block.Content[j].Value,
				Expr: fmt.Sprintf("%v", expr),
			})
		}
		return placeholders, nil
	}
	return nil, nil
}

// coerceTree walks a paths document and converts every string leaf into a
// normalized absolute Path. Non-string leaves pass through unchanged.
func coerceTree(v any, root string) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = coerceTree(child, root)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = coerceTree(child, root)
		}
		return out
	case string:
		return coercePath(val, root)
	default:
		return v
	}
}

// coercePath turns one configured string into an absolute Path: tilde and
// $VAR references expanded, and entries that are neither absolute nor
// explicitly relative (./ or ../) re-rooted at the project root.
func coercePath(raw, root string) Path {
	expanded := expand(raw)
	if !filepath.IsAbs(expanded) && !strings.HasPrefix(raw, ".") {
		expanded = filepath.Join(root, expanded)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		abs = filepath.Clean(expanded)
	}
	return Path(abs)
}

// expand resolves ~ and environment-variable references in a path string.
func expand(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = home + p[1:]
		}
	}
	return os.ExpandEnv(p)
}
