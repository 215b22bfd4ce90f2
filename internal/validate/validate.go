// Package validate statically checks a project's configuration documents:
// completeness, path creatability, template resolvability, and circular
// dependencies among placeholder expressions. It is the "static" half of the
// engine, run independently of (and typically before) runtime resolution.
package validate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/pathweaver/internal/config"
	"github.com/specialistvlad/pathweaver/internal/ctxlog"
	"github.com/specialistvlad/pathweaver/internal/depgraph"
	"github.com/specialistvlad/pathweaver/internal/resolver"
	"github.com/specialistvlad/pathweaver/internal/tmpl"
)

// Options selects which checks Configs runs. The zero value runs everything.
type Options struct {
	SkipPaths     bool
	SkipTemplates bool
}

// Configs validates the configuration under configDir and returns whether it
// passed plus the collected error messages. A document that fails to load is
// fatal to the rest of validation; an empty document is an error but does
// not stop the remaining checks from being reported together.
func Configs(ctx context.Context, svc *config.Service, configDir string, opts Options) (bool, []string) {
	var errs []string

	docs, err := svc.Load(ctx, configDir)
	if err != nil {
		return false, []string{fmt.Sprintf("failed to load configs: %v", err)}
	}

	if len(docs.Paths) == 0 {
		errs = append(errs, config.PathsFile+" is empty or missing")
	}
	if len(docs.Params) == 0 {
		errs = append(errs, config.ParamsFile+" is empty or missing")
	}
	if len(docs.Files) == 0 {
		errs = append(errs, config.FilesFile+" is empty or missing")
	}
	if len(errs) > 0 {
		// Without the basic structure the remaining checks would only
		// produce noise.
		return false, errs
	}

	if !opts.SkipPaths {
		errs = append(errs, Paths(ctx, docs.Paths)...)
	}
	if !opts.SkipTemplates {
		errs = append(errs, Templates(ctx, docs)...)
	}
	errs = append(errs, placeholderCycles(docs)...)

	return len(errs) == 0, errs
}

// Paths walks the paths document and reports leaves that could not be
// created on demand. Leaves whose dotted key mentions "external" are treated
// as externally managed: a missing one only warns. Every other leaf needs an
// existing parent directory, or at worst an existing grandparent (one level
// of auto-creation tolerance).
func Paths(ctx context.Context, paths map[string]any) []string {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	var check func(v any, keyPath string)
	check = func(v any, keyPath string) {
		switch val := v.(type) {
		case config.Path:
			p := string(val)
			if strings.Contains(strings.ToLower(keyPath), "external") {
				if _, err := os.Stat(p); err != nil {
					logger.Warn("External path does not exist.", "key", keyPath, "path", p)
				}
				return
			}
			parent := p
			if filepath.Ext(p) != "" {
				parent = filepath.Dir(p)
			}
			if !dirExists(parent) && !dirExists(filepath.Dir(parent)) {
				errs = append(errs, fmt.Sprintf("path parent does not exist: %s = %s", keyPath, p))
			}
		case map[string]any:
			keys := make([]string, 0, len(val))
			for k := range val {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				child := k
				if keyPath != "" {
					child = keyPath + "." + k
				}
				check(val[k], child)
			}
		case []any:
			for i, item := range val {
				check(item, fmt.Sprintf("%s[%d]", keyPath, i))
			}
		}
	}

	check(paths, "")
	return errs
}

// Templates checks that every placeholder referenced by the file_templates
// and outputs namespaces can be resolved statically. Dotted references must
// hit a known key or walk cleanly into the paths document; simple references
// may come from a dynamic row at call time and are only logged.
func Templates(ctx context.Context, docs *config.Documents) []string {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	known := make(map[string]struct{})
	for key := range resolver.Flatten(docs.Paths) {
		known[key] = struct{}{}
	}
	for key := range docs.Params {
		known[key] = struct{}{}
	}
	for _, ph := range docs.Placeholders {
		known[ph.Name] = struct{}{}
	}

	for _, name := range referencedPlaceholders(docs.Files) {
		if _, ok := known[name]; ok {
			continue
		}
		if !strings.Contains(name, ".") {
			logger.Debug("Template placeholder not found in static config, assuming dynamic.", "name", name)
			continue
		}
		if walks(docs.Paths, name) {
			continue
		}
		errs = append(errs, fmt.Sprintf("template placeholder %q references unknown context key", name))
	}

	return errs
}

// referencedPlaceholders collects the sorted set of placeholder names used
// by string templates in the file_templates and outputs namespaces.
func referencedPlaceholders(files map[string]any) []string {
	seen := make(map[string]struct{})
	for _, namespace := range []string{config.FileTemplatesKey, "outputs"} {
		block, ok := files[namespace].(map[string]any)
		if !ok {
			continue
		}
		for _, v := range block {
			template, ok := v.(string)
			if !ok {
				continue
			}
			for _, name := range tmpl.PlaceholderNames(template) {
				seen[name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// walks reports whether a dotted name can be followed segment by segment
// through the paths document.
func walks(paths map[string]any, dotted string) bool {
	var current any = paths
	for _, part := range strings.Split(dotted, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		current, ok = m[part]
		if !ok {
			return false
		}
	}
	return true
}

// placeholderCycles builds the placeholder dependency graph and reports any
// cycle in it. An expression's edge targets only other declared placeholder
// names; references to paths or row fields are not dependencies.
func placeholderCycles(docs *config.Documents) []string {
	if len(docs.Placeholders) == 0 {
		return nil
	}

	declared := make(map[string]struct{}, len(docs.Placeholders))
	graph := depgraph.New()
	for _, ph := range docs.Placeholders {
		declared[ph.Name] = struct{}{}
		graph.AddNode(ph.Name)
	}

	for _, ph := range docs.Placeholders {
		for _, ref := range tmpl.PlaceholderNames(ph.Expr) {
			if _, ok := declared[ref]; !ok {
				continue
			}
			// Both endpoints exist, so AddEdge cannot fail.
			_ = graph.AddEdge(ph.Name, ref)
		}
	}

	if cycle := graph.DetectCycle(); cycle != nil {
		return []string{cycle.Error()}
	}
	return nil
}

func dirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
