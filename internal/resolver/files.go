package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/pathweaver/internal/config"
	"github.com/specialistvlad/pathweaver/internal/ctxlog"
	"github.com/specialistvlad/pathweaver/internal/fuzzy"
	"github.com/specialistvlad/pathweaver/internal/tmpl"
)

// TypeMismatchError reports a files-document value that is not the expected
// kind, e.g. a mapping where a string template should be.
type TypeMismatchError struct {
	Dotted   string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("template at %q is not a %s (got %s)", e.Dotted, e.Expected, e.Actual)
}

// ResolveError wraps a template-resolution failure with everything needed to
// debug it without re-running: the logical key, the raw template text, and
// the context keys that were available.
type ResolveError struct {
	Key         string
	Dotted      string
	Template    string
	ContextKeys []string
	Err         error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("failed to resolve template %q: %v; template: %q; available context keys: %s",
		e.Dotted, e.Err, e.Template, strings.Join(e.ContextKeys, ", "))
}

// Unwrap exposes the underlying resolution error.
func (e *ResolveError) Unwrap() error { return e.Err }

// ResolveFile maps a logical key to its string template in the files
// document and renders it against tc. A key whose first dot-segment is a
// top-level document key is treated as fully qualified; any other key is
// looked up under the file_templates namespace.
func ResolveFile(ctx context.Context, files map[string]any, key string, tc tmpl.Context, opts tmpl.Options) (string, error) {
	first, _, _ := strings.Cut(key, ".")
	dotted := key
	if _, ok := files[first]; !ok {
		dotted = config.FileTemplatesKey + "." + key
	}

	raw, err := DeepGet(files, dotted)
	if err != nil {
		return "", templateKeyError(files, key, err)
	}

	template, ok := raw.(string)
	if !ok {
		return "", &TypeMismatchError{
			Dotted:   dotted,
			Expected: "string",
			Actual:   fmt.Sprintf("%T", raw),
		}
	}

	resolved, err := tmpl.Resolve(ctx, template, tc, opts)
	if err != nil {
		return "", &ResolveError{
			Key:         key,
			Dotted:      dotted,
			Template:    template,
			ContextKeys: ContextKeys(tc),
			Err:         err,
		}
	}
	return resolved, nil
}

// templateKeyError augments a failed template lookup with suggestions drawn
// from the file_templates namespace, so a typo'd key names its likely fix.
func templateKeyError(files map[string]any, key string, err error) error {
	ft, ok := files[config.FileTemplatesKey].(map[string]any)
	if !ok {
		return fmt.Errorf("template key %q not found: %w", key, err)
	}

	var ftKeys []string
	for k := range ft {
		ftKeys = append(ftKeys, k)
	}
	if similar := fuzzy.Suggest(key, ftKeys); len(similar) > 0 {
		return fmt.Errorf("template key %q not found (did you mean %s?): %w",
			key, strings.Join(similar, ", "), err)
	}
	return fmt.Errorf("template key %q not found: %w", key, err)
}

// GetPath is the high-level runtime entry point: load (cached) configs,
// build the context from the optional row and extras, and resolve the
// file template named by key into a concrete path string.
func GetPath(ctx context.Context, svc *config.Service, configDir, key string, row Row, extra map[string]any, opts tmpl.Options) (string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving path.", "key", key)

	docs, err := svc.Load(ctx, configDir)
	if err != nil {
		return "", err
	}

	tc := BuildContext(ctx, docs, row, extra)
	logger.Debug("Context built.", "keys", len(tc))

	resolved, err := ResolveFile(ctx, docs.Files, key, tc, opts)
	if err != nil {
		return "", err
	}
	logger.Debug("Resolved path.", "key", key, "path", resolved)
	return resolved, nil
}
