package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/pathweaver/internal/config"
	"github.com/specialistvlad/pathweaver/internal/ctxlog"
	"github.com/specialistvlad/pathweaver/internal/tmpl"
)

// DebugTemplate resolves a file-template key like ResolveFile, but first
// logs every placeholder the template references together with the value it
// will take, making a surprising resolution traceable step by step.
func DebugTemplate(ctx context.Context, docs *config.Documents, key string, row Row, extra map[string]any) (string, error) {
	logger := ctxlog.FromContext(ctx)
	tc := BuildContext(ctx, docs, row, extra)

	first, _, _ := strings.Cut(key, ".")
	dotted := key
	if _, ok := docs.Files[first]; !ok {
		dotted = config.FileTemplatesKey + "." + key
	}

	raw, err := DeepGet(docs.Files, dotted)
	if err != nil {
		return "", templateKeyError(docs.Files, key, err)
	}
	template, ok := raw.(string)
	if !ok {
		return "", &TypeMismatchError{Dotted: dotted, Expected: "string", Actual: fmt.Sprintf("%T", raw)}
	}

	logger.Info("Debugging template.", "key", key, "template", template)
	logger.Debug("Available context keys.", "keys", ContextKeys(tc))

	for _, name := range tmpl.PlaceholderNames(template) {
		if value, ok := tc[name]; ok {
			logger.Debug("Placeholder resolves.", "name", name, "value", tmpl.ValueString(value))
		} else {
			logger.Warn("Placeholder references unknown key.", "name", name)
		}
	}

	resolved, err := tmpl.Resolve(ctx, template, tc, tmpl.Options{})
	if err != nil {
		return "", err
	}
	logger.Info("Resolved template.", "key", key, "path", resolved)
	return resolved, nil
}
