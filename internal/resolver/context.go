// Package resolver turns loaded configuration documents plus per-call
// dynamic inputs into concrete strings: it builds flat resolution contexts,
// walks documents by dotted key, and renders file-name templates.
package resolver

import (
	"context"
	"reflect"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/pathweaver/internal/config"
	"github.com/specialistvlad/pathweaver/internal/ctxlog"
	"github.com/specialistvlad/pathweaver/internal/tmpl"
)

// Row is the minimal surface the resolver needs from an externally produced
// manifest row: its named fields. Values must be plain data; callable fields
// are skipped at the adapter boundary.
type Row interface {
	Fields() map[string]any
}

// BuildContext merges the resolution sources into one flat context, in fixed
// precedence order (lowest to highest): flattened path keys, row fields,
// params.placeholders resolved in declaration order, explicit extras. Later
// sources overwrite earlier ones on key collision; consumers rely on that
// ordering.
func BuildContext(ctx context.Context, docs *config.Documents, row Row, extra map[string]any) tmpl.Context {
	logger := ctxlog.FromContext(ctx)
	tc := Flatten(docs.Paths)

	if row != nil {
		for k, v := range row.Fields() {
			if v != nil && reflect.ValueOf(v).Kind() == reflect.Func {
				logger.Debug("Skipping callable row field.", "key", k)
				continue
			}
			value, err := tmpl.FromGo(v)
			if err != nil {
				logger.Warn("Skipping row field with unsupported value.", "key", k, "error", err)
				continue
			}
			tc[k] = value
		}
	}

	// Each placeholder expression resolves against the context accumulated
	// so far, so it may reference paths, row fields, and earlier
	// placeholders only. A forward reference stays as literal bracket text;
	// the validator's cycle check catches genuine loops.
	for _, ph := range docs.Placeholders {
		resolved, err := tmpl.Resolve(ctx, ph.Expr, tc, tmpl.Options{SuppressWarnings: true})
		if err != nil {
			logger.Warn("Placeholder expression failed to resolve.", "name", ph.Name, "error", err)
			continue
		}
		tc[ph.Name] = cty.StringVal(resolved)
	}

	for k, v := range extra {
		value, err := tmpl.FromGo(v)
		if err != nil {
			logger.Warn("Skipping extra context value of unsupported type.", "key", k, "error", err)
			continue
		}
		tc[k] = value
	}

	return tc
}

// Flatten converts a nested paths document into a flat context keyed by
// dotted names (e.g. "data.products"). Sequences are kept as opaque values
// rather than flattened into dotted indices.
func Flatten(paths map[string]any) tmpl.Context {
	tc := make(tmpl.Context)
	flattenInto(tc, "", paths)
	return tc
}

func flattenInto(tc tmpl.Context, prefix string, node map[string]any) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flattenInto(tc, key, val)
		case config.Path:
			tc[key] = tmpl.PathVal(string(val))
		default:
			converted, err := tmpl.FromGo(v)
			if err != nil {
				// Unsupported leaves are dropped rather than letting an
				// arbitrary host type leak past the context boundary.
				continue
			}
			tc[key] = converted
		}
	}
}

// ContextKeys returns the sorted key set of a built context, for diagnostics.
func ContextKeys(tc tmpl.Context) []string {
	keys := make([]string, 0, len(tc))
	for k := range tc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
