package tmpl

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/pathweaver/internal/ctxlog"
	"github.com/specialistvlad/pathweaver/internal/fuzzy"
)

// Options tunes a single resolution call. The zero value resolves with the
// built-in transforms, leaves unknown placeholders verbatim, and reports
// them with a single aggregated warning.
type Options struct {
	// Transforms is merged over the built-in registry.
	Transforms map[string]Transform

	// Strict turns an unknown placeholder into an error instead of leaving
	// the token verbatim in the output.
	Strict bool

	// SuppressWarnings downgrades the aggregated unresolved-placeholder
	// warning to debug level.
	SuppressWarnings bool
}

// UnknownPlaceholderError reports a strict-mode resolution against a key the
// context does not contain. It carries the full key set and fuzzy-matched
// suggestions so the failure is actionable on its own.
type UnknownPlaceholderError struct {
	Placeholder string
	Key         string
	Available   []string
	Suggestions []string
}

// Error implements the error interface.
func (e *UnknownPlaceholderError) Error() string {
	msg := fmt.Sprintf("placeholder %q references unknown key %q; available context keys: %s",
		e.Placeholder, e.Key, strings.Join(e.Available, ", "))
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf("; did you mean %s?", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// Resolve substitutes every known placeholder in template from tc and
// returns the result. Unknown placeholders stay verbatim in the output
// unless opts.Strict is set. Transform failures never abort resolution: the
// untransformed value is used and the failure is logged.
func Resolve(ctx context.Context, template string, tc Context, opts Options) (string, error) {
	if template == "" {
		return "", nil
	}
	logger := ctxlog.FromContext(ctx)

	var out strings.Builder
	var unresolved []string

	for _, seg := range parseTemplate(template) {
		if !seg.isPlaceholder() {
			out.WriteString(seg.literal)
			continue
		}

		value, ok := tc[seg.key]
		if !ok {
			if opts.Strict {
				keys := contextKeys(tc)
				return "", &UnknownPlaceholderError{
					Placeholder: seg.raw,
					Key:         seg.key,
					Available:   keys,
					Suggestions: fuzzy.Suggest(seg.key, keys),
				}
			}
			unresolved = append(unresolved, seg.key)
			out.WriteString(seg.raw)
			continue
		}

		out.WriteString(applyTransform(ctx, seg, ValueString(value), opts.Transforms))
	}

	if len(unresolved) > 0 {
		msg := "Template contains unresolved placeholders."
		args := []any{"placeholders", unresolved, "context_keys", contextKeys(tc)}
		if opts.SuppressWarnings {
			logger.Debug(msg, args...)
		} else {
			logger.Warn(msg, args...)
		}
	}

	return out.String(), nil
}

// applyTransform runs the segment's named transform over the stringified
// value, falling back to the untransformed value on any failure.
func applyTransform(ctx context.Context, seg segment, value string, extra map[string]Transform) string {
	if seg.transform == "" {
		return value
	}
	logger := ctxlog.FromContext(ctx)

	fn, ok := extra[seg.transform]
	if !ok {
		fn, ok = defaultTransforms[seg.transform]
	}
	if !ok {
		logger.Warn("Unknown transform, using untransformed value.",
			"transform", seg.transform, "key", seg.key, "available", transformNames(extra))
		return value
	}

	transformed, err := fn(value)
	if err != nil {
		logger.Warn("Transform failed, using untransformed value.",
			"transform", seg.transform, "key", seg.key, "error", err)
		return value
	}
	return transformed
}

// ResolveStructure walks a nested mapping/sequence/string tree and resolves
// every string leaf against tc, returning an isomorphic structure. Leaves of
// any other kind pass through unchanged.
func ResolveStructure(ctx context.Context, node any, tc Context, opts Options) (any, error) {
	switch val := node.(type) {
	case string:
		return Resolve(ctx, val, tc, opts)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			resolved, err := ResolveStructure(ctx, child, tc, opts)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			resolved, err := ResolveStructure(ctx, child, tc, opts)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return node, nil
	}
}

// contextKeys returns the sorted key set of a context.
func contextKeys(tc Context) []string {
	keys := make([]string, 0, len(tc))
	for k := range tc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
