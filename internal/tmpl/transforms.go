package tmpl

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Transform rewrites a stringified context value inline, e.g. `{key::upper}`.
type Transform func(string) (string, error)

// defaultTransforms is the built-in transform registry.
var defaultTransforms = map[string]Transform{
	"upper": func(s string) (string, error) { return strings.ToUpper(s), nil },
	"lower": func(s string) (string, error) { return strings.ToLower(s), nil },
	"title": func(s string) (string, error) { return cases.Title(language.Und).String(s), nil },
	"strip": func(s string) (string, error) { return strings.TrimSpace(s), nil },
}

// transformNames returns the sorted names of a merged transform registry,
// for diagnostics.
func transformNames(extra map[string]Transform) []string {
	names := make([]string, 0, len(defaultTransforms)+len(extra))
	for name := range defaultTransforms {
		names = append(names, name)
	}
	for name := range extra {
		if _, ok := defaultTransforms[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
