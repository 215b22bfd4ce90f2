package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/pathweaver/internal/fuzzy"
)

// KeyNotFoundError reports a dotted-key walk that broke partway through a
// nested mapping. It names the exact segment that failed, the path walked so
// far, the sibling keys available at that level, and fuzzy suggestions among
// them.
type KeyNotFoundError struct {
	Dotted      string
	Segment     string
	Walked      string
	Available   []string
	Suggestions []string
}

// Error implements the error interface.
func (e *KeyNotFoundError) Error() string {
	msg := fmt.Sprintf("key path %q not found (stopped at %q)", e.Dotted, e.Segment)
	if e.Walked != "" {
		msg += fmt.Sprintf("; path so far: %q", e.Walked)
	}
	if len(e.Available) > 0 {
		msg += fmt.Sprintf("; available keys at this level: %s", strings.Join(e.Available, ", "))
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf("; did you mean %s?", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// DeepGet walks a nested mapping by a dot-separated path and returns the
// value at its end. Any break in the walk yields a KeyNotFoundError.
func DeepGet(mapping map[string]any, dotted string) (any, error) {
	parts := strings.Split(dotted, ".")
	var current any = mapping

	for i, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, notFound(dotted, parts, i, nil)
		}
		child, ok := m[part]
		if !ok {
			return nil, notFound(dotted, parts, i, m)
		}
		current = child
	}
	return current, nil
}

func notFound(dotted string, parts []string, i int, level map[string]any) *KeyNotFoundError {
	var available []string
	for k := range level {
		available = append(available, k)
	}
	sort.Strings(available)

	var suggestions []string
	if len(available) > 0 {
		suggestions = fuzzy.Suggest(parts[i], available)
	}

	return &KeyNotFoundError{
		Dotted:      dotted,
		Segment:     parts[i],
		Walked:      strings.Join(parts[:i], "."),
		Available:   available,
		Suggestions: suggestions,
	}
}
