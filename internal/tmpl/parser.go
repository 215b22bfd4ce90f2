// Package tmpl implements the placeholder template language: `{key}` and
// `{key::transform}` tokens substituted from a flat context of variant
// values.
//
// Resolution is a pure two-step pipeline: a template is first parsed into an
// ordered list of literal and placeholder segments, then folded into the
// output string plus the list of placeholders that stayed unresolved. The
// output is never re-scanned; substitution is single-pass and chained
// placeholders are deliberately not supported.
package tmpl

import "regexp"

// placeholderRE matches `{name}` and `{name::transform}` tokens. Names may
// be dotted; transforms are single words.
var placeholderRE = regexp.MustCompile(`\{([A-Za-z0-9_.]+)(?:::(\w+))?\}`)

// segment is one parsed piece of a template: either literal text or a
// placeholder reference.
type segment struct {
	literal   string
	key       string
	transform string
	raw       string // the placeholder token exactly as written
}

func (s segment) isPlaceholder() bool { return s.key != "" }

// parseTemplate splits a template into its ordered segments.
func parseTemplate(template string) []segment {
	var segments []segment
	last := 0
	for _, m := range placeholderRE.FindAllStringSubmatchIndex(template, -1) {
		if m[0] > last {
			segments = append(segments, segment{literal: template[last:m[0]]})
		}
		seg := segment{
			key: template[m[2]:m[3]],
			raw: template[m[0]:m[1]],
		}
		if m[4] >= 0 {
			seg.transform = template[m[4]:m[5]]
		}
		segments = append(segments, seg)
		last = m[1]
	}
	if last < len(template) {
		segments = append(segments, segment{literal: template[last:]})
	}
	return segments
}

// PlaceholderNames returns the distinct key names referenced by a template,
// in first-appearance order.
func PlaceholderNames(template string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, seg := range parseTemplate(template) {
		if !seg.isPlaceholder() {
			continue
		}
		if _, ok := seen[seg.key]; ok {
			continue
		}
		seen[seg.key] = struct{}{}
		names = append(names, seg.key)
	}
	return names
}
