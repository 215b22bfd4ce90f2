// Package fuzzy suggests likely alternatives for mistyped configuration keys.
//
// Matches are diagnostic only: callers attach them to error messages, they
// are never substituted for a missing key.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// DefaultMaxDistance is the edit-distance cutoff used by Suggest.
const DefaultMaxDistance = 2

// Distance returns the Levenshtein edit distance between two strings:
// the minimum number of single-character insertions, deletions, or
// substitutions needed to turn one into the other.
func Distance(a, b string) int {
	return levenshtein.Distance(a, b, nil)
}

// Match returns the candidates whose edit distance to target is at most
// maxDistance, sorted alphabetically. Comparison is case-insensitive unless
// caseSensitive is set; the returned strings keep their original casing.
func Match(target string, candidates []string, maxDistance int, caseSensitive bool) []string {
	normTarget := target
	if !caseSensitive {
		normTarget = strings.ToLower(target)
	}

	var matches []string
	for _, candidate := range candidates {
		norm := candidate
		if !caseSensitive {
			norm = strings.ToLower(candidate)
		}
		if Distance(normTarget, norm) <= maxDistance {
			matches = append(matches, candidate)
		}
	}
	sort.Strings(matches)
	return matches
}

// Suggest is Match with the default cutoff and case-insensitive comparison.
func Suggest(target string, candidates []string) []string {
	return Match(target, candidates, DefaultMaxDistance, false)
}
