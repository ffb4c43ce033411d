// Package resolve matches free-text ship names against maps keyed by
// lowercased names. Catalog names and the community pricing dataset are
// maintained by different organizations and frequently diverge by
// punctuation, abbreviation, or edition suffixes, so lookups fall
// through a cascade that trades precision for coverage.
package resolve

import "strings"

// Lookup resolves rawName against m. The cascade, first match wins:
//
//  1. exact match on the lowercased trimmed name
//  2. a key that contains the name, or that the name contains
//  3. per whitespace token longer than 2 characters, a key containing
//     that token
//
// Steps 2 and 3 can match several keys when ship names overlap
// ("Hornet" vs "Hornet Mk II"); the longest matching key wins so the
// result does not depend on map iteration order.
func Lookup[T any](m map[string]T, rawName string) (T, bool) {
	var zero T
	if len(m) == 0 {
		return zero, false
	}

	normalized := strings.ToLower(strings.TrimSpace(rawName))
	if normalized == "" {
		return zero, false
	}

	if v, ok := m[normalized]; ok {
		return v, true
	}

	if key, ok := longestMatch(m, func(key string) bool {
		return strings.Contains(key, normalized) || strings.Contains(normalized, key)
	}); ok {
		return m[key], true
	}

	for _, token := range strings.Fields(normalized) {
		if len(token) <= 2 {
			continue
		}
		if key, ok := longestMatch(m, func(key string) bool {
			return strings.Contains(key, token)
		}); ok {
			return m[key], true
		}
	}

	return zero, false
}

// longestMatch returns the longest key satisfying the predicate.
func longestMatch[T any](m map[string]T, match func(string) bool) (string, bool) {
	var best string
	found := false
	for key := range m {
		if !match(key) {
			continue
		}
		if !found || len(key) > len(best) || (len(key) == len(best) && key < best) {
			best = key
			found = true
		}
	}
	return best, found
}
