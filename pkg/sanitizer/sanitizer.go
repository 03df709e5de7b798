// Package sanitizer normalizes hacker-supplied text before validation and
// storage. All functions are idempotent and never return errors; invalid
// input degrades to an empty string.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims, collapses runs of whitespace to a single space,
// and strips control characters.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		case unicode.IsControl(r):
			// dropped
		default:
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeName cleans person and team names.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeFreeText cleans multi-line descriptions, keeping newlines.
func NormalizeFreeText(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, TrimAndNormalize(line))
	}
	joined := strings.Join(out, "\n")
	return strings.Trim(joined, "\n")
}

// NormalizeTag lowercases and cleans a single tag.
func NormalizeTag(tag string) string {
	return strings.ToLower(TrimAndNormalize(tag))
}

// NormalizeTags applies NormalizeTag across a slice, dropping empties and
// duplicates while preserving order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, t := range tags {
		s := NormalizeTag(t)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
