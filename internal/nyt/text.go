package nyt

import (
	"slices"
	"strings"
	"unicode"
)

const (
	lineSeparator    = "\n"
	sectionSeparator = ";"
)

// Clean replaces every Unicode separator rune (category Z) with an ordinary
// space and trims the result. It reports false when nothing is left.
//
// Newlines are not in category Z, so multi-line text keeps its lines.
func Clean(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Z, r) {
			return ' '
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	return s, s != ""
}

// splitCleaned cleans s and splits it on sep. Interior empty elements are
// kept; trailing empty elements are dropped.
func splitCleaned(s, sep string, trim bool) []string {
	cleaned, ok := Clean(s)
	if !ok {
		return []string{}
	}
	parts := strings.Split(cleaned, sep)
	if trim {
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func splitLines(s string) []string {
	return splitCleaned(s, lineSeparator, false)
}

func splitSections(s string) []string {
	return splitCleaned(s, sectionSeparator, true)
}

// orEmpty returns a copy of s, or an empty slice when s is nil.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}
