// Package filter narrows extracted paragraphs down to substantive
// normative text, dropping boilerplate, amendment scaffolding and
// quoted insertions.
package filter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinLength is the shortest paragraph considered substantive.
const MinLength = 100

var (
	excludedPrefixes = []string{
		"Done at",
		"It shall apply from",
	}
	excludedSubstrings = []string{
		"is replaced by",
		"is amended ",
		"is repealed with",
		"‘", // left single quotation mark, opens a quoted insertion
		"’",
	}
	excludedSuffixes = []string{
		"is updated.",
		"is deleted.",
		"is removed.",
		"is hereby repealed.",
		"are updated.",
		"are deleted.",
		"are removed.",
	}
)

// Substantive reports whether a paragraph carries normative content
// worth keeping. Amendment directives, signature blocks, quoted
// replacement text and fragments are rejected.
func Substantive(text string) bool {
	if len(text) < MinLength {
		return false
	}
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(text, prefix) {
			return false
		}
	}
	for _, sub := range excludedSubstrings {
		if strings.Contains(text, sub) {
			return false
		}
	}
	for _, suffix := range excludedSuffixes {
		if strings.HasSuffix(text, suffix) {
			return false
		}
	}
	if !strings.HasSuffix(text, ".") {
		return false
	}
	// A sentence starts with a rune that upper-casing leaves unchanged,
	// which admits digits and punctuation alongside capitals.
	first, _ := utf8.DecodeRuneInString(text)
	if first == utf8.RuneError {
		return false
	}
	return unicode.ToUpper(first) == first
}

// Apply keeps the substantive paragraphs from texts, preserving order
// and dropping duplicates.
func Apply(texts []string) []string {
	seen := make(map[string]struct{}, len(texts))
	kept := make([]string, 0, len(texts))
	for _, text := range texts {
		if !Substantive(text) {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		kept = append(kept, text)
	}
	return kept
}
