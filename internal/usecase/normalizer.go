package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	// Matches parenthesized qualifiers like "(Fresh)" or "(600g/pack)"
	parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)

	// Punctuation noise left after qualifier stripping
	punctuationNoisePattern = regexp.MustCompile(`[()/,\-]`)

	// Punctuation noise inside a single slash-delimited part
	partNoisePattern = regexp.MustCompile(`[(),\-]`)

	// Multiple spaces cleanup
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a product name for comparison: lowercase, unify
// path separators, strip parenthesized qualifiers, replace punctuation
// noise with spaces, collapse whitespace and trim.
//
// The function is pure and idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, `\`, "/")
	s = parentheticalPattern.ReplaceAllString(s, " ")
	s = punctuationNoisePattern.ReplaceAllString(s, " ")
	s = multiSpacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Variants splits a product name on the forward-slash separator and returns
// the cleaned individual parts plus the parts joined without a separator.
// Vendor names sometimes encode multiple sub-products joined by "/"
// ("porkskin/porkfat"); some invoices then drop the delimiter entirely, so
// both the parts and the concatenation are valid match keys.
func Variants(name string) (parts []string, concatenated string) {
	s := strings.ReplaceAll(strings.ToLower(name), `\`, "/")
	for _, seg := range strings.Split(s, "/") {
		seg = parentheticalPattern.ReplaceAllString(seg, " ")
		seg = partNoisePattern.ReplaceAllString(seg, " ")
		seg = multiSpacePattern.ReplaceAllString(seg, " ")
		seg = strings.TrimSpace(seg)
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return parts, strings.Join(parts, "")
}
