package crawler

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// normalizeCaseless maps a string to a canonical form for caseless
// comparison: full Unicode case folding followed by NFKD normalization.
// Folding alone is not enough because visually equal strings can differ
// in encoding form (precomposed vs. decomposed accents, compatibility
// characters), so both strings are pushed through the same normalization.
func normalizeCaseless(s string) string {
	return norm.NFKD.String(cases.Fold().String(s))
}

// caselessEqual compares two strings ignoring case and encoding form.
func caselessEqual(left, right string) bool {
	return normalizeCaseless(left) == normalizeCaseless(right)
}
