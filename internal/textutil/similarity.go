package textutil

import (
	"github.com/pmezard/go-difflib/difflib"
)

// SimilarityRatio returns 2*M/T where M is the number of characters in the
// longest matching blocks of a and b and T is the combined length. Two empty
// strings are identical (1.0). The ratio is order sensitive in the same way
// as a sequence matcher seeded with a then b.
func SimilarityRatio(a, b string) float64 {
	return difflib.NewMatcher(splitChars(a), splitChars(b)).Ratio()
}

func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Prefix returns at most n leading bytes of s. Normalized strings are pure
// ASCII so byte and character offsets agree.
func Prefix(s string, n int) string {
	if n >= len(s) {
		return s
	}
	if n <= 0 {
		return ""
	}
	return s[:n]
}
