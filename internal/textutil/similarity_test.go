package textutil

import (
	"math"
	"testing"
)

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "episode one", "episode one", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "abc", "", 0},
		{"disjoint", "abc", "xyz", 0},
		{"one substitution", "abcd", "abxd", 0.75},
		{"half overlap", "ab", "ac", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimilarityRatio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SimilarityRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityRatioSingleTypo(t *testing.T) {
	// A one-character typo in a long subtitle stays above the duplicate threshold.
	got := SimilarityRatio("der tag an dem die welt stillstand", "der tag an dem die welt stilstand ")
	if got <= 0.95 {
		t.Fatalf("expected ratio above 0.95, got %v", got)
	}
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"abcdef", 3, "abc"},
		{"abc", 10, "abc"},
		{"abc", 0, ""},
		{"abc", -1, ""},
		{"", 2, ""},
	}
	for _, tt := range tests {
		if got := Prefix(tt.s, tt.n); got != tt.want {
			t.Errorf("Prefix(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}
