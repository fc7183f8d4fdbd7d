package textutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Tatort", "tatort"},
		{"umlauts", "Fräulein Müller öffnet", "fraulein muller offnet"},
		{"uppercase umlauts", "ÄRGER ÜBER ÖL", "arger uber ol"},
		{"sharp s", "Straße", "strasse"},
		{"colon stripped", "Fräulein:", "fraulein"},
		{"colon joins words", "Teil:Zwei", "teilzwei"},
		{"separators collapse", "Show - Episode One.ts", "show episode one ts"},
		{"leading and trailing kept", "  Show  ", " show "},
		{"digits kept", "Folge 12 (3/4)", "folge 12 3 4 "},
		{"other accents become space", "Café", "caf "},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Fräulein:",
		"Die Sendung mit der Maus_2024-01-07_09-30.ts",
		"  --  ",
		"ÄÖÜß:::abc",
		"Ça va? Ünd dann?",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeCaseInsensitive(t *testing.T) {
	pairs := [][2]string{
		{"Episode One", "EPISODE ONE"},
		{"Fräulein", "FRÄULEIN"},
		{"straße", "STRAẞE"},
	}
	for _, pair := range pairs {
		if Normalize(pair[0]) != Normalize(pair[1]) {
			t.Errorf("expected %q and %q to normalize equally: %q vs %q",
				pair[0], pair[1], Normalize(pair[0]), Normalize(pair[1]))
		}
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank(Normalize("?!")) {
		t.Error("expected punctuation-only input to be blank after normalization")
	}
	if IsBlank(Normalize("a")) {
		t.Error("expected single letter to be non-blank")
	}
}
