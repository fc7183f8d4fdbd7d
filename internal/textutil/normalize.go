package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	lowerCaser = cases.Lower(language.German)

	// umlautReplacer covers German transliteration only. Other accented
	// characters fall through to the non-alphanumeric rule.
	umlautReplacer = strings.NewReplacer(
		"ß", "ss",
		"ä", "a",
		"ö", "o",
		"ü", "u",
	)

	nonAlphanumericPattern = regexp.MustCompile(`[^a-z0-9]`)
	spaceRunPattern        = regexp.MustCompile(` +`)
)

// Normalize canonicalizes s for comparison. Leading and trailing spaces are
// collapsed but not trimmed. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = lowerCaser.String(s)
	s = umlautReplacer.Replace(s)
	s = strings.ReplaceAll(s, ":", "")
	s = nonAlphanumericPattern.ReplaceAllString(s, " ")
	return spaceRunPattern.ReplaceAllString(s, " ")
}

// IsBlank reports whether a normalized string carries no comparable content.
func IsBlank(normalized string) bool {
	return strings.TrimSpace(normalized) == ""
}
