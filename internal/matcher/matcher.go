// Package matcher decides whether a recording is a duplicate of an episode
// that is already known for a show.
package matcher

import (
	"strings"

	"recsweep/internal/textutil"
)

// DefaultThreshold is the similarity a subtitle must exceed to count as known.
const DefaultThreshold = 0.95

// Decision explains the outcome of matching one filename.
type Decision struct {
	// Keep is true unless the file was confidently identified as a known episode.
	Keep bool
	// TitleFound reports whether the normalized title occurs in the filename.
	TitleFound bool
	// Suffix is the normalized filename text following the title.
	Suffix string
	// Subtitle is the known subtitle that matched, if any.
	Subtitle string
	// Similarity is the ratio of the matching subtitle, or the best ratio
	// seen when nothing matched.
	Similarity float64
}

// Matcher compares recording filenames against known subtitles.
type Matcher struct {
	Threshold float64
}

// New returns a Matcher using threshold, or DefaultThreshold when threshold
// is not in (0, 1].
func New(threshold float64) Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return Matcher{Threshold: threshold}
}

// KeepFile reports whether filename should be kept using DefaultThreshold.
func KeepFile(filename, title string, subtitles []string) bool {
	return New(DefaultThreshold).Match(filename, title, subtitles).Keep
}

// Match evaluates filename against the subtitles known for title. Subtitles
// are tried in order and the first one above the threshold wins.
func (m Matcher) Match(filename, title string, subtitles []string) Decision {
	normalizedName := textutil.Normalize(filename)
	normalizedTitle := textutil.Normalize(title)

	pos := strings.Index(normalizedName, normalizedTitle)
	if pos < 0 {
		return Decision{Keep: true}
	}

	// Skip the title and the single separator that follows it.
	start := pos + len(normalizedTitle) + 1
	suffix := ""
	if start < len(normalizedName) {
		suffix = normalizedName[start:]
	}

	decision := Decision{Keep: true, TitleFound: true, Suffix: suffix}
	for _, subtitle := range subtitles {
		normalizedSubtitle := textutil.Normalize(subtitle)
		if textutil.IsBlank(normalizedSubtitle) {
			continue
		}
		candidate := textutil.Prefix(suffix, len(normalizedSubtitle))
		ratio := textutil.SimilarityRatio(candidate, normalizedSubtitle)
		if ratio > m.Threshold {
			decision.Keep = false
			decision.Subtitle = subtitle
			decision.Similarity = ratio
			return decision
		}
		if ratio > decision.Similarity {
			decision.Similarity = ratio
		}
	}
	return decision
}
