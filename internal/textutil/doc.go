// Package textutil provides text canonicalization and similarity scoring for
// recording filenames, show titles, and episode subtitles.
//
// The primary use cases are:
//   - Normalizing free-form names into a lowercase ASCII form that can be
//     compared across filename conventions
//   - Scoring how closely two normalized strings agree
//
// Normalization transliterates the German umlauts and sharp s, drops colons,
// and reduces every other non-alphanumeric character to a single space.
// Similarity is the longest-matching-blocks ratio (2*M/T) over characters.
package textutil
