package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxSearchTitleLength bounds the query sent to the metadata search service.
const MaxSearchTitleLength = 120

var (
	// Upload boilerplate that never appears in a canonical film title.
	boilerplatePattern = regexp.MustCompile(`(?i)\b(full movie|full-film|full film|hd|4k|480p|720p|1080p|2160p|english)\b`)
	// A segment opened and closed by any of [ ] ( ) |, e.g. "(2020)" or "| Drama |".
	delimitedSegmentPattern = regexp.MustCompile(`[\[\]()|].*?[\[\]()|]`)
	whitespacePattern       = regexp.MustCompile(`\s+`)
)

// SanitizeSearchTitle turns a noisy upload title into a search-friendly query.
// Stylized and fullwidth glyphs are folded with NFKC first, then boilerplate
// tokens and bracketed segments are removed, whitespace is collapsed, and the
// result is truncated to MaxSearchTitleLength characters.
func SanitizeSearchTitle(title string) string {
	t := norm.NFKC.String(title)
	t = boilerplatePattern.ReplaceAllString(t, "")
	t = delimitedSegmentPattern.ReplaceAllString(t, " ")
	t = whitespacePattern.ReplaceAllString(t, " ")
	t = strings.TrimSpace(t)
	return strings.TrimSpace(Truncate(t, MaxSearchTitleLength))
}

// Truncate shortens value to at most limit characters without splitting a rune.
func Truncate(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return string(runes[:limit])
}
