package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	variantSuffixRe = regexp.MustCompile(`^[0-9]+[a-z]?$`)
	slugSepRe       = regexp.MustCompile(`[_\s]+`)
	slugInvalidRe   = regexp.MustCompile(`[^a-z0-9-]`)
	slugHyphenRe    = regexp.MustCompile(`-+`)
)

// RemoveAccents removes diacritical marks from a string (e.g., "Kovács" -> "Kovacs").
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// NormalizeName normalizes a display name for comparison: lowercase, no
// diacritics, internal whitespace collapsed, trimmed.
func NormalizeName(name string) string {
	name = RemoveAccents(name)
	name = strings.ToLower(name)
	name = whitespaceRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// ExtractNameFromFilename derives a comparable name from a raw filename.
// It drops the extension, turns underscores, dashes, and dots into spaces,
// and strips a trailing "take 2" style variant suffix (a lone number or a
// number plus single letter).
func ExtractNameFromFilename(filename string) string {
	name := filename
	if lastDot := strings.LastIndex(name, "."); lastDot > 0 {
		name = name[:lastDot]
	}
	name = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name)
	name = strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " "))

	words := strings.Fields(name)
	for len(words) > 1 && variantSuffixRe.MatchString(strings.ToLower(words[len(words)-1])) {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// NormalizeSlug normalizes an input into a hyphenated slug: diacritics
// stripped, lowercased, separators collapsed to single hyphens, anything
// outside [a-z0-9-] removed, edge hyphens trimmed. Used for the strict
// first-pass match against machine-generated layer names.
func NormalizeSlug(input string) string {
	s := RemoveAccents(input)
	s = strings.ToLower(s)
	s = slugSepRe.ReplaceAllString(s, "-")
	s = slugInvalidRe.ReplaceAllString(s, "")
	s = slugHyphenRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
