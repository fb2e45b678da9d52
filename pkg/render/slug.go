// slug.go — Filesystem-safe identifiers derived from sticker text.
package render

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slugify derives a filename-safe slug from free text: NFKD-normalize,
// keep letters and digits lowercased, turn separators into dashes, collapse
// runs. May return "" (e.g. for punctuation-only text); the caller picks an
// index-based fallback then.
func Slugify(text string) string {
	normalized := norm.NFKD.String(text)

	var b strings.Builder
	for _, r := range normalized {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-_ ")
}
