package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ligatures are applied in order after case folding, before diacritic
// stripping. NFD does not decompose these, so they need explicit handling.
// ß is deliberately absent: it stays as-is.
var ligatures = []struct {
	from string
	to   string
}{
	{"æ", "ae"},
	{"œ", "oe"},
	{"ø", "o"},
	{"ł", "l"},
	{"đ", "d"},
}

// stripMarks removes combining diacritical marks via NFD decomposition.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText prepares text for storage and comparison:
//   - converts to lowercase
//   - rewrites Latin ligatures and barred letters (æ→ae, œ→oe, ø→o, ł→l, đ→d)
//   - strips diacritics from Latin-script runes (é→e)
//
// Non-Latin scripts (Cyrillic and others) only get case folding; their
// combining marks are left untouched. The function is pure, never fails,
// and is idempotent.
func NormalizeText(text string) string {
	text = strings.ToLower(text)
	for _, l := range ligatures {
		if strings.Contains(text, l.from) {
			text = strings.ReplaceAll(text, l.from, l.to)
		}
	}

	// Compose first so decomposed input (e + U+0301) is stripped the same
	// way as precomposed é.
	text = norm.NFC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 0x80 || !unicode.Is(unicode.Latin, r) {
			b.WriteRune(r)
			continue
		}
		stripped, _, err := transform.String(stripMarks, string(r))
		if err != nil {
			b.WriteRune(r)
			continue
		}
		b.WriteString(stripped)
	}
	return b.String()
}
