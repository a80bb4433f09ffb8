package scrape

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// foldAccents removes diacritics so that "décembre" and "decembre" or
// "AIX-EN-SAVOIE" spellings with stray accents compare equal.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// foldKey uppercases and strips accents, the comparison form used for club
// keyword matching and month-name lookup.
func foldKey(s string) string {
	return strings.ToUpper(foldAccents(s))
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
