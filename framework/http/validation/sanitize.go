package validation

import (
	"regexp"
	"strings"
)

// tagPattern matches anything that looks like an HTML tag.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Sanitize strips tag-like substrings, removes every character outside the
// printable ASCII range (0x20–0x7E) and trims surrounding whitespace.
//
// Sanitize(Sanitize(s)) == Sanitize(s) for every s: a '<' that survives the
// tag pass has no '>' anywhere after it, and the later passes only delete.
func Sanitize(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
