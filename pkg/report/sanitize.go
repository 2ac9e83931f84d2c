package report

import "strings"

// Sanitize drops every rune outside printable ASCII (space through tilde)
// except newline. The core PDF fonts only carry that glyph set, so the loss
// is intentional.
func Sanitize(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || (r >= ' ' && r <= '~') {
			return r
		}
		return -1
	}, text)
}
