// Package sanitize removes invisible code points from free-text input before
// it is compared, validated or persisted.
package sanitize

import "strings"

// invisibles lists zero-width space, zero-width non-joiner, zero-width joiner
// and the byte-order mark.
const invisibles = "\u200B\u200C\u200D\uFEFF"

var replacer = strings.NewReplacer(
	"\u200B", "",
	"\u200C", "",
	"\u200D", "",
	"\uFEFF", "",
)

// Strip returns s without zero-width and BOM code points. Ordinary whitespace
// is kept as-is.
func Strip(s string) string {
	if !strings.ContainsAny(s, invisibles) {
		return s
	}
	return replacer.Replace(s)
}

// StripAll applies Strip to every element and returns a new slice.
func StripAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Strip(s)
	}
	return out
}
