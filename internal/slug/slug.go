// Package slug derives canonical URL-safe identifiers from display names.
package slug

import (
	"strings"
	"unicode"
)

// Make lower-cases name, collapses every run of non-alphanumeric characters
// into a single hyphen, and trims hyphens from both ends. It is pure and
// deterministic: the same input always yields the same output.
//
// A name with no alphanumeric characters at all produces "". Callers that
// persist slugs under a uniqueness constraint must treat an empty result as
// invalid input, since two such names would otherwise collide.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingSep := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	return b.String()
}
