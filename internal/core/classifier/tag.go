// Package classifier derives categorical tags from entity identifiers and
// assigns each tag a stable display color.
package classifier

import (
	"strings"
	"unicode"
)

// TagLength is the maximum number of letters kept in a tag
const TagLength = 3

// DeriveTag returns up to the first three letters of id, uppercased.
// Digits, punctuation and spaces are ignored, so "Alpha1" and "al-pha" both
// yield "ALP". An id without letters yields the empty tag.
func DeriveTag(id string) string {
	var b strings.Builder
	n := 0
	for _, r := range id {
		if !unicode.IsLetter(r) {
			continue
		}
		b.WriteRune(r)
		n++
		if n == TagLength {
			break
		}
	}
	return strings.ToUpper(b.String())
}
