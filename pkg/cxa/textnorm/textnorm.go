// Package textnorm maps raw review text to a canonical lowercase,
// alphabetic-only token stream shared by the keyword extractor and the
// theme matcher's rendering helpers.
package textnorm

import (
	"strings"
	"unicode"
)

// Tokens splits text into lowercase alphabetic tokens. Every rune
// outside the working alphabet acts as a separator, so tokens never
// contain digits or punctuation and are never empty. Empty input yields
// an empty slice.
func Tokens(text string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) {
			current.WriteRune(unicode.ToLower(r))
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// Clean returns the normalized text as a single space-joined string,
// the form the n-gram builder and document-frequency statistics consume.
func Clean(text string) string {
	return strings.Join(Tokens(text), " ")
}
