package keywords

import (
	_ "embed"
	"strings"
)

//go:embed stopwords.txt
var defaultStopwordsRaw string

// DefaultStopwords returns the embedded general-English stop-word list.
func DefaultStopwords() []string {
	var words []string
	for _, line := range strings.Split(defaultStopwordsRaw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	return words
}
