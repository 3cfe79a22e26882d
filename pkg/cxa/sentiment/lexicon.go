package sentiment

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
)

//go:embed lexicon.txt
var defaultLexiconRaw string

// Lexicon maps lowercase terms to polarity valences on the [-4, 4]
// scale. It is read-only after construction and safe for concurrent use.
type Lexicon map[string]float64

// ParseLexicon parses tab-separated "term<TAB>valence" lines. Blank
// lines and lines starting with '#' are ignored; a malformed line is an
// error because a silently truncated lexicon would skew every score.
func ParseLexicon(raw string) (Lexicon, error) {
	lex := make(Lexicon, 256)
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("lexicon line %d: expected term<TAB>valence, got %q", i+1, line)
		}
		valence, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", i+1, err)
		}
		lex[strings.ToLower(strings.TrimSpace(parts[0]))] = valence
	}
	if len(lex) == 0 {
		return nil, fmt.Errorf("lexicon is empty")
	}
	return lex, nil
}

// DefaultLexicon returns the embedded review-polarity lexicon.
func DefaultLexicon() Lexicon {
	lex, err := ParseLexicon(defaultLexiconRaw)
	if err != nil {
		// The embedded resource is validated by tests; a parse failure
		// here means a broken build.
		panic(err)
	}
	return lex
}

// negators flip the valence of the word they scope over.
var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "neither": {}, "nor": {},
	"cannot": {}, "cant": {}, "can't": {}, "dont": {}, "don't": {},
	"doesnt": {}, "doesn't": {}, "didnt": {}, "didn't": {},
	"isnt": {}, "isn't": {}, "wasnt": {}, "wasn't": {},
	"wont": {}, "won't": {}, "wouldnt": {}, "wouldn't": {},
	"couldnt": {}, "couldn't": {}, "shouldnt": {}, "shouldn't": {},
	"aint": {}, "ain't": {}, "without": {},
}

// boosters intensify (positive increment) or dampen (negative
// increment) the valence of a nearby scored word.
var boosters = map[string]float64{
	"absolutely": boostIncr,
	"completely": boostIncr,
	"extremely":  boostIncr,
	"highly":     boostIncr,
	"incredibly": boostIncr,
	"really":     boostIncr,
	"so":         boostIncr,
	"super":      boostIncr,
	"totally":    boostIncr,
	"very":       boostIncr,

	"almost":   -boostIncr,
	"barely":   -boostIncr,
	"hardly":   -boostIncr,
	"kind":     -boostIncr, // "kind of"
	"kinda":    -boostIncr,
	"slightly": -boostIncr,
	"somewhat": -boostIncr,
	"sort":     -boostIncr, // "sort of"
}
