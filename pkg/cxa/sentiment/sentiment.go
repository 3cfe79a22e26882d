// Package sentiment scores review text with a lexicon/rule analyzer in
// the VADER style: per-word valences from a polarity lexicon, adjusted
// by negation, intensifiers, capitalization emphasis and punctuation
// emphasis, folded into a bounded compound score.
//
// Scoring operates on the raw text. Normalizing first would destroy the
// punctuation and capitalization cues the rules depend on.
//
// An Analyzer is stateless per call and safe for concurrent use.
package sentiment

import (
	"math"
	"strings"
	"unicode"
)

// Label is the 3-way classification of a compound score.
type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// Classification thresholds and rule constants. The thresholds are part
// of the output contract; the rule constants follow the VADER scale.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05

	boostIncr     = 0.293  // intensifier increment
	capsIncr      = 0.733  // ALL-CAPS emphasis
	negationFlip  = -0.74  // negation scalar
	normAlpha     = 15.0   // compound normalization constant
	exclamIncr    = 0.292  // per exclamation mark
	maxExclam     = 4      // emphasis saturates after four marks
	negationScope = 3      // tokens a negator or booster reaches ahead
)

// Classify maps a compound score to its label. Thresholds are exact:
// >= 0.05 positive, <= -0.05 negative, neutral otherwise.
func Classify(compound float64) Label {
	switch {
	case compound >= positiveThreshold:
		return Positive
	case compound <= negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// Result holds the sentiment scores for one review. Pos, Neg and Neu
// are non-negative and sum to 1; Compound is in [-1, 1].
type Result struct {
	Pos      float64
	Neg      float64
	Neu      float64
	Compound float64
	Label    Label
}

// Analyzer scores text against a fixed polarity lexicon.
type Analyzer struct {
	lexicon Lexicon
}

// NewAnalyzer creates an analyzer over the given lexicon. A nil lexicon
// falls back to the embedded default.
func NewAnalyzer(lex Lexicon) *Analyzer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &Analyzer{lexicon: lex}
}

// neutralResult is the defined default for empty input: not an error,
// so one blank review never aborts a batch.
func neutralResult() Result {
	return Result{Neu: 1, Label: Neutral}
}

// Score computes the sentiment of text. Empty or blank input returns
// the neutral default {pos:0, neg:0, neu:1, compound:0}.
func (a *Analyzer) Score(text string) Result {
	if strings.TrimSpace(text) == "" {
		return neutralResult()
	}

	words := strings.Fields(text)
	allCaps := wholeTextCaps(words)

	valences := make([]float64, 0, len(words))
	neutral := 0
	for i, word := range words {
		clean := stripToken(word)
		if clean == "" {
			continue
		}
		if _, isNeg := negators[clean]; isNeg {
			valences = append(valences, 0)
			continue
		}
		if _, isBoost := boosters[clean]; isBoost {
			valences = append(valences, 0)
			continue
		}

		valence, ok := a.lexicon[clean]
		if !ok {
			neutral++
			continue
		}

		if !allCaps && isAllCaps(word) {
			if valence > 0 {
				valence += capsIncr
			} else {
				valence -= capsIncr
			}
		}
		valence = a.applyContext(words, i, valence)
		valences = append(valences, valence)
	}

	var sum float64
	for _, v := range valences {
		sum += v
	}

	amp := exclamationEmphasis(text) + questionEmphasis(text)
	if sum > 0 {
		sum += amp
	} else if sum < 0 {
		sum -= amp
	}

	compound := sum / math.Sqrt(sum*sum+normAlpha)
	if compound > 1 {
		compound = 1
	} else if compound < -1 {
		compound = -1
	}

	pos, neg, neu := siftScores(valences, neutral, amp)
	return Result{
		Pos:      pos,
		Neg:      neg,
		Neu:      neu,
		Compound: compound,
		Label:    Classify(compound),
	}
}

// applyContext adjusts a scored word's valence for boosters and
// negators among the preceding tokens, nearest first, with the booster
// effect decaying with distance.
func (a *Analyzer) applyContext(words []string, idx int, valence float64) float64 {
	for dist := 1; dist <= negationScope && idx-dist >= 0; dist++ {
		prev := stripToken(words[idx-dist])
		if incr, ok := boosters[prev]; ok {
			if valence < 0 {
				incr = -incr
			}
			switch dist {
			case 2:
				incr *= 0.95
			case 3:
				incr *= 0.9
			}
			valence += incr
		}
	}
	for dist := 1; dist <= negationScope && idx-dist >= 0; dist++ {
		prev := stripToken(words[idx-dist])
		if _, ok := negators[prev]; ok {
			return valence * negationFlip
		}
	}
	return valence
}

// siftScores converts per-word valences into the normalized pos/neg/neu
// split. The +1/-1 offsets and the punctuation amplifier on the
// dominant side follow the reference rule set; the three shares always
// sum to 1.
func siftScores(valences []float64, neutral int, amp float64) (pos, neg, neu float64) {
	var posSum, negSum float64
	for _, v := range valences {
		switch {
		case v > 0:
			posSum += v + 1
		case v < 0:
			negSum += v - 1
		default:
			neutral++
		}
	}

	if posSum > -negSum {
		posSum += amp
	} else if posSum < -negSum {
		negSum -= amp
	}

	total := posSum - negSum + float64(neutral)
	if total == 0 {
		return 0, 0, 1
	}
	return posSum / total, -negSum / total, float64(neutral) / total
}

// exclamationEmphasis amplifies by 0.292 per '!', saturating at four.
func exclamationEmphasis(text string) float64 {
	n := strings.Count(text, "!")
	if n > maxExclam {
		n = maxExclam
	}
	return float64(n) * exclamIncr
}

// questionEmphasis follows the reference schedule: no effect below two
// marks, 0.18 each for two or three, a flat 0.96 beyond.
func questionEmphasis(text string) float64 {
	n := strings.Count(text, "?")
	switch {
	case n < 2:
		return 0
	case n <= 3:
		return float64(n) * 0.18
	default:
		return 0.96
	}
}

// stripToken lowercases a token and trims surrounding punctuation,
// keeping internal apostrophes so contractions survive lookup.
func stripToken(word string) string {
	lower := strings.ToLower(word)
	return strings.TrimFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// isAllCaps reports whether a word is an emphasis candidate: at least
// two letters, all uppercase.
func isAllCaps(word string) bool {
	letters := 0
	for _, r := range word {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters >= 2
}

// wholeTextCaps reports whether every lettered token is all-caps, in
// which case capitalization carries no differential emphasis.
func wholeTextCaps(words []string) bool {
	lettered := 0
	for _, w := range words {
		if !hasLetter(w) {
			continue
		}
		lettered++
		if !isAllCaps(w) {
			return false
		}
	}
	return lettered > 0
}

func hasLetter(w string) bool {
	for _, r := range w {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
