// Package keywords computes corpus-relative term importance per review
// group and fast frequency summaries per single review.
//
// The corpus extractor is a batch operation: it needs every document of
// a group materialized before document-frequency statistics exist. The
// document extractor is independent of the corpus step and never waits
// on it.
package keywords

import (
	"math"
	"sort"
	"strings"

	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/textnorm"
)

// Config controls the corpus-level vocabulary construction.
type Config struct {
	MinDocFreq int     // candidate must appear in at least this many documents
	MaxDocFrac float64 // and in at most this fraction of documents
	MaxVocab   int     // vocabulary cap, by TF-IDF importance
	MaxNGram   int     // candidate terms are 1..MaxNGram grams
}

// DefaultConfig returns the gates the extractor ships with: terms in at
// least 2 documents and at most 80% of them, vocabulary capped at 500,
// 1- to 3-grams.
func DefaultConfig() Config {
	return Config{
		MinDocFreq: 2,
		MaxDocFrac: 0.8,
		MaxVocab:   500,
		MaxNGram:   3,
	}
}

// TermScore is one ranked vocabulary term with its average TF-IDF
// weight across the group.
type TermScore struct {
	Term  string
	Score float64
}

// Extractor extracts keywords using a fixed stop-word set. It is
// read-only after construction and safe for concurrent use.
type Extractor struct {
	stopwords map[string]struct{}
	cfg       Config
}

// NewExtractor creates an extractor with the given stop-word list. An
// optional Config overrides the default gates; nil stopwords falls back
// to the embedded English list.
func NewExtractor(stopwords []string, cfg ...Config) *Extractor {
	if stopwords == nil {
		stopwords = DefaultStopwords()
	}
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}

	c := DefaultConfig()
	if len(cfg) > 0 {
		c = cfg[0]
	}
	return &Extractor{stopwords: stops, cfg: c}
}

// CorpusKeywords ranks the group's vocabulary by average TF-IDF weight,
// descending, ties broken lexicographically. Groups with fewer than two
// documents, or whose vocabulary is emptied by the frequency gates,
// yield an empty result rather than an error.
func (e *Extractor) CorpusKeywords(docs []string, topN int) []TermScore {
	n := len(docs)
	if n < e.cfg.MinDocFreq || n < 2 {
		return nil
	}

	// Per-document term counts over 1..MaxNGram grams of the cleaned,
	// stop-word-free token stream.
	counts := make([]map[string]int, n)
	for i, doc := range docs {
		counts[i] = e.termCounts(doc)
	}

	// Document frequency across the group.
	df := make(map[string]int)
	for _, c := range counts {
		for term := range c {
			df[term]++
		}
	}

	// Frequency gates: drop noise terms and near-universal terms.
	maxDF := e.cfg.MaxDocFrac * float64(n)
	idf := make(map[string]float64)
	for term, d := range df {
		if d < e.cfg.MinDocFreq || float64(d) > maxDF {
			continue
		}
		idf[term] = math.Log(float64(1+n)/float64(1+d)) + 1
	}
	if len(idf) == 0 {
		return nil
	}

	e.capVocabulary(counts, df, idf)

	// Average TF-IDF weight per term over L2-normalized document
	// vectors. Documents that miss a term contribute zero, so the
	// divisor is always the group size.
	sums := make(map[string]float64, len(idf))
	for _, c := range counts {
		var norm float64
		for term, tf := range c {
			w, ok := idf[term]
			if !ok {
				continue
			}
			weight := float64(tf) * w
			norm += weight * weight
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for term, tf := range c {
			w, ok := idf[term]
			if !ok {
				continue
			}
			sums[term] += float64(tf) * w / norm
		}
	}

	terms := make([]TermScore, 0, len(sums))
	for term, sum := range sums {
		terms = append(terms, TermScore{Term: term, Score: sum / float64(n)})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Score != terms[j].Score {
			return terms[i].Score > terms[j].Score
		}
		return terms[i].Term < terms[j].Term
	})

	if topN > 0 && len(terms) > topN {
		terms = terms[:topN]
	}
	return terms
}

// capVocabulary trims idf in place to the MaxVocab most important
// terms, importance being total term frequency times IDF. Ties break
// lexicographically so the cap is reproducible.
func (e *Extractor) capVocabulary(counts []map[string]int, df map[string]int, idf map[string]float64) {
	if e.cfg.MaxVocab <= 0 || len(idf) <= e.cfg.MaxVocab {
		return
	}

	totalTF := make(map[string]int, len(idf))
	for _, c := range counts {
		for term, tf := range c {
			if _, ok := idf[term]; ok {
				totalTF[term] += tf
			}
		}
	}

	ranked := make([]TermScore, 0, len(idf))
	for term, w := range idf {
		ranked = append(ranked, TermScore{Term: term, Score: float64(totalTF[term]) * w})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Term < ranked[j].Term
	})

	for _, ts := range ranked[e.cfg.MaxVocab:] {
		delete(idf, ts.Term)
	}
}

// DocumentKeywords returns the topN most frequent tokens of a single
// document, ties broken by first occurrence. Stop-words and tokens of
// length <= 2 are dropped. Empty input yields an empty result.
func (e *Extractor) DocumentKeywords(doc string, topN int) []string {
	tokens := e.filterTokens(textnorm.Tokens(doc), true)
	if len(tokens) == 0 {
		return nil
	}

	type entry struct {
		count int
		first int
	}
	freq := make(map[string]*entry, len(tokens))
	order := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		if ent, ok := freq[tok]; ok {
			ent.count++
			continue
		}
		freq[tok] = &entry{count: 1, first: i}
		order = append(order, tok)
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := freq[order[i]], freq[order[j]]
		if a.count != b.count {
			return a.count > b.count
		}
		return a.first < b.first
	})

	if topN > 0 && len(order) > topN {
		order = order[:topN]
	}
	return order
}

// termCounts builds the 1..MaxNGram gram counts of one document after
// normalization and stop-word removal.
func (e *Extractor) termCounts(doc string) map[string]int {
	tokens := e.filterTokens(textnorm.Tokens(doc), false)
	counts := make(map[string]int)
	for n := 1; n <= e.cfg.MaxNGram; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			counts[strings.Join(tokens[i:i+n], " ")]++
		}
	}
	return counts
}

// filterTokens removes stop-words, and with dropShort also tokens of
// length <= 2 (the document-level summary rule).
func (e *Extractor) filterTokens(tokens []string, dropShort bool) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stop := e.stopwords[tok]; stop {
			continue
		}
		if dropShort && len(tok) <= 2 {
			continue
		}
		out = append(out, tok)
	}
	return out
}
