package keywords

import (
	"testing"
)

func termSet(terms []TermScore) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, ts := range terms {
		set[ts.Term] = true
	}
	return set
}

func TestCorpusKeywordsFrequencyGates(t *testing.T) {
	// "omnipresent" appears in 9 of 10 documents (9/10 > 0.8, gated
	// out), "unicorn" and "speed" in exactly 1 (min_df=2 violated).
	docs := []string{
		"omnipresent transfer money unicorn",
		"omnipresent transfer money",
		"omnipresent transfer speed",
		"omnipresent banking service",
		"omnipresent banking service",
		"omnipresent banking service",
		"omnipresent banking service",
		"omnipresent banking service",
		"omnipresent banking service",
		"banking service",
	}

	e := NewExtractor(nil)
	set := termSet(e.CorpusKeywords(docs, 0))
	if len(set) == 0 {
		t.Fatal("expected a non-empty vocabulary")
	}

	for _, want := range []string{"transfer", "money", "banking", "service", "transfer money"} {
		if !set[want] {
			t.Errorf("expected term %q in vocabulary", want)
		}
	}
	for _, gated := range []string{"unicorn", "speed", "omnipresent"} {
		if set[gated] {
			t.Errorf("term %q should be removed by the frequency gates", gated)
		}
	}
}

func TestCorpusKeywordsOrdering(t *testing.T) {
	docs := []string{
		"transfer transfer transfer fee",
		"transfer transfer fee",
		"support chat",
		"support chat",
	}

	e := NewExtractor(nil)
	terms := e.CorpusKeywords(docs, 0)
	if len(terms) < 2 {
		t.Fatalf("expected several terms, got %v", terms)
	}
	for i := 1; i < len(terms); i++ {
		if terms[i].Score > terms[i-1].Score {
			t.Errorf("scores not descending at %d: %v > %v", i, terms[i].Score, terms[i-1].Score)
		}
		// Equal scores must fall back to lexical order so runs are
		// bit-reproducible.
		if terms[i].Score == terms[i-1].Score && terms[i].Term < terms[i-1].Term {
			t.Errorf("lexical tiebreak violated: %q before %q", terms[i-1].Term, terms[i].Term)
		}
	}
}

func TestCorpusKeywordsTopN(t *testing.T) {
	docs := []string{
		"alpha beta gamma delta",
		"alpha beta gamma delta",
		"alpha beta epsilon zeta",
	}
	e := NewExtractor(nil)
	terms := e.CorpusKeywords(docs, 3)
	if len(terms) != 3 {
		t.Errorf("expected 3 terms, got %d", len(terms))
	}
}

func TestCorpusKeywordsSmallGroup(t *testing.T) {
	e := NewExtractor(nil)

	if terms := e.CorpusKeywords(nil, 10); terms != nil {
		t.Errorf("empty group should yield empty result, got %v", terms)
	}
	if terms := e.CorpusKeywords([]string{"single document only"}, 10); terms != nil {
		t.Errorf("1-document group should yield empty result, got %v", terms)
	}
}

func TestCorpusKeywordsEmptyVocabulary(t *testing.T) {
	// Every term appears in every document, so max_df removes them all.
	docs := []string{
		"identical words everywhere",
		"identical words everywhere",
		"identical words everywhere",
	}
	e := NewExtractor(nil)
	if terms := e.CorpusKeywords(docs, 10); terms != nil {
		t.Errorf("fully saturated vocabulary should yield empty result, got %v", terms)
	}
}

func TestCorpusKeywordsVocabularyCap(t *testing.T) {
	docs := []string{
		"alpha beta gamma delta",
		"alpha beta epsilon zeta",
		"gamma delta epsilon zeta",
	}
	cfg := DefaultConfig()
	cfg.MaxVocab = 2
	e := NewExtractor(nil, cfg)

	terms := e.CorpusKeywords(docs, 0)
	if len(terms) != 2 {
		t.Errorf("vocabulary cap ignored: got %d terms", len(terms))
	}
}

func TestDocumentKeywordsFrequency(t *testing.T) {
	e := NewExtractor(nil)

	got := e.DocumentKeywords("login login crash fast fast fast", 10)
	want := []string{"fast", "login", "crash"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestDocumentKeywordsTiebreak(t *testing.T) {
	e := NewExtractor(nil)

	// beta and alpha tie on count; alpha appeared first.
	got := e.DocumentKeywords("alpha beta alpha beta gamma", 2)
	if len(got) != 2 || got[0] != "alpha" || got[1] != "beta" {
		t.Errorf("ties should break by first occurrence, got %v", got)
	}
}

func TestDocumentKeywordsFilters(t *testing.T) {
	e := NewExtractor(nil)

	if got := e.DocumentKeywords("", 5); got != nil {
		t.Errorf("empty document should yield empty result, got %v", got)
	}
	if got := e.DocumentKeywords("the and is it to", 5); got != nil {
		t.Errorf("pure stop-word document should yield empty result, got %v", got)
	}
	// Tokens of length <= 2 are dropped at the document level.
	if got := e.DocumentKeywords("ok ui app", 5); len(got) != 1 || got[0] != "app" {
		t.Errorf("short tokens should be dropped, got %v", got)
	}
}
