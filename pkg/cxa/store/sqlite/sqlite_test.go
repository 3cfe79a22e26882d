package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/internalerr"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/keywords"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/review"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestReviewRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	in := review.Enriched{
		Review: review.Review{
			ID:     "01HTESTREVIEW",
			Bank:   "CBE",
			Source: "Google Play",
			Text:   "Great app, fast transfer!",
			Rating: 5,
			Date:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		SentimentPos:   0.6,
		SentimentNeg:   0.0,
		SentimentNeu:   0.4,
		SentimentScore: 0.77,
		SentimentLabel: "positive",
		Themes:         []string{"Transaction Performance"},
		TopKeywords:    []string{"great", "app", "fast"},
	}

	if err := s.UpsertReview(ctx, "run-1", in); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := s.GetReview(ctx, in.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Bank != in.Bank || got.Text != in.Text || got.Rating != in.Rating {
		t.Errorf("review fields lost: %+v", got)
	}
	if got.SentimentScore != in.SentimentScore || got.SentimentLabel != in.SentimentLabel {
		t.Errorf("sentiment fields lost: %+v", got)
	}
	if len(got.Themes) != 1 || got.Themes[0] != "Transaction Performance" {
		t.Errorf("themes lost: %v", got.Themes)
	}
	if len(got.TopKeywords) != 3 || got.TopKeywords[0] != "great" {
		t.Errorf("keywords lost: %v", got.TopKeywords)
	}
	if !got.Date.Equal(in.Date) {
		t.Errorf("date lost: %v", got.Date)
	}
}

func TestGetMissingReview(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetReview(context.Background(), "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	r := review.Enriched{
		Review:         review.Review{ID: "r1", Bank: "BOA", Source: "Google Play", Text: "ok", Rating: 3},
		SentimentNeu:   1,
		SentimentLabel: "neutral",
	}
	for i := 0; i < 2; i++ {
		if err := s.UpsertReview(ctx, "run-1", r); err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 record after re-run, got %d", len(all))
	}
}

func TestListByBankAndBanks(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for i, bank := range []string{"CBE", "BOA", "CBE"} {
		r := review.Enriched{
			Review:         review.Review{ID: string(rune('a' + i)), Bank: bank, Source: "Google Play", Text: "t", Rating: 3},
			SentimentNeu:   1,
			SentimentLabel: "neutral",
		}
		if err := s.UpsertReview(ctx, "run-1", r); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	cbe, err := s.ListByBank(ctx, "CBE")
	if err != nil {
		t.Fatalf("list by bank: %v", err)
	}
	if len(cbe) != 2 {
		t.Errorf("expected 2 CBE records, got %d", len(cbe))
	}

	banks, err := s.Banks(ctx)
	if err != nil {
		t.Fatalf("banks: %v", err)
	}
	if len(banks) != 2 || banks[0] != "BOA" || banks[1] != "CBE" {
		t.Errorf("unexpected banks: %v", banks)
	}
}

func TestGroupKeywordsReplace(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first := []keywords.TermScore{{Term: "transfer", Score: 0.4}, {Term: "login failed", Score: 0.3}}
	if err := s.ReplaceGroupKeywords(ctx, "CBE", first); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.GroupKeywords(ctx, "CBE")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got[0].Term != "transfer" || got[1].Term != "login failed" {
		t.Errorf("rank order lost: %v", got)
	}

	if err := s.ReplaceGroupKeywords(ctx, "CBE", first[:1]); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	got, err = s.GroupKeywords(ctx, "CBE")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("replace should supersede, got %v", got)
	}

	empty, err := s.GroupKeywords(ctx, "Unknown")
	if err != nil {
		t.Fatalf("get unknown: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("unknown bank should have no keywords, got %v", empty)
	}
}
