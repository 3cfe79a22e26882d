// Package store defines persistence for enriched reviews and per-bank
// corpus keywords. Implementations live in the sqlite and memstore
// subpackages.
package store

import (
	"context"

	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/keywords"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/review"
)

// Store persists the enrichment output of a pipeline run.
type Store interface {
	Close() error

	// Enriched reviews. UpsertReview replaces an existing record with
	// the same ID, so re-running a pipeline over the same input is
	// idempotent.
	UpsertReview(ctx context.Context, runID string, r review.Enriched) error
	GetReview(ctx context.Context, id string) (review.Enriched, error)
	ListByBank(ctx context.Context, bank string) ([]review.Enriched, error)
	ListAll(ctx context.Context) ([]review.Enriched, error)
	Banks(ctx context.Context) ([]string, error)

	// Corpus keywords, one ranked list per bank. Replace semantics:
	// a new run's list fully supersedes the previous one.
	ReplaceGroupKeywords(ctx context.Context, bank string, terms []keywords.TermScore) error
	GroupKeywords(ctx context.Context, bank string) ([]keywords.TermScore, error)
}
