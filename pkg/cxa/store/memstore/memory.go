// Package memstore is an in-memory store implementation for tests and
// single-run pipelines that do not need persistence.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/internalerr"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/keywords"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/review"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/store"
)

type memStore struct {
	mu       sync.RWMutex
	reviews  map[string]review.Enriched
	keywords map[string][]keywords.TermScore
}

// New creates an empty in-memory store.
func New() store.Store {
	return &memStore{
		reviews:  make(map[string]review.Enriched),
		keywords: make(map[string][]keywords.TermScore),
	}
}

func (m *memStore) Close() error { return nil }

func (m *memStore) UpsertReview(ctx context.Context, runID string, r review.Enriched) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[r.ID] = r
	return nil
}

func (m *memStore) GetReview(ctx context.Context, id string) (review.Enriched, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reviews[id]
	if !ok {
		return review.Enriched{}, fmt.Errorf("review %s: %w", id, internalerr.ErrNotFound)
	}
	return r, nil
}

func (m *memStore) ListByBank(ctx context.Context, bank string) ([]review.Enriched, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []review.Enriched
	for _, r := range m.reviews {
		if r.Bank == bank {
			out = append(out, r)
		}
	}
	sortByID(out)
	return out, nil
}

func (m *memStore) ListAll(ctx context.Context) ([]review.Enriched, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]review.Enriched, 0, len(m.reviews))
	for _, r := range m.reviews {
		out = append(out, r)
	}
	sortByID(out)
	return out, nil
}

func (m *memStore) Banks(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]struct{})
	var banks []string
	for _, r := range m.reviews {
		if _, ok := seen[r.Bank]; ok {
			continue
		}
		seen[r.Bank] = struct{}{}
		banks = append(banks, r.Bank)
	}
	sort.Strings(banks)
	return banks, nil
}

func (m *memStore) ReplaceGroupKeywords(ctx context.Context, bank string, terms []keywords.TermScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keywords[bank] = append([]keywords.TermScore(nil), terms...)
	return nil
}

func (m *memStore) GroupKeywords(ctx context.Context, bank string) ([]keywords.TermScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]keywords.TermScore(nil), m.keywords[bank]...), nil
}

func sortByID(recs []review.Enriched) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
}
