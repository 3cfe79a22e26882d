// Package cxa is the review enrichment engine facade. It wires the
// normalization, sentiment, keyword and theme stages into a single
// pipeline over raw reviews and fans work out across a bounded worker
// pool.
package cxa

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/internalerr"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/keywords"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/review"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/sentiment"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/store"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/themes"
)

// Engine runs the enrichment pipeline. All stage components are
// read-only after construction, so one Engine serves concurrent calls.
type Engine struct {
	analyzer    *sentiment.Analyzer
	extractor   *keywords.Extractor
	taxonomy    *themes.Taxonomy
	store       store.Store
	docKeywords int
	workers     int
}

// Options configures an Engine instance.
type Options struct {
	Analyzer  *sentiment.Analyzer
	Extractor *keywords.Extractor
	Taxonomy  *themes.Taxonomy

	// Store is optional; Persist fails without one.
	Store store.Store

	// DocKeywords is the number of per-review keywords to keep
	// (default 5).
	DocKeywords int

	// Workers bounds pipeline concurrency (default 4).
	Workers int
}

// New creates an Engine with the given stage components.
func New(opts Options) (*Engine, error) {
	if opts.Analyzer == nil {
		return nil, fmt.Errorf("%w: analyzer is required", internalerr.ErrInvalidConfig)
	}
	if opts.Extractor == nil {
		return nil, fmt.Errorf("%w: extractor is required", internalerr.ErrInvalidConfig)
	}
	if opts.Taxonomy == nil {
		return nil, fmt.Errorf("%w: taxonomy is required", internalerr.ErrInvalidConfig)
	}
	if opts.DocKeywords <= 0 {
		opts.DocKeywords = 5
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Engine{
		analyzer:    opts.Analyzer,
		extractor:   opts.Extractor,
		taxonomy:    opts.Taxonomy,
		store:       opts.Store,
		docKeywords: opts.DocKeywords,
		workers:     opts.Workers,
	}, nil
}

// Close shuts down the engine and its store, if any.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Taxonomy exposes the engine's theme taxonomy, for reporting in
// declaration order.
func (e *Engine) Taxonomy() *themes.Taxonomy {
	return e.taxonomy
}

// Counters summarizes degenerate records seen during an Enrich run.
type Counters struct {
	EmptyText  int64
	NoThemes   int64
	NoKeywords int64
}

// Enrich runs sentiment, theme assignment and per-review keyword
// extraction over the batch. The result slice is aligned with the
// input: out[i] is the enriched form of recs[i]. Records with empty
// text still produce a full record with the neutral sentiment default
// and no themes or keywords.
func (e *Engine) Enrich(ctx context.Context, recs []review.Review) ([]review.Enriched, Counters, error) {
	out := make([]review.Enriched, len(recs))
	var counters Counters

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, r := range recs {
		i, r := i, r // per-iteration copies; go directive is below 1.22
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.Validate(); err != nil {
				return fmt.Errorf("%w: review %s: %v", internalerr.ErrInvalidInput, r.ID, err)
			}
			out[i] = e.enrichOne(r, &counters)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Counters{}, err
	}
	return out, counters, nil
}

func (e *Engine) enrichOne(r review.Review, counters *Counters) review.Enriched {
	res := e.analyzer.Score(r.Text)
	assigned := e.taxonomy.Assign(r.Text)
	keys := e.extractor.DocumentKeywords(r.Text, e.docKeywords)

	if strings.TrimSpace(r.Text) == "" {
		atomic.AddInt64(&counters.EmptyText, 1)
	}
	if len(assigned) == 0 {
		atomic.AddInt64(&counters.NoThemes, 1)
	}
	if len(keys) == 0 {
		atomic.AddInt64(&counters.NoKeywords, 1)
	}

	return review.Enriched{
		Review:         r,
		SentimentPos:   res.Pos,
		SentimentNeg:   res.Neg,
		SentimentNeu:   res.Neu,
		SentimentScore: res.Compound,
		SentimentLabel: string(res.Label),
		Themes:         assigned,
		TopKeywords:    keys,
	}
}

// CorpusKeywords computes the TF-IDF keyword ranking per bank over the
// batch. This is a batch barrier: it needs the whole group before
// document-frequency statistics exist, so it runs once per batch rather
// than per record. Banks with fewer than two reviews come back with an
// empty ranking; a batch with no reviews at all is ErrEmptyCorpus.
func (e *Engine) CorpusKeywords(ctx context.Context, recs []review.Review, topN int) (map[string][]keywords.TermScore, error) {
	if len(recs) == 0 {
		return nil, internalerr.ErrEmptyCorpus
	}

	groups := make(map[string][]string)
	for _, r := range recs {
		groups[r.Bank] = append(groups[r.Bank], r.Text)
	}

	var mu sync.Mutex
	out := make(map[string][]keywords.TermScore, len(groups))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for bank, docs := range groups {
		bank, docs := bank, docs // per-iteration copies; go directive is below 1.22
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			terms := e.extractor.CorpusKeywords(docs, topN)
			mu.Lock()
			out[bank] = terms
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Persist writes enriched records and per-bank keyword rankings to the
// engine's store under the given run ID.
func (e *Engine) Persist(ctx context.Context, runID string, recs []review.Enriched, corpus map[string][]keywords.TermScore) error {
	if e.store == nil {
		return internalerr.ErrNoStore
	}
	for _, r := range recs {
		if err := e.store.UpsertReview(ctx, runID, r); err != nil {
			return fmt.Errorf("persist review %s: %w", r.ID, err)
		}
	}
	for bank, terms := range corpus {
		if err := e.store.ReplaceGroupKeywords(ctx, bank, terms); err != nil {
			return fmt.Errorf("persist keywords for %s: %w", bank, err)
		}
	}
	return nil
}
