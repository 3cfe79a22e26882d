// Package review defines the review records flowing through the
// enrichment pipeline: the raw record handed over by ingestion and the
// enriched record consumed by persistence and reporting.
package review

import (
	"errors"
	"strings"
	"time"
)

// Review is a raw app-store review as delivered by the ingestion
// collaborator. It is immutable once created; enrichment stages attach
// results to a new Enriched value instead of mutating it.
type Review struct {
	ID     string
	Bank   string
	Source string
	Text   string
	Rating int
	Date   time.Time
}

// Validate checks the fields the upstream contract guarantees.
func (r *Review) Validate() error {
	if strings.TrimSpace(r.Bank) == "" {
		return errors.New("review bank is required")
	}
	if strings.TrimSpace(r.Source) == "" {
		return errors.New("review source is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("review rating must be in [1,5]")
	}
	return nil
}

// Enriched is a review plus the sentiment and theme results of one
// pipeline run. Sentiment fields mirror the output schema: Pos, Neg and
// Neu sum to 1 and Score is the compound polarity in [-1,1].
type Enriched struct {
	Review

	SentimentPos   float64
	SentimentNeg   float64
	SentimentNeu   float64
	SentimentScore float64
	SentimentLabel string

	// Themes is in taxonomy declaration order.
	Themes      []string
	TopKeywords []string
}

// NumThemes returns the number of assigned themes.
func (e *Enriched) NumThemes() int {
	return len(e.Themes)
}

// ThemesJoined renders the theme list as a comma-joined string in
// taxonomy declaration order.
func (e *Enriched) ThemesJoined() string {
	return strings.Join(e.Themes, ", ")
}

// KeywordsJoined renders the per-review keywords most-frequent-first.
func (e *Enriched) KeywordsJoined() string {
	return strings.Join(e.TopKeywords, ", ")
}
