// Package sqlite implements the store over a SQLite database, using
// the pure-Go driver so builds stay cgo-free.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/internalerr"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/keywords"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/review"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/store"
)

const dateLayout = "2006-01-02"

type sqliteStore struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database with WAL mode enabled and
// initializes the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL for better concurrency between the enrich and insights runs.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS reviews (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	bank TEXT NOT NULL,
	source TEXT NOT NULL,
	text TEXT NOT NULL,
	rating INTEGER NOT NULL,
	review_date TEXT,
	sentiment_pos REAL NOT NULL,
	sentiment_neg REAL NOT NULL,
	sentiment_neu REAL NOT NULL,
	sentiment_score REAL NOT NULL,
	sentiment_label TEXT NOT NULL,
	themes TEXT NOT NULL,
	top_keywords TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reviews_bank ON reviews(bank);

CREATE TABLE IF NOT EXISTS group_keywords (
	bank TEXT NOT NULL,
	rank INTEGER NOT NULL,
	term TEXT NOT NULL,
	score REAL NOT NULL,
	PRIMARY KEY(bank, rank)
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *sqliteStore) UpsertReview(ctx context.Context, runID string, r review.Enriched) error {
	themesJSON, err := json.Marshal(r.Themes)
	if err != nil {
		return err
	}
	keywordsJSON, err := json.Marshal(r.TopKeywords)
	if err != nil {
		return err
	}

	var date string
	if !r.Date.IsZero() {
		date = r.Date.Format(dateLayout)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO reviews (id, run_id, bank, source, text, rating, review_date,
	sentiment_pos, sentiment_neg, sentiment_neu, sentiment_score, sentiment_label,
	themes, top_keywords)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	run_id=excluded.run_id,
	bank=excluded.bank,
	source=excluded.source,
	text=excluded.text,
	rating=excluded.rating,
	review_date=excluded.review_date,
	sentiment_pos=excluded.sentiment_pos,
	sentiment_neg=excluded.sentiment_neg,
	sentiment_neu=excluded.sentiment_neu,
	sentiment_score=excluded.sentiment_score,
	sentiment_label=excluded.sentiment_label,
	themes=excluded.themes,
	top_keywords=excluded.top_keywords`,
		r.ID, runID, r.Bank, r.Source, r.Text, r.Rating, date,
		r.SentimentPos, r.SentimentNeg, r.SentimentNeu, r.SentimentScore, r.SentimentLabel,
		string(themesJSON), string(keywordsJSON))
	return err
}

func (s *sqliteStore) GetReview(ctx context.Context, id string) (review.Enriched, error) {
	row := s.db.QueryRowContext(ctx, selectReviews+" WHERE id = ?", id)
	r, err := scanReview(row)
	if err == sql.ErrNoRows {
		return review.Enriched{}, fmt.Errorf("review %s: %w", id, internalerr.ErrNotFound)
	}
	return r, err
}

func (s *sqliteStore) ListByBank(ctx context.Context, bank string) ([]review.Enriched, error) {
	return s.queryReviews(ctx, selectReviews+" WHERE bank = ? ORDER BY id", bank)
}

func (s *sqliteStore) ListAll(ctx context.Context) ([]review.Enriched, error) {
	return s.queryReviews(ctx, selectReviews+" ORDER BY id")
}

func (s *sqliteStore) Banks(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT bank FROM reviews ORDER BY bank")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banks []string
	for rows.Next() {
		var bank string
		if err := rows.Scan(&bank); err != nil {
			return nil, err
		}
		banks = append(banks, bank)
	}
	return banks, rows.Err()
}

func (s *sqliteStore) ReplaceGroupKeywords(ctx context.Context, bank string, terms []keywords.TermScore) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM group_keywords WHERE bank = ?", bank); err != nil {
		return err
	}
	for i, ts := range terms {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO group_keywords (bank, rank, term, score) VALUES (?, ?, ?, ?)",
			bank, i, ts.Term, ts.Score); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) GroupKeywords(ctx context.Context, bank string) ([]keywords.TermScore, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT term, score FROM group_keywords WHERE bank = ? ORDER BY rank", bank)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []keywords.TermScore
	for rows.Next() {
		var ts keywords.TermScore
		if err := rows.Scan(&ts.Term, &ts.Score); err != nil {
			return nil, err
		}
		terms = append(terms, ts)
	}
	return terms, rows.Err()
}

const selectReviews = `
SELECT id, bank, source, text, rating, review_date,
	sentiment_pos, sentiment_neg, sentiment_neu, sentiment_score, sentiment_label,
	themes, top_keywords
FROM reviews`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (review.Enriched, error) {
	var r review.Enriched
	var date, themesJSON, keywordsJSON string
	if err := row.Scan(&r.ID, &r.Bank, &r.Source, &r.Text, &r.Rating, &date,
		&r.SentimentPos, &r.SentimentNeg, &r.SentimentNeu, &r.SentimentScore, &r.SentimentLabel,
		&themesJSON, &keywordsJSON); err != nil {
		return review.Enriched{}, err
	}
	if date != "" {
		t, err := time.Parse(dateLayout, date)
		if err != nil {
			return review.Enriched{}, fmt.Errorf("review %s: bad date %q: %w", r.ID, date, err)
		}
		r.Date = t
	}
	if err := json.Unmarshal([]byte(themesJSON), &r.Themes); err != nil {
		return review.Enriched{}, fmt.Errorf("review %s: themes: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(keywordsJSON), &r.TopKeywords); err != nil {
		return review.Enriched{}, fmt.Errorf("review %s: keywords: %w", r.ID, err)
	}
	return r, nil
}

func (s *sqliteStore) queryReviews(ctx context.Context, query string, args ...any) ([]review.Enriched, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []review.Enriched
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
