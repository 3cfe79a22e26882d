// Command enrich runs the review enrichment pipeline: it loads raw
// reviews from a JSONL or CSV export, scores sentiment, assigns themes
// and keywords, and writes the results to a SQLite database and/or an
// enriched CSV.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/internal/source"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/config"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/review"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/store/sqlite"
)

func main() {
	var (
		input         = flag.String("input", "", "Input reviews file, .jsonl or .csv (required)")
		dbPath        = flag.String("db", "", "SQLite database path (optional)")
		outPath       = flag.String("out", "", "Enriched CSV output path (optional)")
		taxonomyPath  = flag.String("taxonomy", "", "Theme taxonomy YAML (optional, embedded default)")
		stopwordsPath = flag.String("stopwords", "", "Stop-word YAML (optional, embedded default)")
		lexiconPath   = flag.String("lexicon", "", "Sentiment lexicon TSV (optional, embedded default)")
		runID         = flag.String("run-id", "", "Run identifier (default: current date)")
		workers       = flag.Int("workers", 4, "Pipeline concurrency")
		corpusTopN    = flag.Int("corpus-top", 15, "Corpus keywords kept per bank")
		pretty        = flag.Bool("pretty", false, "Human-readable log output")
	)
	flag.Parse()

	setupLogger(*pretty)

	if *input == "" {
		log.Fatal().Msg("--input required")
	}
	if *runID == "" {
		*runID = time.Now().UTC().Format("2006-01-02")
	}

	ctx := context.Background()

	loader := config.Loader{
		TaxonomyPath:  *taxonomyPath,
		StopwordsPath: *stopwordsPath,
		LexiconPath:   *lexiconPath,
	}
	components, err := loader.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}

	reviews, stats, err := loadReviews(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("load reviews")
	}
	log.Info().
		Int("parsed", stats.Parsed).
		Int("malformed", stats.SkippedMalformed).
		Int("invalid", stats.SkippedInvalid).
		Int("duplicate", stats.SkippedDuplicate).
		Msg("reviews loaded")

	opts := cxa.Options{
		Analyzer:  components.Analyzer,
		Extractor: components.Extractor,
		Taxonomy:  components.Taxonomy,
		Workers:   *workers,
	}
	if *dbPath != "" {
		s, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open database")
		}
		opts.Store = s
	}

	engine, err := cxa.New(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("create engine")
	}
	defer engine.Close()

	enriched, counters, err := engine.Enrich(ctx, reviews)
	if err != nil {
		log.Fatal().Err(err).Msg("enrich")
	}

	corpus, err := engine.CorpusKeywords(ctx, reviews, *corpusTopN)
	if err != nil {
		log.Fatal().Err(err).Msg("corpus keywords")
	}

	if *dbPath != "" {
		if err := engine.Persist(ctx, *runID, enriched, corpus); err != nil {
			log.Fatal().Err(err).Msg("persist")
		}
		log.Info().Str("db", *dbPath).Str("run_id", *runID).Msg("results persisted")
	}

	if *outPath != "" {
		if err := writeCSV(*outPath, enriched); err != nil {
			log.Fatal().Err(err).Msg("write output CSV")
		}
		log.Info().Str("out", *outPath).Msg("enriched CSV written")
	}

	log.Info().
		Int("reviews", len(enriched)).
		Int64("empty_text", counters.EmptyText).
		Int64("no_themes", counters.NoThemes).
		Int64("no_keywords", counters.NoKeywords).
		Int("banks", len(corpus)).
		Msg("enrichment complete")
}

func setupLogger(pretty bool) {
	if pretty {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func loadReviews(path string) ([]review.Review, source.Stats, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return source.LoadCSV(path)
	case ".jsonl", ".json":
		return source.LoadJSONL(path)
	default:
		return nil, source.Stats{}, fmt.Errorf("unsupported input format: %s", path)
	}
}

func writeCSV(path string, recs []review.Enriched) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"id", "review", "rating", "date", "bank", "source",
		"sentiment_label", "sentiment_score", "sentiment_pos", "sentiment_neg", "sentiment_neu",
		"themes", "num_themes", "top_keywords",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range recs {
		r := &recs[i]
		row := []string{
			r.ID,
			r.Text,
			strconv.Itoa(r.Rating),
			r.Date.Format("2006-01-02"),
			r.Bank,
			r.Source,
			r.SentimentLabel,
			formatFloat(r.SentimentScore),
			formatFloat(r.SentimentPos),
			formatFloat(r.SentimentNeg),
			formatFloat(r.SentimentNeu),
			r.ThemesJoined(),
			strconv.Itoa(r.NumThemes()),
			r.KeywordsJoined(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
