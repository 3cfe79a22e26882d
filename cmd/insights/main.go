// Command insights reads an enriched review database and prints the
// cross-bank comparison report, as plain text or JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/config"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/keywords"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/report"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/store/sqlite"
)

func main() {
	var (
		dbPath       = flag.String("db", "", "SQLite database path (required)")
		taxonomyPath = flag.String("taxonomy", "", "Theme taxonomy YAML (optional, embedded default)")
		asJSON       = flag.Bool("json", false, "Emit the report as JSON")
	)
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if *dbPath == "" {
		log.Fatal().Msg("--db required")
	}

	ctx := context.Background()

	components, err := config.Loader{TaxonomyPath: *taxonomyPath}.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}

	s, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer s.Close()

	recs, err := s.ListAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list reviews")
	}
	if len(recs) == 0 {
		log.Fatal().Str("db", *dbPath).Msg("database holds no enriched reviews")
	}

	banks, err := s.Banks(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list banks")
	}
	corpus := make(map[string][]keywords.TermScore, len(banks))
	for _, bank := range banks {
		terms, err := s.GroupKeywords(ctx, bank)
		if err != nil {
			log.Fatal().Err(err).Str("bank", bank).Msg("load group keywords")
		}
		if len(terms) > 0 {
			corpus[bank] = terms
		}
	}

	summary := report.BuildSummary(recs, components.Taxonomy.Names(), corpus)

	if *asJSON {
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("marshal report")
		}
		fmt.Println(string(out))
		return
	}
	if err := summary.WriteText(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("write report")
	}
}
