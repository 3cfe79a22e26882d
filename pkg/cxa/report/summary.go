package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/keywords"
	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/review"
)

// Summary is the full comparison report across banks: group statistics,
// corpus keywords, and the satisfaction drivers / pain points split.
type Summary struct {
	TotalReviews int                             `json:"total_reviews"`
	Stats        map[string]GroupStats           `json:"stats"`
	Corpus       map[string][]keywords.TermScore `json:"corpus_keywords,omitempty"`
	Drivers      map[string][]ThemeCount         `json:"drivers"`
	PainPoints   map[string][]ThemeCount         `json:"pain_points"`
}

// BuildSummary aggregates enriched reviews into a Summary. corpus may
// be nil when per-bank keywords were not computed.
func BuildSummary(recs []review.Enriched, themeOrder []string, corpus map[string][]keywords.TermScore) Summary {
	return Summary{
		TotalReviews: len(recs),
		Stats:        Aggregate(recs, themeOrder),
		Corpus:       corpus,
		Drivers:      Drivers(recs, themeOrder, 3),
		PainPoints:   PainPoints(recs, themeOrder, 3),
	}
}

// WriteText renders the summary as the plain-text comparison report.
func (s Summary) WriteText(w io.Writer) error {
	rule := strings.Repeat("=", 72)
	if _, err := fmt.Fprintf(w, "%s\nCUSTOMER EXPERIENCE ANALYTICS REPORT\n%s\n\nTotal reviews analyzed: %d\n",
		rule, rule, s.TotalReviews); err != nil {
		return err
	}

	for _, bank := range Banks(s.Stats) {
		g := s.Stats[bank]
		fmt.Fprintf(w, "\n%s\n%s\n", bank, strings.Repeat("-", 72))
		fmt.Fprintf(w, "Reviews: %d\n", g.Reviews)
		fmt.Fprintf(w, "Average rating: %.2f\n", g.MeanRating)
		fmt.Fprintf(w, "Average sentiment score: %.3f\n", g.MeanCompound)

		fmt.Fprint(w, "Sentiment distribution:\n")
		for _, label := range []string{"positive", "neutral", "negative"} {
			fmt.Fprintf(w, "  %-10s %5d (%5.1f%%)\n", label, g.SentimentCounts[label], g.SentimentPct[label])
		}

		fmt.Fprintf(w, "Theme coverage: %.1f%% (avg %.2f themes/review)\n", 100*g.Coverage, g.AvgThemes)
		fmt.Fprint(w, "Theme distribution:\n")
		for _, tc := range g.TopThemes(0) {
			fmt.Fprintf(w, "  %-30s %5d (%5.1f%%)\n", tc.Theme, tc.Count, tc.Pct)
		}

		if terms := s.Corpus[bank]; len(terms) > 0 {
			fmt.Fprint(w, "Top keywords (TF-IDF):\n")
			for i, ts := range terms {
				if i >= 10 {
					break
				}
				fmt.Fprintf(w, "  %-30s %.4f\n", ts.Term, ts.Score)
			}
		}

		if drivers := s.Drivers[bank]; len(drivers) > 0 {
			fmt.Fprint(w, "Top drivers (themes in rating >= 4):\n")
			for _, tc := range drivers {
				fmt.Fprintf(w, "  %-30s %5d (%5.1f%%)\n", tc.Theme, tc.Count, tc.Pct)
			}
		}
		if pains := s.PainPoints[bank]; len(pains) > 0 {
			fmt.Fprint(w, "Top pain points (themes in rating <= 2):\n")
			for _, tc := range pains {
				fmt.Fprintf(w, "  %-30s %5d (%5.1f%%)\n", tc.Theme, tc.Count, tc.Pct)
			}
		}
	}
	return nil
}
