// Package report computes per-bank statistics over enriched reviews:
// rating and sentiment means, label distributions, theme frequencies
// and coverage. It is read-only over its input.
package report

import (
	"sort"

	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/review"
)

// ThemeCount is one ranked theme with its review count and percentage.
// The percentage denominator is the number of reviews considered, not
// the number of theme occurrences, so a two-theme review contributes to
// two counts while the denominator stays fixed.
type ThemeCount struct {
	Theme string
	Count int
	Pct   float64
}

// GroupStats aggregates one bank's enriched reviews.
type GroupStats struct {
	Bank         string
	Reviews      int
	MeanRating   float64
	MeanCompound float64

	// Label distribution, counts and row-normalized percentages.
	SentimentCounts map[string]int
	SentimentPct    map[string]float64

	// Theme distribution. Percentages are relative to group size.
	ThemeCounts map[string]int
	ThemePct    map[string]float64

	// Coverage is the fraction of reviews carrying at least one theme.
	Coverage  float64
	AvgThemes float64

	themeOrder []string
}

// Aggregate groups enriched reviews by bank and computes GroupStats for
// each. themeOrder is the taxonomy declaration order and drives the
// tie-break of every ranking derived from the result.
func Aggregate(recs []review.Enriched, themeOrder []string) map[string]GroupStats {
	groups := make(map[string][]review.Enriched)
	for _, r := range recs {
		groups[r.Bank] = append(groups[r.Bank], r)
	}

	out := make(map[string]GroupStats, len(groups))
	for bank, members := range groups {
		out[bank] = aggregateGroup(bank, members, themeOrder)
	}
	return out
}

func aggregateGroup(bank string, members []review.Enriched, themeOrder []string) GroupStats {
	g := GroupStats{
		Bank:            bank,
		Reviews:         len(members),
		SentimentCounts: make(map[string]int),
		SentimentPct:    make(map[string]float64),
		ThemeCounts:     make(map[string]int),
		ThemePct:        make(map[string]float64),
		themeOrder:      themeOrder,
	}

	var ratingSum, compoundSum float64
	var themed, themeTotal int
	for _, r := range members {
		ratingSum += float64(r.Rating)
		compoundSum += r.SentimentScore
		g.SentimentCounts[r.SentimentLabel]++
		for _, theme := range r.Themes {
			g.ThemeCounts[theme]++
		}
		themeTotal += len(r.Themes)
		if len(r.Themes) > 0 {
			themed++
		}
	}

	n := float64(len(members))
	g.MeanRating = ratingSum / n
	g.MeanCompound = compoundSum / n
	g.Coverage = float64(themed) / n
	g.AvgThemes = float64(themeTotal) / n
	for label, count := range g.SentimentCounts {
		g.SentimentPct[label] = 100 * float64(count) / n
	}
	for theme, count := range g.ThemeCounts {
		g.ThemePct[theme] = 100 * float64(count) / n
	}
	return g
}

// TopThemes returns the group's themes most-common-first, ties broken
// by taxonomy declaration order. k <= 0 returns all themes present.
func (g GroupStats) TopThemes(k int) []ThemeCount {
	return rankThemes(g.ThemeCounts, g.Reviews, g.themeOrder, k)
}

// Banks returns the group keys of an Aggregate result in lexical order,
// for deterministic rendering.
func Banks(stats map[string]GroupStats) []string {
	banks := make([]string, 0, len(stats))
	for bank := range stats {
		banks = append(banks, bank)
	}
	sort.Strings(banks)
	return banks
}

// Drivers ranks the themes of each bank's positive reviews (rating >= 4):
// what keeps satisfied customers satisfied. Percentages are relative to
// the positive-review count per bank.
func Drivers(recs []review.Enriched, themeOrder []string, k int) map[string][]ThemeCount {
	return rankSubset(recs, themeOrder, k, func(r review.Enriched) bool {
		return r.Rating >= 4
	})
}

// PainPoints ranks the themes of each bank's negative reviews
// (rating <= 2): what drives complaints.
func PainPoints(recs []review.Enriched, themeOrder []string, k int) map[string][]ThemeCount {
	return rankSubset(recs, themeOrder, k, func(r review.Enriched) bool {
		return r.Rating <= 2
	})
}

func rankSubset(recs []review.Enriched, themeOrder []string, k int, keep func(review.Enriched) bool) map[string][]ThemeCount {
	counts := make(map[string]map[string]int)
	sizes := make(map[string]int)
	for _, r := range recs {
		if !keep(r) {
			continue
		}
		sizes[r.Bank]++
		if counts[r.Bank] == nil {
			counts[r.Bank] = make(map[string]int)
		}
		for _, theme := range r.Themes {
			counts[r.Bank][theme]++
		}
	}

	out := make(map[string][]ThemeCount, len(counts))
	for bank, themeCounts := range counts {
		out[bank] = rankThemes(themeCounts, sizes[bank], themeOrder, k)
	}
	return out
}

// rankThemes orders themes by count descending. Walking themeOrder
// first makes equal counts fall back to declaration order; themes
// absent from the order (foreign labels) sort after it, lexically.
func rankThemes(counts map[string]int, denominator int, themeOrder []string, k int) []ThemeCount {
	seen := make(map[string]struct{}, len(themeOrder))
	ordered := make([]string, 0, len(counts))
	for _, theme := range themeOrder {
		seen[theme] = struct{}{}
		if counts[theme] > 0 {
			ordered = append(ordered, theme)
		}
	}
	var extra []string
	for theme, count := range counts {
		if _, ok := seen[theme]; !ok && count > 0 {
			extra = append(extra, theme)
		}
	}
	sort.Strings(extra)
	ordered = append(ordered, extra...)

	sort.SliceStable(ordered, func(i, j int) bool {
		return counts[ordered[i]] > counts[ordered[j]]
	})

	if k > 0 && len(ordered) > k {
		ordered = ordered[:k]
	}

	ranked := make([]ThemeCount, len(ordered))
	for i, theme := range ordered {
		tc := ThemeCount{Theme: theme, Count: counts[theme]}
		if denominator > 0 {
			tc.Pct = 100 * float64(counts[theme]) / float64(denominator)
		}
		ranked[i] = tc
	}
	return ranked
}
