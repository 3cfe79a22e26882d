// Package source loads raw reviews from scraped JSONL or CSV exports
// and normalizes them to the pipeline's input contract: non-empty text,
// a rating in [1,5], a YYYY-MM-DD date and one record per distinct
// (text, bank, date) triple.
package source

import (
	"crypto/rand"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/review"
)

const dateLayout = "2006-01-02"

// dateLayouts are the formats scraped exports have been seen to use.
var dateLayouts = []string{
	dateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Stats counts what happened to the raw records during a load.
type Stats struct {
	Parsed           int
	SkippedMalformed int
	SkippedInvalid   int
	SkippedDuplicate int
}

// rawReview is the scraped JSONL record layout.
type rawReview struct {
	ID     string `json:"id"`
	Review string `json:"review"`
	Bank   string `json:"bank"`
	Source string `json:"source"`
	Rating int    `json:"rating"`
	Date   string `json:"date"`
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// LoadJSONL loads reviews from a JSONL file, one record per line.
// Malformed lines are skipped with a warning; records that break the
// input contract are dropped and counted.
func LoadJSONL(path string) ([]review.Review, Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read file %s: %w", path, err)
	}

	var stats Stats
	var raws []rawReview
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var raw rawReview
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			log.Warn().Str("file", path).Int("line", i+1).Err(err).Msg("skipping malformed JSON line")
			stats.SkippedMalformed++
			continue
		}
		raws = append(raws, raw)
	}

	reviews := normalize(raws, &stats)
	if len(reviews) == 0 {
		return nil, stats, fmt.Errorf("no valid reviews found in %s", path)
	}
	return reviews, stats, nil
}

// LoadCSV loads reviews from a CSV export with a header row. Both the
// pipeline's own column names (review, bank, source, rating, date) and
// the scraper's names (content, score, at) are accepted.
func LoadCSV(path string) ([]review.Review, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read header of %s: %w", path, err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(rec []string, names ...string) string {
		for _, name := range names {
			if i, ok := cols[name]; ok && i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
		}
		return ""
	}

	var stats Stats
	var raws []rawReview
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Str("file", path).Int("line", line).Err(err).Msg("skipping malformed CSV record")
			stats.SkippedMalformed++
			continue
		}

		rating, err := strconv.Atoi(field(rec, "rating", "score"))
		if err != nil {
			rating = 0 // fails validation below
		}
		raws = append(raws, rawReview{
			ID:     field(rec, "id"),
			Review: field(rec, "review", "content", "text"),
			Bank:   field(rec, "bank", "app"),
			Source: field(rec, "source"),
			Rating: rating,
			Date:   field(rec, "date", "at"),
		})
	}

	reviews := normalize(raws, &stats)
	if len(reviews) == 0 {
		return nil, stats, fmt.Errorf("no valid reviews found in %s", path)
	}
	return reviews, stats, nil
}

// normalize applies the input contract to raw records: strip markup,
// drop blanks and out-of-range ratings, normalize dates, deduplicate on
// (text, bank, date) keeping the first occurrence, and assign IDs where
// the export had none.
func normalize(raws []rawReview, stats *Stats) []review.Review {
	seen := make(map[string]struct{}, len(raws))
	var out []review.Review
	for _, raw := range raws {
		text := strings.TrimSpace(StripHTML(raw.Review))
		if text == "" {
			stats.SkippedInvalid++
			continue
		}
		if raw.Rating < 1 || raw.Rating > 5 {
			stats.SkippedInvalid++
			continue
		}
		if strings.TrimSpace(raw.Bank) == "" {
			stats.SkippedInvalid++
			continue
		}

		date, ok := parseDate(raw.Date)
		if !ok {
			stats.SkippedInvalid++
			continue
		}

		key := text + "\x00" + raw.Bank + "\x00" + date.Format(dateLayout)
		if _, dup := seen[key]; dup {
			stats.SkippedDuplicate++
			continue
		}
		seen[key] = struct{}{}

		source := strings.TrimSpace(raw.Source)
		if source == "" {
			source = "Google Play"
		}
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			id = newID(date)
		}

		out = append(out, review.Review{
			ID:     id,
			Bank:   strings.TrimSpace(raw.Bank),
			Source: source,
			Text:   text,
			Rating: raw.Rating,
			Date:   date,
		})
		stats.Parsed++
	}
	return out
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(24 * time.Hour), true
		}
	}
	return time.Time{}, false
}

// StripHTML returns the text content of s with any markup removed.
// Plain text passes through unchanged.
func StripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(buf.String())
}
